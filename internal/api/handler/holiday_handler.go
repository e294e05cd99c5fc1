package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/service"
	"teachtrack/backend/pkg/response"
)

// HolidayHandler 节假日模块 HTTP 处理器
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler 创建 HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays 查询节假日列表（可选日期范围）
// GET /api/v1/holidays
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	holidays, err := h.holidaySvc.List(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, gin.H{"list": holidays})
}

// CreateHoliday 创建节假日
// POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	createdBy, ok := MustGetTeacherID(c)
	if !ok {
		return
	}

	holiday, err := h.holidaySvc.Create(c.Request.Context(), &req, createdBy)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.Created(c, holiday)
}

// DeleteHoliday 删除节假日
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "节假日ID不能为空")
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportHolidays 从 iCalendar 内容或 URL 批量导入节假日
// POST /api/v1/holidays/import
func (h *HolidayHandler) ImportHolidays(c *gin.Context) {
	var req dto.ImportHolidaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	createdBy, ok := MustGetTeacherID(c)
	if !ok {
		return
	}

	result, err := h.holidaySvc.ImportICS(c.Request.Context(), &req, createdBy)
	if err != nil {
		h.handleHolidayError(c, err)
		return
	}

	response.OK(c, result)
}

// handleHolidayError 统一处理节假日模块业务错误
func (h *HolidayHandler) handleHolidayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHolidayExists):
		response.Conflict(c, 15001, "该日期已存在节假日")
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, 15002, "节假日不存在")
	case errors.Is(err, service.ErrImportSourceRequired):
		response.BadRequest(c, 15003, "必须提供 url 或 content 之一")
	case errors.Is(err, service.ErrICSParseFailed):
		response.BadRequest(c, 15004, "iCalendar 内容解析失败")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14001, "日期格式无效")
	default:
		response.InternalError(c)
	}
}
