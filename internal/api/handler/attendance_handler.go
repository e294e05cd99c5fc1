package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/service"
	"teachtrack/backend/pkg/response"
)

// AttendanceHandler 出勤标记模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// MarkAttendance 标记单条出勤（同教师同日重复提交原地更新）
// POST /api/v1/attendance
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	recordedBy, ok := MustGetTeacherID(c)
	if !ok {
		return
	}

	record, err := h.attendanceSvc.Mark(c.Request.Context(), &req, recordedBy)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, record)
}

// BulkMarkAttendance 批量标记同一天多名教师的出勤
// POST /api/v1/attendance/bulk
func (h *AttendanceHandler) BulkMarkAttendance(c *gin.Context) {
	var req dto.BulkMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	recordedBy, ok := MustGetTeacherID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.BulkMark(c.Request.Context(), &req, recordedBy)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// ListByDate 查询某日全部出勤记录
// GET /api/v1/attendance?date=2026-03-06
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	var req dto.AttendanceByDateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, err := h.attendanceSvc.ListByDate(c.Request.Context(), req.Date)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// ListByTeacher 查询某教师的出勤历史（可选日期范围）
// GET /api/v1/teachers/:id/attendance
func (h *AttendanceHandler) ListByTeacher(c *gin.Context) {
	teacherID := c.Param("id")
	if teacherID == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, err := h.attendanceSvc.ListByTeacher(c.Request.Context(), teacherID, req.StartDate, req.EndDate)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// handleAttendanceError 统一处理出勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 12001, "教师不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14001, "日期格式无效")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 14002, "出勤状态无效")
	case errors.Is(err, service.ErrAbsentCategoryRequired):
		response.BadRequest(c, 14003, "缺勤记录必须提供缺勤类别")
	case errors.Is(err, service.ErrAbsentCategoryNotAllowed):
		response.BadRequest(c, 14004, "仅缺勤记录可携带缺勤类别")
	case errors.Is(err, service.ErrDuplicateBulkTeacher):
		response.BadRequest(c, 14005, "批量请求中存在重复教师")
	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 16001, "日期范围无效")
	default:
		response.InternalError(c)
	}
}
