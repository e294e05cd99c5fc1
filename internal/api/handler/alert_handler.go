package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/service"
	"teachtrack/backend/pkg/response"
)

// AlertHandler 连续缺勤预警模块 HTTP 处理器
type AlertHandler struct {
	alertSvc service.AlertService
}

// NewAlertHandler 创建 AlertHandler
func NewAlertHandler(alertSvc service.AlertService) *AlertHandler {
	return &AlertHandler{alertSvc: alertSvc}
}

// ListAlerts 查询预警列表
// GET /api/v1/alerts?unread=true
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	var req dto.AlertListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	alerts, err := h.alertSvc.List(c.Request.Context(), req.UnreadOnly)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, gin.H{"list": alerts})
}

// ListTeacherAlerts 查询某教师的预警历史
// GET /api/v1/teachers/:id/alerts
func (h *AlertHandler) ListTeacherAlerts(c *gin.Context) {
	teacherID := c.Param("id")
	if teacherID == "" {
		response.BadRequest(c, 10001, "教师ID不能为空")
		return
	}

	alerts, err := h.alertSvc.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, gin.H{"list": alerts})
}

// MarkAlertRead 将预警标记为已读
// PUT /api/v1/alerts/:id/read
func (h *AlertHandler) MarkAlertRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "预警ID不能为空")
		return
	}

	if err := h.alertSvc.MarkRead(c.Request.Context(), id); err != nil {
		h.handleAlertError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAlertError 统一处理预警模块业务错误
func (h *AlertHandler) handleAlertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlertNotFound):
		response.NotFound(c, 18001, "预警不存在")
	default:
		response.InternalError(c)
	}
}
