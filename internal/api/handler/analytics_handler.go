package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/service"
	"teachtrack/backend/pkg/response"
)

// AnalyticsHandler 统计分析模块 HTTP 处理器
type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

// NewAnalyticsHandler 创建 AnalyticsHandler
func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// GetOverview 今日概览卡片
// GET /api/v1/analytics/overview
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	overview, err := h.analyticsSvc.Overview(c.Request.Context())
	if err != nil {
		h.handleAnalyticsError(c, err)
		return
	}

	response.OK(c, overview)
}

// GetTrends 逐日出勤趋势
// GET /api/v1/analytics/trends?days=30 或 ?start=...&end=...
func (h *AnalyticsHandler) GetTrends(c *gin.Context) {
	var req dto.TrendsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	points, err := h.analyticsSvc.Trends(c.Request.Context(), &req)
	if err != nil {
		h.handleAnalyticsError(c, err)
		return
	}

	response.OK(c, gin.H{"list": points})
}

// GetDepartmentStats 各部门出勤率对比
// GET /api/v1/analytics/departments
func (h *AnalyticsHandler) GetDepartmentStats(c *gin.Context) {
	items, err := h.analyticsSvc.DepartmentStats(c.Request.Context())
	if err != nil {
		h.handleAnalyticsError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// GetTopPerformers 出勤率排名
// GET /api/v1/analytics/top-performers?limit=10
func (h *AnalyticsHandler) GetTopPerformers(c *gin.Context) {
	var req dto.TopPerformersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, err := h.analyticsSvc.TopPerformers(c.Request.Context(), req.Limit)
	if err != nil {
		h.handleAnalyticsError(c, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// GetAbsenceBreakdown 全校缺勤构成
// GET /api/v1/analytics/absences
func (h *AnalyticsHandler) GetAbsenceBreakdown(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	breakdown, err := h.analyticsSvc.AbsenceBreakdown(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		h.handleAnalyticsError(c, err)
		return
	}

	response.OK(c, breakdown)
}

// handleAnalyticsError 统一处理统计模块业务错误
func (h *AnalyticsHandler) handleAnalyticsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 16001, "日期范围无效")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14001, "日期格式无效")
	default:
		response.InternalError(c)
	}
}
