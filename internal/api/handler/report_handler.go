package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/service"
	"teachtrack/backend/pkg/response"
)

// ReportHandler 报表与导出模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ExportAttendance 导出范围内的每教师出勤汇总（CSV 或 Excel）
// GET /api/v1/export/attendance?start=...&end=...&format=xlsx
func (h *ReportHandler) ExportAttendance(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, contentType, err := h.reportSvc.ExportAttendance(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	// 文件名含中文，按 RFC 5987 编码
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// GetTeacherReport 单教师完整报表：记录历史 + 派生统计
// GET /api/v1/reports/teachers/:id
func (h *ReportHandler) GetTeacherReport(c *gin.Context) {
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

	report, err := h.reportSvc.TeacherReport(c.Request.Context(), teacherID, req.StartDate, req.EndDate)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// handleReportError 统一处理报表模块业务错误
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoRecords):
		response.NotFound(c, 17001, "范围内没有出勤记录")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 17002, "导出文件生成失败")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 12001, "教师不存在")
	case errors.Is(err, service.ErrInvalidRange):
		response.BadRequest(c, 16001, "日期范围无效")
	default:
		response.InternalError(c)
	}
}
