package dto

// ── 报表与导出模块 DTO ──

// ExportRequest 导出查询参数
type ExportRequest struct {
	StartDate string `form:"start"  binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end"    binding:"omitempty,datetime=2006-01-02"`
	Format    string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

// ExportRow 每教师汇总导出行
type ExportRow struct {
	TeacherID     string  `json:"teacher_id"`
	Name          string  `json:"name"`
	Department    string  `json:"department"`
	Present       int     `json:"present"`
	HalfDay       int     `json:"half_day"`
	ShortLeave    int     `json:"short_leave"`
	TotalAbsent   int     `json:"total_absent"`
	OfficialLeave int     `json:"official_leave"`
	PrivateLeave  int     `json:"private_leave"`
	SickLeave     int     `json:"sick_leave"`
	Rate          float64 `json:"rate"` // 实记口径，两位小数
}

// TeacherReportResponse 单教师完整报表：记录历史 + 派生统计
type TeacherReportResponse struct {
	Teacher   TeacherResponse            `json:"teacher"`
	StartDate string                     `json:"start_date,omitempty"`
	EndDate   string                     `json:"end_date,omitempty"`
	Records   []AttendanceRecordResponse `json:"records"`
	Breakdown AbsenceBreakdownResponse   `json:"breakdown"`
	Rate      float64                    `json:"rate"` // 实记口径，两位小数
}
