package dto

import "teachtrack/backend/internal/stats"

// ── 统计分析模块 DTO ──

// OverviewStatsResponse 首页概览卡片
// AttendanceRate 为全员口径的整数百分比
type OverviewStatsResponse struct {
	Date            string `json:"date"`
	IsHoliday       bool   `json:"is_holiday"`
	TotalTeachers   int    `json:"total_teachers"`
	PresentToday    int    `json:"present_today"`
	AbsentToday     int    `json:"absent_today"`
	HalfDayToday    int    `json:"half_day_today"`
	ShortLeaveToday int    `json:"short_leave_today"`
	AttendanceRate  int    `json:"attendance_rate"`
}

// TrendsRequest 趋势查询参数
// days 与 start/end 二选一；同时提供时以显式范围为准
type TrendsRequest struct {
	Days      int    `form:"days"  binding:"omitempty,min=1,max=366"`
	StartDate string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end"   binding:"omitempty,datetime=2006-01-02"`
}

// TrendPointResponse 单日趋势点（比率保留两位小数）
type TrendPointResponse struct {
	Date       string  `json:"date"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	HalfDay    int     `json:"half_day"`
	ShortLeave int     `json:"short_leave"`
	Rate       float64 `json:"rate"`
}

// DepartmentStatResponse 部门统计项（比率保留两位小数）
type DepartmentStatResponse struct {
	Department   string  `json:"department"`
	TeacherCount int     `json:"teacher_count"`
	Rate         float64 `json:"rate"`
}

// TopPerformersRequest 排名查询参数
type TopPerformersRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// TeacherRateResponse 教师排名项（比率保留两位小数）
type TeacherRateResponse struct {
	TeacherID   string  `json:"teacher_id"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	Rate        float64 `json:"rate"`
	RecordCount int     `json:"record_count"`
}

// AbsenceBreakdownResponse 缺勤构成响应
// ShortLeave 为并列计数，不计入 TotalAbsent
type AbsenceBreakdownResponse struct {
	TotalAbsent   int `json:"total_absent"`
	OfficialLeave int `json:"official_leave"`
	PrivateLeave  int `json:"private_leave"`
	SickLeave     int `json:"sick_leave"`
	ShortLeave    int `json:"short_leave"`
}

// NewAbsenceBreakdownResponse 由引擎输出构建响应
func NewAbsenceBreakdownResponse(b stats.AbsenceBreakdown) *AbsenceBreakdownResponse {
	return &AbsenceBreakdownResponse{
		TotalAbsent:   b.TotalAbsent,
		OfficialLeave: b.OfficialLeave,
		PrivateLeave:  b.PrivateLeave,
		SickLeave:     b.SickLeave,
		ShortLeave:    b.ShortLeave,
	}
}
