package dto

// ── 出勤标记模块 DTO ──

// MarkAttendanceRequest 标记单条出勤请求
// 同一教师同一天重复提交走 upsert 原地更新
type MarkAttendanceRequest struct {
	TeacherID      string  `json:"teacher_id"      binding:"required,max=32"`
	Date           string  `json:"date"            binding:"required,datetime=2006-01-02"`
	Status         string  `json:"status"          binding:"required,oneof=present absent half_day short_leave"`
	AbsentCategory *string `json:"absent_category" binding:"omitempty,oneof=official_leave private_leave sick_leave"`
	CheckInTime    *string `json:"check_in_time"   binding:"omitempty,max=8"`
	CheckOutTime   *string `json:"check_out_time"  binding:"omitempty,max=8"`
	Notes          string  `json:"notes"           binding:"omitempty,max=500"`
}

// BulkMarkItem 批量标记中的单条目
type BulkMarkItem struct {
	TeacherID      string  `json:"teacher_id"      binding:"required,max=32"`
	Status         string  `json:"status"          binding:"required,oneof=present absent half_day short_leave"`
	AbsentCategory *string `json:"absent_category" binding:"omitempty,oneof=official_leave private_leave sick_leave"`
	CheckInTime    *string `json:"check_in_time"   binding:"omitempty,max=8"`
	Notes          string  `json:"notes"           binding:"omitempty,max=500"`
}

// BulkMarkRequest 批量标记请求（同一天多名教师）
type BulkMarkRequest struct {
	Date  string         `json:"date"  binding:"required,datetime=2006-01-02"`
	Items []BulkMarkItem `json:"items" binding:"required,min=1,max=500,dive"`
}

// BulkMarkResponse 批量标记响应
type BulkMarkResponse struct {
	Date   string `json:"date"`
	Marked int    `json:"marked"`
}

// AttendanceRecordResponse 出勤记录响应
type AttendanceRecordResponse struct {
	RecordID       string  `json:"record_id"`
	TeacherID      string  `json:"teacher_id"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	AbsentCategory *string `json:"absent_category,omitempty"`
	CheckInTime    *string `json:"check_in_time,omitempty"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	RecordedBy     string  `json:"recorded_by,omitempty"`
	UpdatedAt      string  `json:"updated_at"`
}

// AttendanceByDateRequest 按日期查询参数
type AttendanceByDateRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// DateRangeRequest 通用日期范围查询参数
type DateRangeRequest struct {
	StartDate string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end"   binding:"omitempty,datetime=2006-01-02"`
}
