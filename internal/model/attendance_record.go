package model

import "time"

// AttendanceRecord 出勤记录表 — 对应 attendance_records
// 每教师每自然日最多一行，由 (teacher_id, date) 唯一约束保证；
// 重复标记走 upsert 原地更新，正常流程中不做物理删除
type AttendanceRecord struct {
	RecordID       string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	TeacherID      string           `gorm:"type:varchar(32);not null;uniqueIndex:uq_attendance_teacher_date,priority:1" json:"teacher_id"`
	Date           time.Time        `gorm:"type:date;not null;uniqueIndex:uq_attendance_teacher_date,priority:2"        json:"-"`
	Status         AttendanceStatus `gorm:"type:varchar(20);not null"  json:"status"`
	AbsentCategory *AbsentCategory  `gorm:"type:varchar(20)"           json:"absent_category,omitempty"` // 仅 status=absent 时非空
	CheckInTime    *string          `gorm:"type:varchar(8)"            json:"check_in_time,omitempty"`
	CheckOutTime   *string          `gorm:"type:varchar(8)"            json:"check_out_time,omitempty"`
	Notes          string           `gorm:"type:text"                  json:"notes,omitempty"`
	RecordedBy     string           `gorm:"type:varchar(100)"          json:"recorded_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }

// DateKey 返回 YYYY-MM-DD 形式的日期键
func (r *AttendanceRecord) DateKey() string {
	return r.Date.Format(DateLayout)
}
