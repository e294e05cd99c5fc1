package model

import "time"

// Alert 缺勤预警表 — 对应 alerts
// 由出勤标记后的模式检测策略派生生成
type Alert struct {
	AlertID   string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"alert_id"`
	TeacherID string        `gorm:"type:varchar(32);not null;index"                json:"teacher_id"`
	Type      string        `gorm:"type:varchar(50);not null"                      json:"type"`
	Message   string        `gorm:"type:text;not null"                             json:"message"`
	Severity  AlertSeverity `gorm:"type:varchar(10);not null"                      json:"severity"`
	IsRead    bool          `gorm:"not null;default:false"                         json:"is_read"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Alert) TableName() string { return "alerts" }
