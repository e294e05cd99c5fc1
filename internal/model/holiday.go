package model

import "time"

// Holiday 节假日表 — 对应 holidays
// 存在节假日行的日期将从出勤率分母与趋势日序列中剔除
type Holiday struct {
	HolidayID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	Date        time.Time   `gorm:"type:date;not null;uniqueIndex"                 json:"-"`
	Name        string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Type        HolidayType `gorm:"type:varchar(20);not null;default:'public'"     json:"type"`
	Description string      `gorm:"type:text"                                      json:"description,omitempty"`
	CreatedBy   string      `gorm:"type:varchar(100)"                              json:"created_by,omitempty"`
	CreatedAt   time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }

// DateKey 返回 YYYY-MM-DD 形式的日期键
func (h *Holiday) DateKey() string {
	return h.Date.Format(DateLayout)
}
