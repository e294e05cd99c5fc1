package dto

// ── 节假日模块 DTO ──

// CreateHolidayRequest 创建节假日请求
type CreateHolidayRequest struct {
	Date        string `json:"date"        binding:"required,datetime=2006-01-02"`
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Type        string `json:"type"        binding:"omitempty,oneof=public school emergency"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// HolidayResponse 节假日响应
type HolidayResponse struct {
	HolidayID   string `json:"holiday_id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// ImportHolidaysRequest 从 iCalendar 导入节假日请求
// URL 与 Content 二选一：提供 URL 时由服务端拉取
type ImportHolidaysRequest struct {
	URL     string `json:"url"     binding:"omitempty,max=2048"`
	Content string `json:"content" binding:"omitempty"`
	Type    string `json:"type"    binding:"omitempty,oneof=public school emergency"`
}

// ImportHolidaysResponse 导入结果
type ImportHolidaysResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"` // 已存在或超范围的事件
}
