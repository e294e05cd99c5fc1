package dto

// ── 预警模块 DTO ──

// AlertListRequest 预警列表查询参数
type AlertListRequest struct {
	UnreadOnly bool `form:"unread"`
}

// AlertResponse 预警响应
type AlertResponse struct {
	AlertID   string `json:"alert_id"`
	TeacherID string `json:"teacher_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Severity  string `json:"severity"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
