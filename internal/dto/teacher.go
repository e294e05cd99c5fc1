package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
// TeacherID 留空时由服务端自动生成
type CreateTeacherRequest struct {
	TeacherID      string `json:"teacher_id"      binding:"omitempty,max=32"`
	Name           string `json:"name"            binding:"required,min=1,max=100"`
	Department     string `json:"department"      binding:"omitempty,max=100"`
	Email          string `json:"email"           binding:"omitempty,email,max=255"`
	Phone          string `json:"phone"           binding:"omitempty,max=30"`
	PortalUsername string `json:"portal_username" binding:"omitempty,min=3,max=100"`
	PortalPassword string `json:"portal_password" binding:"omitempty,min=8,max=72"`
	PortalEnabled  bool   `json:"portal_enabled"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Name           *string `json:"name"            binding:"omitempty,min=1,max=100"`
	Department     *string `json:"department"      binding:"omitempty,max=100"`
	Email          *string `json:"email"           binding:"omitempty,email,max=255"`
	Phone          *string `json:"phone"           binding:"omitempty,max=30"`
	PortalUsername *string `json:"portal_username" binding:"omitempty,min=3,max=100"`
	PortalPassword *string `json:"portal_password" binding:"omitempty,min=8,max=72"`
	PortalEnabled  *bool   `json:"portal_enabled"`
}

// TeacherResponse 教师详细信息响应
type TeacherResponse struct {
	TeacherID      string `json:"teacher_id"`
	Name           string `json:"name"`
	Department     string `json:"department,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	PortalUsername string `json:"portal_username,omitempty"`
	PortalEnabled  bool   `json:"portal_enabled"`
	Role           string `json:"role"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
