package dto

// ── 认证模块 DTO ──

// LoginRequest 门户登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=1,max=72"`
}

// TokenResponse 登录/刷新响应
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TeacherID    string `json:"teacher_id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
