package model

// Teacher 教师表 — 对应 teachers
// Department 为自由文本，按值与 departments.name 匹配，无外键约束；
// 聚合侧必须容忍未知/已改名的部门值
type Teacher struct {
	TeacherID      string `gorm:"type:varchar(32);primaryKey"                json:"teacher_id"`
	Name           string `gorm:"type:varchar(100);not null"                 json:"name"`
	Department     string `gorm:"type:varchar(100)"                          json:"department"`
	Email          string `gorm:"type:varchar(255)"                          json:"email,omitempty"`
	Phone          string `gorm:"type:varchar(30)"                           json:"phone,omitempty"`
	PortalUsername string `gorm:"type:varchar(100);uniqueIndex"              json:"portal_username,omitempty"`
	PasswordHash   string `gorm:"type:varchar(255)"                          json:"-"`
	PortalEnabled  bool   `gorm:"not null;default:false"                     json:"portal_enabled"`
	Role           string `gorm:"type:varchar(20);not null;default:'teacher'" json:"role"` // teacher | admin
	BaseModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
