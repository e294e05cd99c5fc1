package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Teacher    TeacherRepository
	Department DepartmentRepository
	Attendance AttendanceRepository
	Holiday    HolidayRepository
	Alert      AlertRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Teacher:    NewTeacherRepo(db),
		Department: NewDepartmentRepo(db),
		Attendance: NewAttendanceRepo(db),
		Holiday:    NewHolidayRepo(db),
		Alert:      NewAlertRepo(db),
	}
}
