package handler

import "teachtrack/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Teacher    *TeacherHandler
	Department *DepartmentHandler
	Attendance *AttendanceHandler
	Holiday    *HolidayHandler
	Analytics  *AnalyticsHandler
	Report     *ReportHandler
	Alert      *AlertHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Teacher:    NewTeacherHandler(svc.Teacher, svc.Analytics),
		Department: NewDepartmentHandler(svc.Department),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Holiday:    NewHolidayHandler(svc.Holiday),
		Analytics:  NewAnalyticsHandler(svc.Analytics),
		Report:     NewReportHandler(svc.Report),
		Alert:      NewAlertHandler(svc.Alert),
	}
}
