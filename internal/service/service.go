package service

import (
	"go.uber.org/zap"

	"teachtrack/backend/config"
	"teachtrack/backend/internal/repository"
	"teachtrack/backend/pkg/jwt"
	"teachtrack/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Teacher    TeacherService
	Department DepartmentService
	Attendance AttendanceService
	Holiday    HolidayService
	Analytics  AnalyticsService
	Report     ReportService
	Alert      AlertService
}

// NewService 创建 Service 聚合
// rdb 可为 nil：Redis 降级时黑名单与限流自动关闭
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	alertSvc := NewAlertService(repo, cfg, logger)
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, rdb, logger),
		Teacher:    NewTeacherService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Attendance: NewAttendanceService(repo, alertSvc, logger),
		Holiday:    NewHolidayService(repo, logger),
		Analytics:  NewAnalyticsService(repo, cfg, logger),
		Report:     NewReportService(repo, cfg, logger),
		Alert:      alertSvc,
	}
}
