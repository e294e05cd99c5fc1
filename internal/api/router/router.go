package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teachtrack/backend/config"
	"teachtrack/backend/internal/api/handler"
	"teachtrack/backend/internal/api/middleware"
	"teachtrack/backend/pkg/jwt"
	"teachtrack/backend/pkg/redis"
)

// 请求体大小上限（导入 ICS 内容走 JSON body，放宽到 8MB）
const maxBodyBytes = 8 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流防爆破）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 教师模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.ListTeachers)
				teachers.GET("/:id", h.Teacher.GetTeacher)
				teachers.POST("", middleware.RoleAuth("admin"), h.Teacher.CreateTeacher)
				teachers.PUT("/:id", middleware.RoleAuth("admin"), h.Teacher.UpdateTeacher)
				teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.DeleteTeacher)
				teachers.GET("/:id/attendance", h.Attendance.ListByTeacher)
				teachers.GET("/:id/absences", h.Teacher.GetTeacherAbsences)
				teachers.GET("/:id/alerts", h.Alert.ListTeacherAlerts)
			}

			// 部门模块
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.POST("", middleware.RoleAuth("admin"), h.Department.CreateDepartment)
				departments.PUT("/:id", middleware.RoleAuth("admin"), h.Department.UpdateDepartment)
				departments.DELETE("/:id", middleware.RoleAuth("admin"), h.Department.DeleteDepartment)
			}

			// 出勤标记模块
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("", h.Attendance.MarkAttendance)
				attendance.POST("/bulk", h.Attendance.BulkMarkAttendance)
				attendance.GET("", h.Attendance.ListByDate)
			}

			// 节假日模块
			holidays := authorized.Group("/holidays")
			{
				holidays.GET("", h.Holiday.ListHolidays)
				holidays.POST("", middleware.RoleAuth("admin"), h.Holiday.CreateHoliday)
				holidays.DELETE("/:id", middleware.RoleAuth("admin"), h.Holiday.DeleteHoliday)
				holidays.POST("/import", middleware.RoleAuth("admin"), h.Holiday.ImportHolidays)
			}

			// 统计分析模块
			analytics := authorized.Group("/analytics")
			{
				analytics.GET("/overview", h.Analytics.GetOverview)
				analytics.GET("/trends", h.Analytics.GetTrends)
				analytics.GET("/departments", h.Analytics.GetDepartmentStats)
				analytics.GET("/top-performers", h.Analytics.GetTopPerformers)
				analytics.GET("/absences", h.Analytics.GetAbsenceBreakdown)
			}

			// 报表与导出模块
			authorized.GET("/export/attendance", middleware.RoleAuth("admin"), h.Report.ExportAttendance)
			authorized.GET("/reports/teachers/:id", h.Report.GetTeacherReport)

			// 预警模块
			alerts := authorized.Group("/alerts")
			{
				alerts.GET("", h.Alert.ListAlerts)
				alerts.PUT("/:id/read", h.Alert.MarkAlertRead)
			}
		}
	}

	return r
}
