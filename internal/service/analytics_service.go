package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teachtrack/backend/config"
	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/model"
	"teachtrack/backend/internal/repository"
	"teachtrack/backend/internal/stats"
)

// ── 统计分析模块业务错误 ──

// ErrInvalidRange 起止日期颠倒或缺失
var ErrInvalidRange = errors.New("日期范围无效")

// AnalyticsService 统计分析业务接口
//
// 所有比率计算统一走 internal/stats 聚合引擎，
// 本服务只负责取数、确定时间窗口与响应拼装
type AnalyticsService interface {
	Overview(ctx context.Context) (*dto.OverviewStatsResponse, error)
	Trends(ctx context.Context, req *dto.TrendsRequest) ([]dto.TrendPointResponse, error)
	DepartmentStats(ctx context.Context) ([]dto.DepartmentStatResponse, error)
	TopPerformers(ctx context.Context, limit int) ([]dto.TeacherRateResponse, error)
	AbsenceBreakdown(ctx context.Context, start, end string) (*dto.AbsenceBreakdownResponse, error)
	TeacherAbsences(ctx context.Context, teacherID, start, end string) (*dto.AbsenceBreakdownResponse, error)
}

type analyticsService struct {
	repo       *repository.Repository
	weights    stats.Weights
	loc        *time.Location
	windowDays int
	logger     *zap.Logger

	// now 可注入，测试中固定"今天"
	now func() time.Time
}

// NewAnalyticsService 创建 AnalyticsService 实例
func NewAnalyticsService(repo *repository.Repository, cfg *config.Config, logger *zap.Logger) AnalyticsService {
	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		// Validate 已校验过时区，此处仅兜底
		loc = time.UTC
	}
	return &analyticsService{
		repo:       repo,
		weights:    weightsFromConfig(cfg),
		loc:        loc,
		windowDays: cfg.Report.WindowDays,
		logger:     logger,
		now:        time.Now,
	}
}

// weightsFromConfig 由配置构建折算系数
func weightsFromConfig(cfg *config.Config) stats.Weights {
	w := stats.DefaultWeights()
	w.HalfDay = cfg.Stats.HalfDayCredit
	w.ShortLeave = cfg.Stats.ShortLeaveCredit
	return w
}

// today 配置时区下的当天零点（UTC 存储形式，与 date 列对齐）
func (s *analyticsService) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *analyticsService) Overview(ctx context.Context) (*dto.OverviewStatsResponse, error) {
	today := s.today()
	dateKey := today.Format(model.DateLayout)

	total, err := s.repo.Teacher.Count(ctx)
	if err != nil {
		s.logger.Error("统计教师总数失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.OverviewStatsResponse{
		Date:          dateKey,
		TotalTeachers: int(total),
	}

	// 节假日当天不计出勤，返回全零卡片
	isHoliday, err := s.repo.Holiday.IsHoliday(ctx, today)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}
	if isHoliday {
		resp.IsHoliday = true
		return resp, nil
	}

	records, err := s.repo.Attendance.ListByDate(ctx, today)
	if err != nil {
		s.logger.Error("查询当日出勤失败", zap.String("date", dateKey), zap.Error(err))
		return nil, err
	}

	for i := range records {
		switch records[i].Status {
		case model.StatusPresent:
			resp.PresentToday++
		case model.StatusAbsent:
			resp.AbsentToday++
		case model.StatusHalfDay:
			resp.HalfDayToday++
		case model.StatusShortLeave:
			resp.ShortLeaveToday++
		}
	}
	// 概览卡片取全员口径整数百分比
	resp.AttendanceRate = stats.RoundPercent(stats.HeadcountRate(records, int(total), s.weights))
	return resp, nil
}

func (s *analyticsService) Trends(ctx context.Context, req *dto.TrendsRequest) ([]dto.TrendPointResponse, error) {
	start, end, err := s.resolveWindow(req)
	if err != nil {
		return nil, err
	}
	startKey := start.Format(model.DateLayout)
	endKey := end.Format(model.DateLayout)

	records, err := s.repo.Attendance.ListByRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询区间出勤失败", zap.Error(err))
		return nil, err
	}
	holidays, err := s.repo.Holiday.ListByRange(ctx, &start, &end)
	if err != nil {
		s.logger.Error("查询区间节假日失败", zap.Error(err))
		return nil, err
	}

	tallies := stats.Trend(records, startKey, endKey, stats.NewHolidaySet(holidays), s.weights)

	out := make([]dto.TrendPointResponse, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, dto.TrendPointResponse{
			Date:       t.Date,
			Present:    t.Present,
			Absent:     t.Absent,
			HalfDay:    t.HalfDay,
			ShortLeave: t.ShortLeave,
			Rate:       stats.Round2(t.Rate),
		})
	}
	return out, nil
}

// resolveWindow 解析趋势时间窗口
// 显式 start/end 优先；否则取截至今天的 days 天（默认配置窗口）
// 不依赖调用方的参数校验：畸形日期在此返回 ErrInvalidDate
func (s *analyticsService) resolveWindow(req *dto.TrendsRequest) (time.Time, time.Time, error) {
	if req.StartDate != "" || req.EndDate != "" {
		if req.StartDate == "" || req.EndDate == "" {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		start, err := time.Parse(model.DateLayout, req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		end, err := time.Parse(model.DateLayout, req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, ErrInvalidRange
		}
		return start, end, nil
	}

	days := req.Days
	if days <= 0 {
		days = s.windowDays
	}
	end := s.today()
	return end.AddDate(0, 0, -(days - 1)), end, nil
}

func (s *analyticsService) DepartmentStats(ctx context.Context) ([]dto.DepartmentStatResponse, error) {
	end := s.today()
	start := end.AddDate(0, 0, -(s.windowDays - 1))

	records, err := s.repo.Attendance.ListByRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询区间出勤失败", zap.Error(err))
		return nil, err
	}
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	items := stats.DepartmentStats(records, teachers, s.weights)

	out := make([]dto.DepartmentStatResponse, 0, len(items))
	for _, d := range items {
		out = append(out, dto.DepartmentStatResponse{
			Department:   d.Department,
			TeacherCount: d.TeacherCount,
			Rate:         stats.Round2(d.Rate),
		})
	}
	return out, nil
}

func (s *analyticsService) TopPerformers(ctx context.Context, limit int) ([]dto.TeacherRateResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	end := s.today()
	start := end.AddDate(0, 0, -(s.windowDays - 1))

	records, err := s.repo.Attendance.ListByRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询区间出勤失败", zap.Error(err))
		return nil, err
	}
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	ranked := stats.TopPerformers(records, teachers, s.weights, limit)

	out := make([]dto.TeacherRateResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, dto.TeacherRateResponse{
			TeacherID:   r.TeacherID,
			Name:        r.Name,
			Department:  r.Department,
			Rate:        stats.Round2(r.Rate),
			RecordCount: r.RecordCount,
		})
	}
	return out, nil
}

func (s *analyticsService) AbsenceBreakdown(ctx context.Context, start, end string) (*dto.AbsenceBreakdownResponse, error) {
	startAt, endAt, err := s.breakdownRange(start, end)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListByRange(ctx, startAt, endAt)
	if err != nil {
		s.logger.Error("查询区间出勤失败", zap.Error(err))
		return nil, err
	}
	return dto.NewAbsenceBreakdownResponse(stats.Breakdown(records)), nil
}

func (s *analyticsService) TeacherAbsences(ctx context.Context, teacherID, start, end string) (*dto.AbsenceBreakdownResponse, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	startAt, endAt, err := parseOptionalRange(start, end)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.Attendance.ListByTeacher(ctx, teacherID, startAt, endAt)
	if err != nil {
		s.logger.Error("查询教师出勤失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return dto.NewAbsenceBreakdownResponse(stats.Breakdown(records)), nil
}

// breakdownRange 缺省时取截至今天的配置窗口
func (s *analyticsService) breakdownRange(start, end string) (time.Time, time.Time, error) {
	if start == "" && end == "" {
		endAt := s.today()
		return endAt.AddDate(0, 0, -(s.windowDays - 1)), endAt, nil
	}
	if start == "" || end == "" || start > end {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	startAt, err := time.Parse(model.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	endAt, err := time.Parse(model.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return startAt, endAt, nil
}
