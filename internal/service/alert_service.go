package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teachtrack/backend/config"
	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/model"
	"teachtrack/backend/internal/repository"
	"teachtrack/backend/internal/stats"
)

// ── 预警模块业务错误 ──

// ErrAlertNotFound 预警不存在
var ErrAlertNotFound = errors.New("预警不存在")

// alertTypeConsecutive 连续缺勤预警类型
const alertTypeConsecutive = "consecutive_absence"

// AlertService 缺勤预警业务接口
type AlertService interface {
	// EvaluateTeacher 在出勤标记为缺勤后触发：
	// 回溯该教师截至 date 的连续缺勤天数，达到阈值则生成预警
	EvaluateTeacher(ctx context.Context, teacherID, date string) error
	List(ctx context.Context, unreadOnly bool) ([]dto.AlertResponse, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]dto.AlertResponse, error)
	MarkRead(ctx context.Context, id string) error
}

// alertThreshold 连续缺勤天数到预警级别的映射项
type alertThreshold struct {
	days     int
	severity model.AlertSeverity
}

type alertService struct {
	repo *repository.Repository
	// thresholds 按天数降序，命中第一条即为当前级别
	thresholds []alertThreshold
	logger     *zap.Logger
}

// NewAlertService 创建 AlertService 实例
func NewAlertService(repo *repository.Repository, cfg *config.Config, logger *zap.Logger) AlertService {
	return &alertService{
		repo: repo,
		thresholds: []alertThreshold{
			{days: cfg.Alert.ConsecutiveHigh, severity: model.SeverityHigh},
			{days: cfg.Alert.ConsecutiveMedium, severity: model.SeverityMedium},
			{days: cfg.Alert.ConsecutiveLow, severity: model.SeverityLow},
		},
		logger: logger,
	}
}

func (s *alertService) EvaluateTeacher(ctx context.Context, teacherID, date string) error {
	asOf, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return ErrInvalidDate
	}

	// 回溯窗口覆盖扫描上限即可
	start := asOf.AddDate(-1, 0, -1)
	records, err := s.repo.Attendance.ListByTeacher(ctx, teacherID, &start, &asOf)
	if err != nil {
		return err
	}
	holidays, err := s.repo.Holiday.ListByRange(ctx, &start, &asOf)
	if err != nil {
		return err
	}

	streak := stats.ConsecutiveAbsences(records, stats.NewHolidaySet(holidays), date)

	severity, hit := s.matchSeverity(streak)
	if !hit {
		return nil
	}

	// 恰好达到阈值当天才生成，避免同一级别每日重复告警
	if !s.isExactThreshold(streak) {
		return nil
	}

	message := fmt.Sprintf("教师 %s 已连续缺勤 %d 天（截至 %s）", teacherID, streak, date)

	// 同教师同日重复标记走 upsert，检测会以相同的 streak 与截止日重算；
	// 已存在同内容预警时跳过，保证重复标记不产生第二条
	existing, err := s.repo.Alert.ListByTeacher(ctx, teacherID)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].Type == alertTypeConsecutive && existing[i].Message == message {
			return nil
		}
	}

	alert := &model.Alert{
		TeacherID: teacherID,
		Type:      alertTypeConsecutive,
		Message:   message,
		Severity:  severity,
	}
	if err := s.repo.Alert.Create(ctx, alert); err != nil {
		return err
	}

	s.logger.Info("生成连续缺勤预警",
		zap.String("teacher_id", teacherID),
		zap.Int("streak", streak),
		zap.String("severity", string(severity)))
	return nil
}

// matchSeverity 返回 streak 命中的最高预警级别
func (s *alertService) matchSeverity(streak int) (model.AlertSeverity, bool) {
	for _, t := range s.thresholds {
		if t.days > 0 && streak >= t.days {
			return t.severity, true
		}
	}
	return "", false
}

// isExactThreshold streak 是否恰好等于某一阈值
func (s *alertService) isExactThreshold(streak int) bool {
	for _, t := range s.thresholds {
		if t.days > 0 && streak == t.days {
			return true
		}
	}
	return false
}

func (s *alertService) List(ctx context.Context, unreadOnly bool) ([]dto.AlertResponse, error) {
	alerts, err := s.repo.Alert.List(ctx, unreadOnly)
	if err != nil {
		s.logger.Error("列出预警失败", zap.Error(err))
		return nil, err
	}
	return toAlertResponses(alerts), nil
}

func (s *alertService) ListByTeacher(ctx context.Context, teacherID string) ([]dto.AlertResponse, error) {
	alerts, err := s.repo.Alert.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("列出教师预警失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return toAlertResponses(alerts), nil
}

func (s *alertService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.Alert.MarkRead(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		s.logger.Error("标记预警已读失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toAlertResponses(alerts []model.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		out = append(out, dto.AlertResponse{
			AlertID:   a.AlertID,
			TeacherID: a.TeacherID,
			Type:      a.Type,
			Message:   a.Message,
			Severity:  string(a.Severity),
			IsRead:    a.IsRead,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
