package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/model"
	"teachtrack/backend/internal/repository"
)

// ── 出勤标记模块业务错误 ──

var (
	ErrAbsentCategoryRequired   = errors.New("status=absent 时必须提供缺勤类别")
	ErrAbsentCategoryNotAllowed = errors.New("非 absent 状态不得携带缺勤类别")
	ErrInvalidStatus            = errors.New("不支持的出勤状态")
	ErrInvalidDate              = errors.New("日期格式必须为 YYYY-MM-DD")
	ErrDuplicateBulkTeacher     = errors.New("批量标记中同一教师出现多次")
)

// AttendanceService 出勤标记业务接口
type AttendanceService interface {
	// Mark 标记单条出勤；同一 (teacher, date) 重复标记原地更新
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest, recordedBy string) (*dto.AttendanceRecordResponse, error)
	// BulkMark 批量标记同一天的多名教师，整批单语句原子落库
	BulkMark(ctx context.Context, req *dto.BulkMarkRequest, recordedBy string) (*dto.BulkMarkResponse, error)
	ListByDate(ctx context.Context, date string) ([]dto.AttendanceRecordResponse, error)
	ListByTeacher(ctx context.Context, teacherID string, start, end string) ([]dto.AttendanceRecordResponse, error)
}

type attendanceService struct {
	repo     *repository.Repository
	alertSvc AlertService
	logger   *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
// alertSvc 可为 nil（预警检测关闭时）
func NewAttendanceService(repo *repository.Repository, alertSvc AlertService, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, alertSvc: alertSvc, logger: logger}
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest, recordedBy string) (*dto.AttendanceRecordResponse, error) {
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	record, err := buildRecord(req.TeacherID, date, req.Status, req.AbsentCategory, req.CheckInTime, req.CheckOutTime, req.Notes, recordedBy)
	if err != nil {
		return nil, err
	}

	// 校验教师存在
	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("teacher_id", req.TeacherID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Attendance.Upsert(ctx, record); err != nil {
		s.logger.Error("写入出勤记录失败",
			zap.String("teacher_id", req.TeacherID),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return nil, err
	}

	s.evaluateAlert(ctx, req.TeacherID, req.Date, record.Status)

	// upsert 后回读，拿到稳定的 record_id 与时间戳
	stored, err := s.repo.Attendance.GetByTeacherAndDate(ctx, req.TeacherID, date)
	if err != nil {
		s.logger.Error("回读出勤记录失败", zap.Error(err))
		return nil, err
	}

	return toAttendanceResponse(stored), nil
}

// ────────────────────── BulkMark ──────────────────────

func (s *attendanceService) BulkMark(ctx context.Context, req *dto.BulkMarkRequest, recordedBy string) (*dto.BulkMarkResponse, error) {
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// 同批次内去重：同一教师出现两次会让单语句 upsert 行为不确定
	seen := make(map[string]struct{}, len(req.Items))
	records := make([]model.AttendanceRecord, 0, len(req.Items))
	for i := range req.Items {
		item := &req.Items[i]
		if _, dup := seen[item.TeacherID]; dup {
			return nil, ErrDuplicateBulkTeacher
		}
		seen[item.TeacherID] = struct{}{}

		record, err := buildRecord(item.TeacherID, date, item.Status, item.AbsentCategory, item.CheckInTime, nil, item.Notes, recordedBy)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := s.repo.Attendance.BatchUpsert(ctx, records); err != nil {
		s.logger.Error("批量写入出勤记录失败",
			zap.String("date", req.Date),
			zap.Int("count", len(records)),
			zap.Error(err),
		)
		return nil, err
	}

	for i := range records {
		s.evaluateAlert(ctx, records[i].TeacherID, req.Date, records[i].Status)
	}

	return &dto.BulkMarkResponse{Date: req.Date, Marked: len(records)}, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *attendanceService) ListByDate(ctx context.Context, dateStr string) ([]dto.AttendanceRecordResponse, error) {
	date, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	records, err := s.repo.Attendance.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("按日期查询出勤失败", zap.String("date", dateStr), zap.Error(err))
		return nil, err
	}

	return toAttendanceResponses(records), nil
}

func (s *attendanceService) ListByTeacher(ctx context.Context, teacherID, start, end string) ([]dto.AttendanceRecordResponse, error) {
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
		s.logger.Error("按教师查询出勤失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	return toAttendanceResponses(records), nil
}

// ── 内部辅助 ──

// buildRecord 构建待写入记录并校验关联不变量：
// absentCategory 当且仅当 status=absent 时出现
func buildRecord(teacherID string, date time.Time, status string, category *string, checkIn, checkOut *string, notes, recordedBy string) (*model.AttendanceRecord, error) {
	st := model.AttendanceStatus(status)
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}

	var cat *model.AbsentCategory
	if st == model.StatusAbsent {
		if category == nil {
			return nil, ErrAbsentCategoryRequired
		}
		c := model.AbsentCategory(*category)
		if !c.Valid() {
			return nil, ErrAbsentCategoryRequired
		}
		cat = &c
	} else if category != nil {
		return nil, ErrAbsentCategoryNotAllowed
	}

	return &model.AttendanceRecord{
		TeacherID:      teacherID,
		Date:           date,
		Status:         st,
		AbsentCategory: cat,
		CheckInTime:    checkIn,
		CheckOutTime:   checkOut,
		Notes:          notes,
		RecordedBy:     recordedBy,
	}, nil
}

// evaluateAlert 标记后触发缺勤模式检测；检测失败只记日志，不影响主流程
func (s *attendanceService) evaluateAlert(ctx context.Context, teacherID, date string, status model.AttendanceStatus) {
	if s.alertSvc == nil || status != model.StatusAbsent {
		return
	}
	if err := s.alertSvc.EvaluateTeacher(ctx, teacherID, date); err != nil {
		s.logger.Warn("缺勤预警检测失败", zap.String("teacher_id", teacherID), zap.Error(err))
	}
}

func toAttendanceResponse(r *model.AttendanceRecord) *dto.AttendanceRecordResponse {
	resp := &dto.AttendanceRecordResponse{
		RecordID:     r.RecordID,
		TeacherID:    r.TeacherID,
		Date:         r.DateKey(),
		Status:       string(r.Status),
		CheckInTime:  r.CheckInTime,
		CheckOutTime: r.CheckOutTime,
		Notes:        r.Notes,
		RecordedBy:   r.RecordedBy,
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
	if r.AbsentCategory != nil {
		c := string(*r.AbsentCategory)
		resp.AbsentCategory = &c
	}
	return resp
}

func toAttendanceResponses(records []model.AttendanceRecord) []dto.AttendanceRecordResponse {
	out := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, *toAttendanceResponse(&records[i]))
	}
	return out
}

// parseOptionalRange 解析可选的起止日期
func parseOptionalRange(start, end string) (*time.Time, *time.Time, error) {
	var startAt, endAt *time.Time
	if start != "" {
		t, err := time.Parse(model.DateLayout, start)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		startAt = &t
	}
	if end != "" {
		t, err := time.Parse(model.DateLayout, end)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		endAt = &t
	}
	return startAt, endAt, nil
}
