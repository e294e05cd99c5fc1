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
	"teachtrack/backend/internal/stats"
)

// ── 节假日模块业务错误 ──

var (
	ErrHolidayExists   = errors.New("该日期已登记为节假日")
	ErrHolidayNotFound = errors.New("节假日不存在")
)

// HolidayService 节假日业务接口
// 存在节假日行的日期会被从出勤率分母与趋势日序列中剔除
type HolidayService interface {
	Create(ctx context.Context, req *dto.CreateHolidayRequest, createdBy string) (*dto.HolidayResponse, error)
	List(ctx context.Context, start, end string) ([]dto.HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// ImportICS 从 iCalendar 内容或 URL 批量导入节假日
	ImportICS(ctx context.Context, req *dto.ImportHolidaysRequest, createdBy string) (*dto.ImportHolidaysResponse, error)
	// SetForRange 构建范围内的节假日日期集合，供聚合引擎消费
	SetForRange(ctx context.Context, start, end time.Time) (stats.HolidaySet, error)
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) Create(ctx context.Context, req *dto.CreateHolidayRequest, createdBy string) (*dto.HolidayResponse, error) {
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	exists, err := s.repo.Holiday.IsHoliday(ctx, date)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrHolidayExists
	}

	htype := model.HolidayType(req.Type)
	if req.Type == "" {
		htype = model.HolidayPublic
	}

	holiday := &model.Holiday{
		Date:        date,
		Name:        req.Name,
		Type:        htype,
		Description: req.Description,
		CreatedBy:   createdBy,
	}

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("创建节假日失败", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	return toHolidayResponse(holiday), nil
}

func (s *holidayService) List(ctx context.Context, start, end string) ([]dto.HolidayResponse, error) {
	startAt, endAt, err := parseOptionalRange(start, end)
	if err != nil {
		return nil, err
	}

	holidays, err := s.repo.Holiday.ListByRange(ctx, startAt, endAt)
	if err != nil {
		s.logger.Error("列出节假日失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		out = append(out, *toHolidayResponse(&holidays[i]))
	}
	return out, nil
}

func (s *holidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Holiday.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		s.logger.Error("删除节假日失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *holidayService) SetForRange(ctx context.Context, start, end time.Time) (stats.HolidaySet, error) {
	holidays, err := s.repo.Holiday.ListByRange(ctx, &start, &end)
	if err != nil {
		return nil, err
	}
	return stats.NewHolidaySet(holidays), nil
}

func toHolidayResponse(h *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		HolidayID:   h.HolidayID,
		Date:        h.DateKey(),
		Name:        h.Name,
		Type:        string(h.Type),
		Description: h.Description,
		CreatedBy:   h.CreatedBy,
	}
}
