package repository

import (
	"context"

	"gorm.io/gorm"

	"teachtrack/backend/internal/model"
)

// AlertRepository 预警数据访问接口
type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	List(ctx context.Context, unreadOnly bool) ([]model.Alert, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Alert, error)
	MarkRead(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Alert, error)
}

// alertRepo AlertRepository 的 GORM 实现
type alertRepo struct {
	db *gorm.DB
}

// NewAlertRepo 创建 AlertRepository 实例
func NewAlertRepo(db *gorm.DB) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *model.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepo) List(ctx context.Context, unreadOnly bool) ([]model.Alert, error) {
	q := r.db.WithContext(ctx)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var alerts []model.Alert
	err := q.Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Alert, error) {
	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (*model.Alert, error) {
	var alert model.Alert
	err := r.db.WithContext(ctx).
		Where("alert_id = ?", id).
		First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepo) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("alert_id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
