package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teachtrack/backend/internal/model"
)

// AttendanceRepository 出勤记录数据访问接口
//
// Upsert/BatchUpsert 以单条 INSERT ... ON CONFLICT (teacher_id, date)
// DO UPDATE 实现：并发标记同一教师同一天时由唯一约束保证不产生重复行，
// 取代历史上"先查再写"的竞态实现
type AttendanceRepository interface {
	Upsert(ctx context.Context, record *model.AttendanceRecord) error
	BatchUpsert(ctx context.Context, records []model.AttendanceRecord) error
	GetByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) (*model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceRecord, error)
	ListByTeacher(ctx context.Context, teacherID string, start, end *time.Time) ([]model.AttendanceRecord, error)
	ListByRange(ctx context.Context, start, end time.Time) ([]model.AttendanceRecord, error)
	CountByTeacher(ctx context.Context, teacherID string) (int64, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// upsertColumns 冲突时原地更新的列；created_at 与 record_id 保持首次写入值
var upsertColumns = []string{
	"status", "absent_category", "check_in_time", "check_out_time",
	"notes", "recorded_by", "updated_at",
}

func (r *attendanceRepo) Upsert(ctx context.Context, record *model.AttendanceRecord) error {
	record.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "teacher_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(record).Error
}

// BatchUpsert 批量标记：所有行在一条语句内原子落库，整批无跨行依赖
func (r *attendanceRepo) BatchUpsert(ctx context.Context, records []model.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now()
	for i := range records {
		records[i].UpdatedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "teacher_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(&records).Error
}

func (r *attendanceRepo) GetByTeacherAndDate(ctx context.Context, teacherID string, date time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND date = ?", teacherID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("teacher_id ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByTeacher(ctx context.Context, teacherID string, start, end *time.Time) ([]model.AttendanceRecord, error) {
	q := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID)
	if start != nil {
		q = q.Where("date >= ?", *start)
	}
	if end != nil {
		q = q.Where("date <= ?", *end)
	}

	var records []model.AttendanceRecord
	err := q.Order("date ASC").Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByRange(ctx context.Context, start, end time.Time) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) CountByTeacher(ctx context.Context, teacherID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error
	return count, err
}
