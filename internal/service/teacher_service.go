package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/model"
	"teachtrack/backend/internal/repository"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound   = errors.New("教师不存在")
	ErrTeacherIDExists   = errors.New("教师编号已存在")
	ErrUsernameExists    = errors.New("门户用户名已被占用")
	ErrTeacherHasRecords = errors.New("教师存在出勤记录，无法删除")
)

// TeacherService 教师业务接口
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	// Delete 仅在教师无任何出勤记录时允许删除
	Delete(ctx context.Context, id string) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	teacherID := strings.TrimSpace(req.TeacherID)
	if teacherID == "" {
		teacherID = generateTeacherID()
	}

	// 编号唯一性
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err == nil {
		return nil, ErrTeacherIDExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}

	teacher := &model.Teacher{
		TeacherID:     teacherID,
		Name:          req.Name,
		Department:    strings.TrimSpace(req.Department),
		Email:         req.Email,
		Phone:         req.Phone,
		PortalEnabled: req.PortalEnabled,
		Role:          "teacher",
	}

	if req.PortalUsername != "" {
		if err := s.ensureUsernameFree(ctx, req.PortalUsername, ""); err != nil {
			return nil, err
		}
		teacher.PortalUsername = req.PortalUsername
	}
	if req.PortalPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.PortalPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		teacher.PasswordHash = string(hash)
	}

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	return toTeacherResponse(teacher), nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, *toTeacherResponse(&teachers[i]))
	}
	return out, nil
}

// ────────────────────── Update ──────────────────────

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Department != nil {
		teacher.Department = strings.TrimSpace(*req.Department)
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.PortalUsername != nil && *req.PortalUsername != teacher.PortalUsername {
		if err := s.ensureUsernameFree(ctx, *req.PortalUsername, id); err != nil {
			return nil, err
		}
		teacher.PortalUsername = *req.PortalUsername
	}
	if req.PortalPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.PortalPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		teacher.PasswordHash = string(hash)
	}
	if req.PortalEnabled != nil {
		teacher.PortalEnabled = *req.PortalEnabled
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("更新教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTeacherResponse(teacher), nil
}

// ────────────────────── Delete ──────────────────────

func (s *teacherService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}

	count, err := s.repo.Attendance.CountByTeacher(ctx, id)
	if err != nil {
		s.logger.Error("统计教师出勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrTeacherHasRecords
	}

	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

// generateTeacherID 生成形如 T-3f9a1c2b 的可读教师编号
func generateTeacherID() string {
	return "T-" + uuid.New().String()[:8]
}

func (s *teacherService) ensureUsernameFree(ctx context.Context, username, selfID string) error {
	existing, err := s.repo.Teacher.GetByPortalUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.TeacherID != selfID {
		return ErrUsernameExists
	}
	return nil
}

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		TeacherID:      t.TeacherID,
		Name:           t.Name,
		Department:     t.Department,
		Email:          t.Email,
		Phone:          t.Phone,
		PortalUsername: t.PortalUsername,
		PortalEnabled:  t.PortalEnabled,
		Role:           t.Role,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
	}
}
