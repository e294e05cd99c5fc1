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

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound   = errors.New("部门不存在")
	ErrDepartmentNameExists = errors.New("部门名称已存在")
)

// DepartmentService 部门业务接口
//
// 删除部门不级联教师：教师的 department 字段是自由文本，
// 失配的值在统计侧归入 Unknown 桶
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	existing, err := s.repo.Department.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询部门失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDepartmentNameExists
	}

	dept := &model.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}

	return s.toDepartmentResponse(ctx, dept), nil
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toDepartmentResponse(ctx, dept), nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}

	// 教师按部门名称字符串归属，一次拉取后在内存计数
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Warn("统计部门人数失败，回退为 0", zap.Error(err))
		teachers = nil
	}
	countByName := make(map[string]int64, len(depts))
	for i := range teachers {
		countByName[teachers[i].Department]++
	}

	out := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		out = append(out, dto.DepartmentResponse{
			DepartmentID: depts[i].DepartmentID,
			Name:         depts[i].Name,
			Description:  depts[i].Description,
			TeacherCount: countByName[depts[i].Name],
			CreatedAt:    depts[i].CreatedAt.Format(time.RFC3339),
			UpdatedAt:    depts[i].UpdatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != dept.Name {
		existing, err := s.repo.Department.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDepartmentNameExists
		}
		// 改名不回写教师行；旧名称的教师在统计侧表现为独立分组
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("更新部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toDepartmentResponse(ctx, dept), nil
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("删除部门失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助 ──

func (s *departmentService) toDepartmentResponse(ctx context.Context, dept *model.Department) *dto.DepartmentResponse {
	var count int64
	teachers, err := s.repo.Teacher.List(ctx)
	if err == nil {
		for i := range teachers {
			if teachers[i].Department == dept.Name {
				count++
			}
		}
	}
	return &dto.DepartmentResponse{
		DepartmentID: dept.DepartmentID,
		Name:         dept.Name,
		Description:  dept.Description,
		TeacherCount: count,
		CreatedAt:    dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    dept.UpdatedAt.Format(time.RFC3339),
	}
}
