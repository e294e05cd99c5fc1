package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"teachtrack/backend/internal/dto"
)

func setupDepartmentService(r *testRepos) DepartmentService {
	return NewDepartmentService(r.repo, zap.NewNop())
}

func TestCreateDepartment_Success(t *testing.T) {
	r := newTestRepos()
	svc := setupDepartmentService(r)

	resp, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name: "数学组", Description: "初中数学教研组",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.DepartmentID == "" {
		t.Error("DepartmentID 不应为空")
	}
	if resp.Name != "数学组" {
		t.Errorf("期望 name=数学组，实际=%s", resp.Name)
	}
}

func TestCreateDepartment_DuplicateName(t *testing.T) {
	r := newTestRepos()
	svc := setupDepartmentService(r)

	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "数学组"}); err != nil {
		t.Fatalf("首次 Create 失败: %v", err)
	}
	_, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "数学组"})
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

func TestListDepartments_TeacherCounts(t *testing.T) {
	r := newTestRepos()
	svc := setupDepartmentService(r)

	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "数学组"}); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	addTeacher(r, "T1", "王老师", "数学组")
	addTeacher(r, "T2", "李老师", "数学组")
	addTeacher(r, "T3", "张老师", "语文组") // 无对应部门行

	out, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("期望 1 个部门，实际=%d", len(out))
	}
	if out[0].TeacherCount != 2 {
		t.Errorf("期望 teacher_count=2，实际=%d", out[0].TeacherCount)
	}
}

func TestUpdateDepartment_RenameKeepsTeacherRows(t *testing.T) {
	r := newTestRepos()
	svc := setupDepartmentService(r)

	created, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "数学组"})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	addTeacher(r, "T1", "王老师", "数学组")

	newName := "数学教研组"
	resp, err := svc.Update(context.Background(), created.DepartmentID, &dto.UpdateDepartmentRequest{
		Name: &newName,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Name != "数学教研组" {
		t.Errorf("期望新名称，实际=%s", resp.Name)
	}
	// 教师行不回写，旧名称保留
	if r.teacher.teachers["T1"].Department != "数学组" {
		t.Error("改名不应回写教师行")
	}
	if resp.TeacherCount != 0 {
		t.Errorf("改名后旧名称教师不再计入，期望 0，实际=%d", resp.TeacherCount)
	}
}

func TestDeleteDepartment_NoCascade(t *testing.T) {
	r := newTestRepos()
	svc := setupDepartmentService(r)

	created, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "数学组"})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	addTeacher(r, "T1", "王老师", "数学组")

	if err := svc.Delete(context.Background(), created.DepartmentID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	// 教师行保留，统计侧该值归入 Unknown 之外的独立分组
	if _, ok := r.teacher.teachers["T1"]; !ok {
		t.Error("删除部门不应级联删除教师")
	}
}

func TestDeleteDepartment_NotFound(t *testing.T) {
	r := newTestRepos()
	svc := setupDepartmentService(r)

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}
