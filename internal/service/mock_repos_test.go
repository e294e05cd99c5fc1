package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"teachtrack/backend/internal/model"
)

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByPortalUsername(_ context.Context, username string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.PortalUsername == username {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	ids := make([]string, 0, len(m.teachers))
	for id := range m.teachers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Teacher, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.teachers[id])
	}
	return result, nil
}

func (m *mockTeacherRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.teachers)), nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.teachers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.teachers, id)
	return nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	departments map[string]*model.Department
	nextID      int
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{departments: make(map[string]*model.Department)}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		m.nextID++
		dept.DepartmentID = "dept-" + strconv.Itoa(m.nextID)
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.departments {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.departments {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.departments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.departments, id)
	return nil
}

// ── Mock AttendanceRepository ──

// mockAttendanceRepo 以 "teacherID|date" 为键模拟 (teacher_id, date) 唯一约束
type mockAttendanceRepo struct {
	records map[string]*model.AttendanceRecord
	nextID  int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func attKey(teacherID string, date time.Time) string {
	return teacherID + "|" + date.Format(model.DateLayout)
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, record *model.AttendanceRecord) error {
	key := attKey(record.TeacherID, record.Date)
	if existing, ok := m.records[key]; ok {
		// 冲突时原地更新，record_id 与 created_at 保持首次写入值
		record.RecordID = existing.RecordID
		record.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		record.RecordID = "rec-" + strconv.Itoa(m.nextID)
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = time.Now()
	cp := *record
	m.records[key] = &cp
	return nil
}

func (m *mockAttendanceRepo) BatchUpsert(ctx context.Context, records []model.AttendanceRecord) error {
	for i := range records {
		if err := m.Upsert(ctx, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAttendanceRepo) GetByTeacherAndDate(_ context.Context, teacherID string, date time.Time) (*model.AttendanceRecord, error) {
	if r, ok := m.records[attKey(teacherID, date)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	key := date.Format(model.DateLayout)
	for _, r := range m.records {
		if r.Date.Format(model.DateLayout) == key {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TeacherID < result[j].TeacherID })
	return result, nil
}

func (m *mockAttendanceRepo) ListByTeacher(_ context.Context, teacherID string, start, end *time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.TeacherID != teacherID {
			continue
		}
		if start != nil && r.Date.Before(*start) {
			continue
		}
		if end != nil && r.Date.After(*end) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockAttendanceRepo) ListByRange(_ context.Context, start, end time.Time) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].TeacherID < result[j].TeacherID
	})
	return result, nil
}

func (m *mockAttendanceRepo) CountByTeacher(_ context.Context, teacherID string) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.TeacherID == teacherID {
			count++
		}
	}
	return count, nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday // key: YYYY-MM-DD
	nextID   int
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		m.nextID++
		holiday.HolidayID = "hol-" + strconv.Itoa(m.nextID)
	}
	m.holidays[holiday.DateKey()] = holiday
	return nil
}

func (m *mockHolidayRepo) GetByDate(_ context.Context, date time.Time) (*model.Holiday, error) {
	if h, ok := m.holidays[date.Format(model.DateLayout)]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	_, ok := m.holidays[date.Format(model.DateLayout)]
	return ok, nil
}

func (m *mockHolidayRepo) ListByRange(_ context.Context, start, end *time.Time) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if start != nil && h.Date.Before(*start) {
			continue
		}
		if end != nil && h.Date.After(*end) {
			continue
		}
		result = append(result, *h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string) error {
	for key, h := range m.holidays {
		if h.HolidayID == id {
			delete(m.holidays, key)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AlertRepository ──

type mockAlertRepo struct {
	alerts []*model.Alert
	nextID int
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{}
}

func (m *mockAlertRepo) Create(_ context.Context, alert *model.Alert) error {
	m.nextID++
	alert.AlertID = "alert-" + strconv.Itoa(m.nextID)
	alert.CreatedAt = time.Now()
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *mockAlertRepo) List(_ context.Context, unreadOnly bool) ([]model.Alert, error) {
	var result []model.Alert
	for _, a := range m.alerts {
		if unreadOnly && a.IsRead {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAlertRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Alert, error) {
	var result []model.Alert
	for _, a := range m.alerts {
		if a.TeacherID == teacherID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAlertRepo) GetByID(_ context.Context, id string) (*model.Alert, error) {
	for _, a := range m.alerts {
		if a.AlertID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) MarkRead(_ context.Context, id string) error {
	for _, a := range m.alerts {
		if a.AlertID == id {
			a.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
