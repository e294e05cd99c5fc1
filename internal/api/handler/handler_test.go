package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/service"
	"teachtrack/backend/internal/stats"
	"teachtrack/backend/pkg/jwt"
	"teachtrack/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	currentResult *dto.TeacherResponse
	currentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Current(_ context.Context, _ string) (*dto.TeacherResponse, error) {
	return m.currentResult, m.currentErr
}

// ── Mock TeacherService ──

type mockTeacherService struct {
	createResult *dto.TeacherResponse
	createErr    error
	getResult    *dto.TeacherResponse
	getErr       error
	listResult   []dto.TeacherResponse
	listErr      error
	updateResult *dto.TeacherResponse
	updateErr    error
	deleteErr    error
}

func (m *mockTeacherService) Create(_ context.Context, _ *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockTeacherService) GetByID(_ context.Context, _ string) (*dto.TeacherResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTeacherService) List(_ context.Context) ([]dto.TeacherResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTeacherService) Update(_ context.Context, _ string, _ *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockTeacherService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock DepartmentService ──

type mockDepartmentService struct {
	createResult *dto.DepartmentResponse
	createErr    error
	getResult    *dto.DepartmentResponse
	getErr       error
	listResult   []dto.DepartmentResponse
	listErr      error
	updateResult *dto.DepartmentResponse
	updateErr    error
	deleteErr    error
}

func (m *mockDepartmentService) Create(_ context.Context, _ *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockDepartmentService) GetByID(_ context.Context, _ string) (*dto.DepartmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockDepartmentService) List(_ context.Context) ([]dto.DepartmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockDepartmentService) Update(_ context.Context, _ string, _ *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockDepartmentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	markResult       *dto.AttendanceRecordResponse
	markErr          error
	markRecordedBy   string
	bulkResult       *dto.BulkMarkResponse
	bulkErr          error
	byDateResult     []dto.AttendanceRecordResponse
	byDateErr        error
	byTeacherResult  []dto.AttendanceRecordResponse
	byTeacherErr     error
	byTeacherQueried string
}

func (m *mockAttendanceService) Mark(_ context.Context, _ *dto.MarkAttendanceRequest, recordedBy string) (*dto.AttendanceRecordResponse, error) {
	m.markRecordedBy = recordedBy
	return m.markResult, m.markErr
}
func (m *mockAttendanceService) BulkMark(_ context.Context, _ *dto.BulkMarkRequest, _ string) (*dto.BulkMarkResponse, error) {
	return m.bulkResult, m.bulkErr
}
func (m *mockAttendanceService) ListByDate(_ context.Context, _ string) ([]dto.AttendanceRecordResponse, error) {
	return m.byDateResult, m.byDateErr
}
func (m *mockAttendanceService) ListByTeacher(_ context.Context, teacherID, _, _ string) ([]dto.AttendanceRecordResponse, error) {
	m.byTeacherQueried = teacherID
	return m.byTeacherResult, m.byTeacherErr
}

// ── Mock AnalyticsService ──

type mockAnalyticsService struct {
	overviewResult  *dto.OverviewStatsResponse
	overviewErr     error
	trendsResult    []dto.TrendPointResponse
	trendsErr       error
	deptResult      []dto.DepartmentStatResponse
	deptErr         error
	topResult       []dto.TeacherRateResponse
	topErr          error
	breakdownResult *dto.AbsenceBreakdownResponse
	breakdownErr    error
	teacherAbsences *dto.AbsenceBreakdownResponse
	teacherAbsErr   error
}

func (m *mockAnalyticsService) Overview(_ context.Context) (*dto.OverviewStatsResponse, error) {
	return m.overviewResult, m.overviewErr
}
func (m *mockAnalyticsService) Trends(_ context.Context, _ *dto.TrendsRequest) ([]dto.TrendPointResponse, error) {
	return m.trendsResult, m.trendsErr
}
func (m *mockAnalyticsService) DepartmentStats(_ context.Context) ([]dto.DepartmentStatResponse, error) {
	return m.deptResult, m.deptErr
}
func (m *mockAnalyticsService) TopPerformers(_ context.Context, _ int) ([]dto.TeacherRateResponse, error) {
	return m.topResult, m.topErr
}
func (m *mockAnalyticsService) AbsenceBreakdown(_ context.Context, _, _ string) (*dto.AbsenceBreakdownResponse, error) {
	return m.breakdownResult, m.breakdownErr
}
func (m *mockAnalyticsService) TeacherAbsences(_ context.Context, _, _, _ string) (*dto.AbsenceBreakdownResponse, error) {
	return m.teacherAbsences, m.teacherAbsErr
}

// ── Mock HolidayService ──

type mockHolidayService struct {
	createResult *dto.HolidayResponse
	createErr    error
	listResult   []dto.HolidayResponse
	listErr      error
	deleteErr    error
	importResult *dto.ImportHolidaysResponse
	importErr    error
}

func (m *mockHolidayService) Create(_ context.Context, _ *dto.CreateHolidayRequest, _ string) (*dto.HolidayResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockHolidayService) List(_ context.Context, _, _ string) ([]dto.HolidayResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockHolidayService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockHolidayService) ImportICS(_ context.Context, _ *dto.ImportHolidaysRequest, _ string) (*dto.ImportHolidaysResponse, error) {
	return m.importResult, m.importErr
}
func (m *mockHolidayService) SetForRange(_ context.Context, _, _ time.Time) (stats.HolidaySet, error) {
	return stats.HolidaySet{}, nil
}

// ── Mock ReportService ──

type mockReportService struct {
	buf         *bytes.Buffer
	filename    string
	contentType string
	exportErr   error
	report      *dto.TeacherReportResponse
	reportErr   error
}

func (m *mockReportService) ExportAttendance(_ context.Context, _ *dto.ExportRequest) (*bytes.Buffer, string, string, error) {
	return m.buf, m.filename, m.contentType, m.exportErr
}
func (m *mockReportService) TeacherReport(_ context.Context, _, _, _ string) (*dto.TeacherReportResponse, error) {
	return m.report, m.reportErr
}

// ── Mock AlertService ──

type mockAlertService struct {
	listResult      []dto.AlertResponse
	listErr         error
	byTeacherResult []dto.AlertResponse
	byTeacherErr    error
	markReadErr     error
	evaluateErr     error
}

func (m *mockAlertService) EvaluateTeacher(_ context.Context, _, _ string) error {
	return m.evaluateErr
}
func (m *mockAlertService) List(_ context.Context, _ bool) ([]dto.AlertResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockAlertService) ListByTeacher(_ context.Context, _ string) ([]dto.AlertResponse, error) {
	return m.byTeacherResult, m.byTeacherErr
}
func (m *mockAlertService) MarkRead(_ context.Context, _ string) error {
	return m.markReadErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// fakeAuth 模拟 JWT 中间件注入的上下文
func fakeAuth(c *gin.Context) {
	c.Set("teacher_id", "T-TEST")
	c.Set("role", "admin")
	c.Set("claims", &jwt.Claims{TeacherID: "T-TEST", Role: "admin", TokenType: "access"})
	c.Next()
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			TeacherID:    "T001",
			Name:         "张老师",
			Role:         "teacher",
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "zhang.teacher",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "zhang.teacher",
		Password: "wrong-pass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_PortalDisabled(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrPortalDisabled})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "zhang.teacher",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	// 未经过认证中间件，上下文中没有 teacher_id
	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		currentResult: &dto.TeacherResponse{TeacherID: "T-TEST", Name: "测试教师"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", fakeAuth, h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AttendanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_Mark_Success(t *testing.T) {
	mock := &mockAttendanceService{
		markResult: &dto.AttendanceRecordResponse{
			RecordID:  "rec-1",
			TeacherID: "T001",
			Date:      "2026-03-06",
			Status:    "present",
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.MarkAttendanceRequest{
		TeacherID: "T001",
		Date:      "2026-03-06",
		Status:    "present",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", fakeAuth, h.MarkAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	// 记录人应取自认证上下文
	if mock.markRecordedBy != "T-TEST" {
		t.Errorf("expected recordedBy T-TEST, got %s", mock.markRecordedBy)
	}
}

func TestAttendanceHandler_Mark_InvalidStatus(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(map[string]string{
		"teacher_id": "T001",
		"date":       "2026-03-06",
		"status":     "vacationing",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", fakeAuth, h.MarkAttendance)
	r.ServeHTTP(w, req)

	// oneof 约束在绑定层拦截
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected error code 10001, got %d", resp.Code)
	}
}

func TestAttendanceHandler_Mark_CategoryRequired(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{markErr: service.ErrAbsentCategoryRequired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.MarkAttendanceRequest{
		TeacherID: "T001",
		Date:      "2026-03-06",
		Status:    "absent",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", fakeAuth, h.MarkAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14003 {
		t.Errorf("expected error code 14003, got %d", resp.Code)
	}
}

func TestAttendanceHandler_Mark_TeacherNotFound(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{markErr: service.ErrTeacherNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance", jsonBody(dto.MarkAttendanceRequest{
		TeacherID: "NOPE",
		Date:      "2026-03-06",
		Status:    "present",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance", fakeAuth, h.MarkAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestAttendanceHandler_BulkMark_Duplicate(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{bulkErr: service.ErrDuplicateBulkTeacher})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/bulk", jsonBody(dto.BulkMarkRequest{
		Date: "2026-03-06",
		Items: []dto.BulkMarkItem{
			{TeacherID: "T001", Status: "present"},
			{TeacherID: "T001", Status: "absent"},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/bulk", fakeAuth, h.BulkMarkAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14005 {
		t.Errorf("expected error code 14005, got %d", resp.Code)
	}
}

func TestAttendanceHandler_ListByDate_MissingDate(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/attendance", nil)

	r := gin.New()
	r.GET("/attendance", fakeAuth, h.ListByDate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAttendanceHandler_ListByTeacher_Success(t *testing.T) {
	mock := &mockAttendanceService{
		byTeacherResult: []dto.AttendanceRecordResponse{
			{RecordID: "rec-1", TeacherID: "T001", Date: "2026-03-05", Status: "present"},
		},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/teachers/T001/attendance?start=2026-03-01&end=2026-03-06", nil)

	r := gin.New()
	r.GET("/teachers/:id/attendance", fakeAuth, h.ListByTeacher)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.byTeacherQueried != "T001" {
		t.Errorf("expected teacher T001 queried, got %s", mock.byTeacherQueried)
	}
}

// ═══════════════════════════════════════════════════════════
// AnalyticsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAnalyticsHandler_Overview_Success(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{
		overviewResult: &dto.OverviewStatsResponse{
			Date:           "2026-03-06",
			TotalTeachers:  42,
			PresentToday:   40,
			AttendanceRate: 95,
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats/overview", nil)

	r := gin.New()
	r.GET("/stats/overview", fakeAuth, h.GetOverview)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["total_teachers"] != float64(42) {
		t.Errorf("expected total_teachers 42, got %v", data["total_teachers"])
	}
}

func TestAnalyticsHandler_Trends_InvalidRange(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{trendsErr: service.ErrInvalidRange})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats/trends?start=2026-03-06&end=2026-03-01", nil)

	r := gin.New()
	r.GET("/stats/trends", fakeAuth, h.GetTrends)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16001 {
		t.Errorf("expected error code 16001, got %d", resp.Code)
	}
}

func TestAnalyticsHandler_Trends_BadDaysParam(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats/trends?days=9999", nil)

	r := gin.New()
	r.GET("/stats/trends", fakeAuth, h.GetTrends)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAnalyticsHandler_TopPerformers_Success(t *testing.T) {
	h := NewAnalyticsHandler(&mockAnalyticsService{
		topResult: []dto.TeacherRateResponse{
			{TeacherID: "T001", Name: "张老师", Rate: 98.5},
			{TeacherID: "T002", Name: "李老师", Rate: 95.0},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/stats/top-performers?limit=2", nil)

	r := gin.New()
	r.GET("/stats/top-performers", fakeAuth, h.GetTopPerformers)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HolidayHandler Tests
// ═══════════════════════════════════════════════════════════

func TestHolidayHandler_Create_Conflict(t *testing.T) {
	h := NewHolidayHandler(&mockHolidayService{createErr: service.ErrHolidayExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/holidays", jsonBody(dto.CreateHolidayRequest{
		Date: "2026-05-01",
		Name: "劳动节",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/holidays", fakeAuth, h.CreateHoliday)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15001 {
		t.Errorf("expected error code 15001, got %d", resp.Code)
	}
}

func TestHolidayHandler_Import_SourceRequired(t *testing.T) {
	h := NewHolidayHandler(&mockHolidayService{importErr: service.ErrImportSourceRequired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/holidays/import", jsonBody(dto.ImportHolidaysRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/holidays/import", fakeAuth, h.ImportHolidays)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15003 {
		t.Errorf("expected error code 15003, got %d", resp.Code)
	}
}

func TestHolidayHandler_Import_Success(t *testing.T) {
	h := NewHolidayHandler(&mockHolidayService{
		importResult: &dto.ImportHolidaysResponse{Imported: 4, Skipped: 1},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/holidays/import", jsonBody(dto.ImportHolidaysRequest{
		Content: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/holidays/import", fakeAuth, h.ImportHolidays)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["imported"] != float64(4) {
		t.Errorf("expected imported 4, got %v", data["imported"])
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_Export_Success(t *testing.T) {
	h := NewReportHandler(&mockReportService{
		buf:         bytes.NewBufferString("csv-content"),
		filename:    "出勤汇总_2026-02-05_2026-03-06.csv",
		contentType: "text/csv; charset=utf-8",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance?format=csv", nil)

	r := gin.New()
	r.GET("/export/attendance", fakeAuth, h.ExportAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
	if w.Body.String() != "csv-content" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestReportHandler_Export_NoRecords(t *testing.T) {
	h := NewReportHandler(&mockReportService{exportErr: service.ErrExportNoRecords})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance", nil)

	r := gin.New()
	r.GET("/export/attendance", fakeAuth, h.ExportAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

func TestReportHandler_Export_BadFormat(t *testing.T) {
	h := NewReportHandler(&mockReportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/attendance?format=pdf", nil)

	r := gin.New()
	r.GET("/export/attendance", fakeAuth, h.ExportAttendance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_TeacherReport_NotFound(t *testing.T) {
	h := NewReportHandler(&mockReportService{reportErr: service.ErrTeacherNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/teachers/NOPE", nil)

	r := gin.New()
	r.GET("/reports/teachers/:id", fakeAuth, h.GetTeacherReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AlertHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAlertHandler_List_Success(t *testing.T) {
	h := NewAlertHandler(&mockAlertService{
		listResult: []dto.AlertResponse{
			{AlertID: "alert-1", TeacherID: "T001", Type: "consecutive_absence", Severity: "low"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/alerts?unread=true", nil)

	r := gin.New()
	r.GET("/alerts", fakeAuth, h.ListAlerts)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAlertHandler_MarkRead_NotFound(t *testing.T) {
	h := NewAlertHandler(&mockAlertService{markReadErr: service.ErrAlertNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/alerts/NOPE/read", nil)

	r := gin.New()
	r.PUT("/alerts/:id/read", fakeAuth, h.MarkAlertRead)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18001 {
		t.Errorf("expected error code 18001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// TeacherHandler / DepartmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTeacherHandler_Create_DuplicateID(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{createErr: service.ErrTeacherIDExists}, &mockAnalyticsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/teachers", jsonBody(dto.CreateTeacherRequest{
		TeacherID: "T001",
		Name:      "张老师",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/teachers", fakeAuth, h.CreateTeacher)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12002 {
		t.Errorf("expected error code 12002, got %d", resp.Code)
	}
}

func TestTeacherHandler_Delete_HasRecords(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{deleteErr: service.ErrTeacherHasRecords}, &mockAnalyticsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/teachers/T001", nil)

	r := gin.New()
	r.DELETE("/teachers/:id", fakeAuth, h.DeleteTeacher)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12004 {
		t.Errorf("expected error code 12004, got %d", resp.Code)
	}
}

func TestTeacherHandler_Absences_Success(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{}, &mockAnalyticsService{
		teacherAbsences: &dto.AbsenceBreakdownResponse{TotalAbsent: 3, SickLeave: 2, OfficialLeave: 1},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/teachers/T001/absences", nil)

	r := gin.New()
	r.GET("/teachers/:id/absences", fakeAuth, h.GetTeacherAbsences)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["total_absent"] != float64(3) {
		t.Errorf("expected total_absent 3, got %v", data["total_absent"])
	}
}

func TestDepartmentHandler_Create_DuplicateName(t *testing.T) {
	h := NewDepartmentHandler(&mockDepartmentService{createErr: service.ErrDepartmentNameExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/departments", jsonBody(dto.CreateDepartmentRequest{
		Name: "数学组",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/departments", fakeAuth, h.CreateDepartment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected error code 13002, got %d", resp.Code)
	}
}

func TestDepartmentHandler_Get_NotFound(t *testing.T) {
	h := NewDepartmentHandler(&mockDepartmentService{getErr: service.ErrDepartmentNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/departments/NOPE", nil)

	r := gin.New()
	r.GET("/departments/:id", fakeAuth, h.GetDepartment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected error code 13001, got %d", resp.Code)
	}
}
