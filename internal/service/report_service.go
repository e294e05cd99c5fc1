package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"teachtrack/backend/config"
	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/model"
	"teachtrack/backend/internal/repository"
	"teachtrack/backend/internal/stats"
)

// ── 报表模块业务错误 ──

var (
	ErrExportNoRecords    = errors.New("该范围内无出勤记录")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ReportService 报表与导出业务接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - CSV 与 Excel 共用同一套汇总行，仅编码不同
//   - 汇总行的比率为实记口径（分母 = 该教师实际记录数）
type ReportService interface {
	// ExportAttendance 导出范围内的每教师出勤汇总
	// 返回值：buf（文件内容）, filename（建议文件名）, contentType, error
	ExportAttendance(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, string, error)
	// TeacherReport 单教师完整报表：记录历史 + 派生统计
	TeacherReport(ctx context.Context, teacherID, start, end string) (*dto.TeacherReportResponse, error)
}

type reportService struct {
	repo       *repository.Repository
	weights    stats.Weights
	loc        *time.Location
	windowDays int
	logger     *zap.Logger

	now func() time.Time
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, cfg *config.Config, logger *zap.Logger) ReportService {
	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &reportService{
		repo:       repo,
		weights:    weightsFromConfig(cfg),
		loc:        loc,
		windowDays: cfg.Report.WindowDays,
		logger:     logger,
		now:        time.Now,
	}
}

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// exportHeader 汇总导出列头，与 buildExportRows 的列序一致
var exportHeader = []string{
	"工号", "姓名", "部门", "出勤", "半天", "短假",
	"缺勤合计", "公假", "事假", "病假", "出勤率(%)",
}

func (s *reportService) ExportAttendance(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, string, error) {
	start, end, err := s.exportRange(req)
	if err != nil {
		return nil, "", "", err
	}

	rows, err := s.buildExportRows(ctx, start, end)
	if err != nil {
		return nil, "", "", err
	}
	if len(rows) == 0 {
		return nil, "", "", ErrExportNoRecords
	}

	rangeTag := fmt.Sprintf("%s_%s", start.Format(model.DateLayout), end.Format(model.DateLayout))

	if req.Format == "xlsx" {
		buf, err := s.writeExcel(rows, start, end)
		if err != nil {
			return nil, "", "", err
		}
		return buf, fmt.Sprintf("出勤汇总_%s.xlsx", rangeTag), contentTypeXLSX, nil
	}

	buf, err := s.writeCSV(rows)
	if err != nil {
		return nil, "", "", err
	}
	return buf, fmt.Sprintf("出勤汇总_%s.csv", rangeTag), contentTypeCSV, nil
}

// exportRange 缺省时取截至今天的配置窗口
func (s *reportService) exportRange(req *dto.ExportRequest) (time.Time, time.Time, error) {
	if req.StartDate == "" && req.EndDate == "" {
		n := s.now().In(s.loc)
		end := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
		return end.AddDate(0, 0, -(s.windowDays - 1)), end, nil
	}
	if req.StartDate == "" || req.EndDate == "" || req.StartDate > req.EndDate {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	start, err := time.Parse(model.DateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err := time.Parse(model.DateLayout, req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return start, end, nil
}

// buildExportRows 构建每教师汇总行（按工号升序）
func (s *reportService) buildExportRows(ctx context.Context, start, end time.Time) ([]dto.ExportRow, error) {
	records, err := s.repo.Attendance.ListByRange(ctx, start, end)
	if err != nil {
		s.logger.Error("查询区间出勤失败", zap.Error(err))
		return nil, err
	}
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	teacherIndex := make(map[string]*model.Teacher, len(teachers))
	for i := range teachers {
		teacherIndex[teachers[i].TeacherID] = &teachers[i]
	}

	byTeacher := make(map[string][]model.AttendanceRecord)
	for i := range records {
		byTeacher[records[i].TeacherID] = append(byTeacher[records[i].TeacherID], records[i])
	}

	ids := make([]string, 0, len(byTeacher))
	for id := range byTeacher {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]dto.ExportRow, 0, len(ids))
	for _, id := range ids {
		recs := byTeacher[id]
		b := stats.Breakdown(recs)

		row := dto.ExportRow{
			TeacherID:     id,
			TotalAbsent:   b.TotalAbsent,
			OfficialLeave: b.OfficialLeave,
			PrivateLeave:  b.PrivateLeave,
			SickLeave:     b.SickLeave,
			ShortLeave:    b.ShortLeave,
			Rate:          stats.Round2(stats.MarkedRate(recs, s.weights)),
		}
		for i := range recs {
			switch recs[i].Status {
			case model.StatusPresent:
				row.Present++
			case model.StatusHalfDay:
				row.HalfDay++
			}
		}
		if t, ok := teacherIndex[id]; ok {
			row.Name = t.Name
			row.Department = t.Department
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeCSV 将汇总行编码为 CSV（带 UTF-8 BOM，兼容 Excel 直接打开）
func (s *reportService) writeCSV(rows []dto.ExportRow) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, ErrExportGenerateFail
	}
	for _, r := range rows {
		rec := []string{
			r.TeacherID, r.Name, r.Department,
			strconv.Itoa(r.Present), strconv.Itoa(r.HalfDay), strconv.Itoa(r.ShortLeave),
			strconv.Itoa(r.TotalAbsent), strconv.Itoa(r.OfficialLeave),
			strconv.Itoa(r.PrivateLeave), strconv.Itoa(r.SickLeave),
			strconv.FormatFloat(r.Rate, 'f', 2, 64),
		}
		if err := w.Write(rec); err != nil {
			return nil, ErrExportGenerateFail
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// writeExcel 将汇总行编码为 Excel
func (s *reportService) writeExcel(rows []dto.ExportRow, start, end time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "出勤汇总"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 16)
	f.SetColWidth(sheetName, "D", "K", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("出勤汇总 %s ~ %s",
		start.Format(model.DateLayout), end.Format(model.DateLayout)))
	f.MergeCell(sheetName, "A1", cell(colName(len(exportHeader)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range exportHeader {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}

	// 数据行
	row := 3
	for _, r := range rows {
		values := []interface{}{
			r.TeacherID, r.Name, r.Department,
			r.Present, r.HalfDay, r.ShortLeave,
			r.TotalAbsent, r.OfficialLeave, r.PrivateLeave, r.SickLeave,
			r.Rate,
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

func (s *reportService) TeacherReport(ctx context.Context, teacherID, start, end string) (*dto.TeacherReportResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	startAt, endAt, err := parseOptionalRange(start, end)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.Attendance.ListByTeacher(ctx, teacherID, startAt, endAt)
	if err != nil {
		s.logger.Error("查询教师出勤失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	return &dto.TeacherReportResponse{
		Teacher:   *toTeacherResponse(teacher),
		StartDate: start,
		EndDate:   end,
		Records:   toAttendanceResponses(records),
		Breakdown: *dto.NewAbsenceBreakdownResponse(stats.Breakdown(records)),
		Rate:      stats.Round2(stats.MarkedRate(records, s.weights)),
	}, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
