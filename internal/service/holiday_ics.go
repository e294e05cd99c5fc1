package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"teachtrack/backend/internal/dto"
	"teachtrack/backend/internal/model"
)

// ── 节假日 ICS 导入 ──────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为节假日日期列表。
//
// 设计决策：
//   - 以 VEVENT 的 DTSTART 日期部分为节假日日期
//   - DTSTART..DTEND 为多日事件时展开为逐日节假日（DTEND 为排他边界）
//   - SUMMARY 作为节假日名称，空 SUMMARY 跳过
//   - 已存在的日期计入 skipped，不报错
//   - 单次导入最多展开 icsMaxHolidayDays 天，防止畸形事件撑爆表
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize    = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout   = 30 * time.Second
	icsMaxHolidayDays = 366
)

var (
	// ErrImportSourceRequired URL 与 Content 均未提供
	ErrImportSourceRequired = errors.New("必须提供 url 或 content 之一")
	// ErrICSParseFailed ICS 内容获取或解析失败
	ErrICSParseFailed = errors.New("iCalendar 内容解析失败")
)

// parsedHoliday ICS 解析中间结构
type parsedHoliday struct {
	Date time.Time
	Name string
}

func (s *holidayService) ImportICS(ctx context.Context, req *dto.ImportHolidaysRequest, createdBy string) (*dto.ImportHolidaysResponse, error) {
	var reader io.Reader
	switch {
	case req.Content != "":
		reader = strings.NewReader(req.Content)
	case req.URL != "":
		body, err := fetchICSContent(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		reader = body
	default:
		return nil, ErrImportSourceRequired
	}

	parsed, err := parseHolidayICS(reader)
	if err != nil {
		return nil, err
	}

	htype := model.HolidayType(req.Type)
	if req.Type == "" {
		htype = model.HolidayPublic
	}

	resp := &dto.ImportHolidaysResponse{}
	for _, p := range parsed {
		exists, err := s.repo.Holiday.IsHoliday(ctx, p.Date)
		if err != nil {
			return nil, err
		}
		if exists {
			resp.Skipped++
			continue
		}
		holiday := &model.Holiday{
			Date:      p.Date,
			Name:      p.Name,
			Type:      htype,
			CreatedBy: createdBy,
		}
		if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
			s.logger.Error("导入节假日失败",
				zap.String("date", p.Date.Format(model.DateLayout)), zap.Error(err))
			return nil, err
		}
		resp.Imported++
	}

	s.logger.Info("节假日 ICS 导入完成",
		zap.Int("imported", resp.Imported), zap.Int("skipped", resp.Skipped))
	return resp, nil
}

// fetchICSContent 从 URL 获取 ICS 内容
func fetchICSContent(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	reqCtx, cancel := context.WithTimeout(ctx, icsFetchTimeout)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: 获取 ICS 失败: %v", ErrICSParseFailed, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: 获取 ICS 失败: %v", ErrICSParseFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("%w: 获取 ICS 失败: HTTP %d", ErrICSParseFailed, resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return &limitedBody{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		body:   resp.Body,
		cancel: cancel,
	}, nil
}

type limitedBody struct {
	io.Reader
	body   io.Closer
	cancel context.CancelFunc
}

func (b *limitedBody) Close() error {
	b.cancel()
	return b.body.Close()
}

// parseHolidayICS 解析 ICS 内容并转为去重后的节假日列表（按日期升序）
func parseHolidayICS(reader io.Reader) ([]parsedHoliday, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrICSParseFailed, err)
	}

	seen := make(map[string]parsedHoliday)
	for _, evt := range cal.Events() {
		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			continue
		}
		name := strings.TrimSpace(summary.Value)

		start, err := parseICSDate(evt, ics.ComponentPropertyDtStart)
		if err != nil {
			continue
		}
		end, err := parseICSDate(evt, ics.ComponentPropertyDtEnd)
		if err != nil || !end.After(start) {
			// 无 DTEND 或 DTEND 不晚于 DTSTART → 单日事件
			end = start.AddDate(0, 0, 1)
		}

		// DTEND 为排他边界，逐日展开
		days := 0
		for d := start; d.Before(end) && days < icsMaxHolidayDays; d = d.AddDate(0, 0, 1) {
			key := d.Format(model.DateLayout)
			if _, ok := seen[key]; !ok {
				seen[key] = parsedHoliday{Date: d, Name: name}
			}
			days++
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]parsedHoliday, 0, len(keys))
	for _, k := range keys {
		result = append(result, seen[k])
	}
	return result, nil
}

// parseICSDate 从 VEVENT 中解析日期属性，仅保留日期部分
func parseICSDate(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := prop.Value

	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}
