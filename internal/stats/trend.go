package stats

import (
	"sort"

	"teachtrack/backend/internal/model"
)

// DailyTally 单日趋势点
type DailyTally struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	HalfDay    int     `json:"half_day"`
	ShortLeave int     `json:"short_leave"`
	Rate       float64 `json:"rate"` // 未舍入，展示舍入由调用方负责
}

// Trend 按日聚合出勤趋势，日期升序
//
// 口径：
//   - 节假日日期整体跳过，不输出零值行
//   - 无记录的日期不输出
//   - 单日比率为全员口径，分母取整个范围内观察到的去重教师数
//     （而非仅当日标记人数），保证跨日可比
func Trend(records []model.AttendanceRecord, start, end string, holidays HolidaySet, w Weights) []DailyTally {
	byDate := make(map[string][]model.AttendanceRecord)
	seen := make(map[string]struct{})

	for i := range records {
		key := records[i].DateKey()
		if start != "" && key < start {
			continue
		}
		if end != "" && key > end {
			continue
		}
		if holidays.ContainsKey(key) {
			continue
		}
		byDate[key] = append(byDate[key], records[i])
		seen[records[i].TeacherID] = struct{}{}
	}

	headcount := len(seen)

	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]DailyTally, 0, len(keys))
	for _, key := range keys {
		day := byDate[key]
		tally := DailyTally{Date: key}
		for i := range day {
			switch day[i].Status {
			case model.StatusPresent:
				tally.Present++
			case model.StatusAbsent:
				tally.Absent++
			case model.StatusHalfDay:
				tally.HalfDay++
			case model.StatusShortLeave:
				tally.ShortLeave++
			}
		}
		tally.Rate = HeadcountRate(day, headcount, w)
		out = append(out, tally)
	}

	return out
}
