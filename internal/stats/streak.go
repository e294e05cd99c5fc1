package stats

import (
	"time"

	"teachtrack/backend/internal/model"
)

// streakScanLimit 向前回溯的最大自然日数，防止病态数据导致无界扫描
const streakScanLimit = 366

// ConsecutiveAbsences 计算截至 asOf（YYYY-MM-DD）的当前连续缺勤天数
//
// 回溯规则：
//   - status=absent 的日期计入连击并继续回溯
//   - 节假日不计数也不中断连击
//   - 其他状态的记录或无记录的日期中断连击
//
// asOf 无法解析时返回 0
func ConsecutiveAbsences(records []model.AttendanceRecord, holidays HolidaySet, asOf string) int {
	day, err := time.Parse(model.DateLayout, asOf)
	if err != nil {
		return 0
	}

	byDate := make(map[string]model.AttendanceStatus, len(records))
	for i := range records {
		byDate[records[i].DateKey()] = records[i].Status
	}

	streak := 0
	for i := 0; i < streakScanLimit; i++ {
		key := day.Format(model.DateLayout)
		if holidays.ContainsKey(key) {
			day = day.AddDate(0, 0, -1)
			continue
		}
		if byDate[key] != model.StatusAbsent {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}
