package stats

import "teachtrack/backend/internal/model"

// 分母口径说明：
//
//   - HeadcountRate（全员口径）：分母为教师总人头数，未标记的教师视同拉低
//     当日比率。用于首页"今日出勤率"等组织级日指标。
//   - MarkedRate（实记口径）：分母为该范围内实际存在的记录数，未标记的日期
//     不参与计算（缺数据不等于缺勤）。用于教师档案、部门排名等历史指标。
//
// 两个入口刻意分开命名，防止历史上"同一指标两个数"的口径漂移复发。

// HeadcountRate 全员口径出勤率（未舍入百分比）
// headcount <= 0 或 records 为空时返回 0
func HeadcountRate(records []model.AttendanceRecord, headcount int, w Weights) float64 {
	if headcount <= 0 {
		return 0
	}
	return rate(records, float64(headcount), w)
}

// MarkedRate 实记口径出勤率（未舍入百分比）
// 分母为 len(records)，空集合返回 0
func MarkedRate(records []model.AttendanceRecord, w Weights) float64 {
	return rate(records, float64(len(records)), w)
}

// rate 核心比率计算：Σcredit / denominator × 100，钳制到 [0, 100]
// 所有中间值经 sanitize 保证有限非负，对任意良构输入全定义
func rate(records []model.AttendanceRecord, denominator float64, w Weights) float64 {
	denominator = sanitize(denominator)
	if denominator == 0 {
		return 0
	}

	var effective float64
	for i := range records {
		effective += w.Credit(records[i].Status)
	}
	effective = sanitize(effective)

	return clampPercent(effective / denominator * 100)
}
