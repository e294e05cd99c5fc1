package stats

import (
	"sort"

	"teachtrack/backend/internal/model"
)

// TeacherRate 教师排名项
type TeacherRate struct {
	TeacherID   string  `json:"teacher_id"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	Rate        float64 `json:"rate"` // 实记口径，未舍入
	RecordCount int     `json:"record_count"`
}

// TopPerformers 出勤率教师排名
//
// 口径：
//   - 实记口径：每位教师仅以窗口内实际存在的记录计算
//   - 窗口内零记录的教师不可排名，直接剔除（缺数据 ≠ 出勤率 0）
//   - 排序：rate 降序，同分按姓名升序，再按 teacher_id 升序，结果确定
//   - 截断到 limit；limit <= 0 返回空序列
//
// records 应由调用方预先裁剪到统计窗口
func TopPerformers(records []model.AttendanceRecord, teachers []model.Teacher, w Weights, limit int) []TeacherRate {
	if limit <= 0 {
		return []TeacherRate{}
	}

	byTeacher := make(map[string][]model.AttendanceRecord)
	for i := range records {
		byTeacher[records[i].TeacherID] = append(byTeacher[records[i].TeacherID], records[i])
	}

	out := make([]TeacherRate, 0, len(teachers))
	for i := range teachers {
		recs := byTeacher[teachers[i].TeacherID]
		if len(recs) == 0 {
			continue
		}
		out = append(out, TeacherRate{
			TeacherID:   teachers[i].TeacherID,
			Name:        teachers[i].Name,
			Department:  normalizeDepartment(teachers[i].Department),
			Rate:        MarkedRate(recs, w),
			RecordCount: len(recs),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].TeacherID < out[j].TeacherID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
