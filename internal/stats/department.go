package stats

import (
	"sort"
	"strings"

	"teachtrack/backend/internal/model"
)

// UnknownDepartment 部门为空或无法匹配时的归属桶
const UnknownDepartment = "Unknown"

// DepartmentStat 部门统计项
type DepartmentStat struct {
	Department   string  `json:"department"`
	TeacherCount int     `json:"teacher_count"`
	Rate         float64 `json:"rate"` // 实记口径，未舍入
}

// normalizeDepartment 部门名归一：去空白，空值归入 Unknown 桶
func normalizeDepartment(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnknownDepartment
	}
	return name
}

// DepartmentStats 按部门名字符串分组统计出勤率
//
// 口径：
//   - 教师按 department 字段值分桶，空/空白统一归入 Unknown（单一桶）
//   - 记录归属其教师所在桶；教师已不在花名册的记录同样归入 Unknown，
//     未知部门值不中断聚合
//   - 无记录的部门输出 rate=0，不省略
//   - 排序：rate 降序，同分按部门名升序，保证结果可复现
//
// records 应由调用方预先裁剪到统计窗口
func DepartmentStats(records []model.AttendanceRecord, teachers []model.Teacher, w Weights) []DepartmentStat {
	deptByTeacher := make(map[string]string, len(teachers))
	countByDept := make(map[string]int)
	for i := range teachers {
		dept := normalizeDepartment(teachers[i].Department)
		deptByTeacher[teachers[i].TeacherID] = dept
		countByDept[dept]++
	}

	recordsByDept := make(map[string][]model.AttendanceRecord)
	for i := range records {
		dept, ok := deptByTeacher[records[i].TeacherID]
		if !ok {
			dept = UnknownDepartment
		}
		recordsByDept[dept] = append(recordsByDept[dept], records[i])
	}

	// 有教师或有记录的桶都要出现
	names := make(map[string]struct{}, len(countByDept))
	for dept := range countByDept {
		names[dept] = struct{}{}
	}
	for dept := range recordsByDept {
		names[dept] = struct{}{}
	}

	out := make([]DepartmentStat, 0, len(names))
	for dept := range names {
		out = append(out, DepartmentStat{
			Department:   dept,
			TeacherCount: countByDept[dept],
			Rate:         MarkedRate(recordsByDept[dept], w),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rate != out[j].Rate {
			return out[i].Rate > out[j].Rate
		}
		return out[i].Department < out[j].Department
	})

	return out
}
