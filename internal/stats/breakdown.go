package stats

import "teachtrack/backend/internal/model"

// AbsenceBreakdown 缺勤构成统计
//
// short_leave 是折减出勤状态而非缺勤状态，ShortLeave 为并列计数，
// 不计入 TotalAbsent（历史实现曾在字段命名上混淆两者）
type AbsenceBreakdown struct {
	TotalAbsent   int `json:"total_absent"`
	OfficialLeave int `json:"official_leave"`
	PrivateLeave  int `json:"private_leave"`
	SickLeave     int `json:"sick_leave"`
	ShortLeave    int `json:"short_leave"`
}

// Breakdown 统计缺勤构成
//
// 三个请假类别对 TotalAbsent 做划分；status=absent 但类别缺失或
// 无法识别的记录计入 TotalAbsent 但不归入任何子类，不猜测默认类别
func Breakdown(records []model.AttendanceRecord) AbsenceBreakdown {
	var b AbsenceBreakdown
	for i := range records {
		switch records[i].Status {
		case model.StatusAbsent:
			b.TotalAbsent++
			if records[i].AbsentCategory == nil {
				continue
			}
			switch *records[i].AbsentCategory {
			case model.CategoryOfficialLeave:
				b.OfficialLeave++
			case model.CategoryPrivateLeave:
				b.PrivateLeave++
			case model.CategorySickLeave:
				b.SickLeave++
			}
		case model.StatusShortLeave:
			b.ShortLeave++
		}
	}
	return b
}
