package model

// AttendanceStatus 出勤状态（线上词汇表，需与前端精确往返）
type AttendanceStatus string

const (
	StatusPresent    AttendanceStatus = "present"
	StatusAbsent     AttendanceStatus = "absent"
	StatusHalfDay    AttendanceStatus = "half_day"
	StatusShortLeave AttendanceStatus = "short_leave"
)

// Valid 返回状态是否为支持的取值
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusShortLeave:
		return true
	default:
		return false
	}
}

// AbsentCategory 缺勤类别，仅当 status=absent 时有意义
type AbsentCategory string

const (
	CategoryOfficialLeave AbsentCategory = "official_leave"
	CategoryPrivateLeave  AbsentCategory = "private_leave"
	CategorySickLeave     AbsentCategory = "sick_leave"
)

// Valid 返回类别是否为支持的取值
func (c AbsentCategory) Valid() bool {
	switch c {
	case CategoryOfficialLeave, CategoryPrivateLeave, CategorySickLeave:
		return true
	default:
		return false
	}
}

// HolidayType 节假日类别
type HolidayType string

const (
	HolidayPublic    HolidayType = "public"
	HolidaySchool    HolidayType = "school"
	HolidayEmergency HolidayType = "emergency"
)

// Valid 返回节假日类别是否为支持的取值
func (t HolidayType) Valid() bool {
	switch t {
	case HolidayPublic, HolidaySchool, HolidayEmergency:
		return true
	default:
		return false
	}
}

// AlertSeverity 预警级别
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)
