package stats

import (
	"time"

	"teachtrack/backend/internal/model"
)

// HolidaySet 节假日日期集合，键为 YYYY-MM-DD
// 任何按日范围的统计在计数前都必须先查询本集合
type HolidaySet map[string]struct{}

// NewHolidaySet 由节假日行构建日期集合
func NewHolidaySet(holidays []model.Holiday) HolidaySet {
	s := make(HolidaySet, len(holidays))
	for i := range holidays {
		s[holidays[i].DateKey()] = struct{}{}
	}
	return s
}

// Contains 判断给定日期是否为节假日
func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s[date.Format(model.DateLayout)]
	return ok
}

// ContainsKey 判断 YYYY-MM-DD 日期键是否为节假日
func (s HolidaySet) ContainsKey(key string) bool {
	_, ok := s[key]
	return ok
}
