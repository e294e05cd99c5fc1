// Package stats 是出勤统计的唯一计算口径。
//
// 历史实现中同一指标散落多份近似拷贝，短假折算系数在 0.5 / 0.75 / 0.8
// 之间漂移，分母口径（全员人头数 vs 实际标记数）也不一致。本包将全部
// 聚合逻辑收敛为一套纯函数：
//   - 折算系数由 Weights 显式携带，不出现重复字面量
//   - 两种分母模式以独立入口命名（HeadcountRate / MarkedRate），调用方无法混用
//   - 所有公开函数对良构输入全定义：空集合、零分母、非有限中间值一律得 0，
//     绝不返回 NaN/Inf，也绝不报错
//   - 返回值不做舍入，展示舍入（Round2 / RoundPercent）由调用方选择
package stats

import (
	"math"

	"teachtrack/backend/internal/model"
)

// Weights 各出勤状态折算为有效出勤的系数（0–1）
type Weights struct {
	Present    float64
	HalfDay    float64
	ShortLeave float64
}

// DefaultWeights 默认折算系数：出勤 1.0、半天 0.5、短假 0.75
func DefaultWeights() Weights {
	return Weights{Present: 1.0, HalfDay: 0.5, ShortLeave: 0.75}
}

// Credit 返回单条记录对出勤率分子的贡献
// absent 恒为 0；未知状态同样计 0，不中断聚合
func (w Weights) Credit(status model.AttendanceStatus) float64 {
	switch status {
	case model.StatusPresent:
		return sanitize(w.Present)
	case model.StatusHalfDay:
		return sanitize(w.HalfDay)
	case model.StatusShortLeave:
		return sanitize(w.ShortLeave)
	default:
		return 0
	}
}

// sanitize 将任意浮点值强制为非负有限数，解析/配置异常一律归 0
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// clampPercent 将百分比钳制到 [0, 100]，非有限值先归 0
func clampPercent(v float64) float64 {
	v = sanitize(v)
	if v > 100 {
		return 100
	}
	return v
}

// Round2 保留两位小数（分析展示场景）
func Round2(v float64) float64 {
	return math.Round(sanitize(v)*100) / 100
}

// RoundPercent 四舍五入为整数百分比（概览卡片场景）
func RoundPercent(v float64) int {
	return int(math.Round(clampPercent(v)))
}
