package logging

import (
	"fmt"
)

type MetricsInfo struct {
	Action   string
	TimeCost float64
}

type metricsFilter struct{ threshold int32 }

func (f *metricsFilter) Decide(lvl LogLevel, msg interface{}) (Decision, interface{}) {
	switch m := msg.(type) {
	case MetricsInfo:
		if m.TimeCost*1000 < float64(f.threshold) {
			return Reject, nil
		}
		return Neutral, func() string {
			return fmt.Sprintf("%s ⌚ %.3fs ( ≥ %dms )", m.Action, m.TimeCost, f.threshold)
		}
	default:
		return Neutral, msg
	}
}

// NewMetricsFilter drops MetricsInfo records faster than threshold milliseconds.
func NewMetricsFilter(threshold int32) Filter { return &metricsFilter{threshold} }
