package logging

type thresholdFilter struct {
	minLevel LogLevel
}

func (f *thresholdFilter) Decide(lvl LogLevel, msg interface{}) (Decision, interface{}) {
	if lvl < f.minLevel {
		return Reject, msg
	}
	return Neutral, msg
}

func NewThresholdFilter(minLevel LogLevel) Filter { return &thresholdFilter{minLevel} }
