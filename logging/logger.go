package logging

import (
	"fmt"
	"time"
)

type logger struct {
	prefix string
	source func() *Pipeline
}

func (l *logger) Trace(msg interface{}) { l.message(TRACE, msg) }
func (l *logger) Debug(msg interface{}) { l.message(DEBUG, msg) }
func (l *logger) Info(msg interface{})  { l.message(INFO, msg) }
func (l *logger) Warn(msg interface{})  { l.message(WARN, msg) }
func (l *logger) Error(msg interface{}) { l.message(ERROR, msg) }
func (l *logger) Metrics(action string, start time.Time) {
	l.Warn(MetricsInfo{Action: action, TimeCost: time.Since(start).Seconds()})
}

func (l *logger) Tracef(f string, a ...interface{}) { l.Trace(fmt.Sprintf(f, a...)) }
func (l *logger) Debugf(f string, a ...interface{}) { l.Debug(fmt.Sprintf(f, a...)) }
func (l *logger) Infof(f string, a ...interface{})  { l.Info(fmt.Sprintf(f, a...)) }
func (l *logger) Warnf(f string, a ...interface{})  { l.Warn(fmt.Sprintf(f, a...)) }
func (l *logger) Errorf(f string, a ...interface{}) { l.Error(fmt.Sprintf(f, a...)) }

func (l *logger) message(lvl LogLevel, msg interface{}) {
	if p := l.source(); p != nil {
		p.dispatch(lvl, l.prefix, msg)
	}
}

func (l logger) GetChild(prefix string) Logger {
	l.prefix = l.prefix + prefix
	return &l
}

// NewLogger binds a logger to p only, ignoring whatever is installed.
func NewLogger(prefix string, p *Pipeline) Logger {
	return &logger{prefix, func() *Pipeline { return p }}
}

var rootLogger = &logger{source: Installed}

func SetupLogger(prefix string, h Handler, f ...Filter) Logger {
	Install(NewPipeline(prefix, TRACE, NewAppender("default", h, f...)))
	return rootLogger.GetChild("")
}

func DefaultLogger(prefix string, lvl LogLevel, metricThreshold int32) Logger {
	return SetupLogger(prefix, NewStdoutHandler(), NewThresholdFilter(lvl),
		NewMetricsFilter(metricThreshold))
}

func GetLogger(context string) Logger { return rootLogger.GetChild(context) }
