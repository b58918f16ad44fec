package logging

import (
	"time"
)

type Logger interface {
	Trace(interface{})
	Debug(interface{})
	Info(interface{})
	Warn(interface{})
	Error(interface{})
	Metrics(string, time.Time)

	Tracef(string, ...interface{})
	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})

	GetChild(string) Logger
}

type Decision int

const (
	// Neutral defers to the next filter in the chain.
	Neutral Decision = iota
	Accept
	Reject
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "Accept"
	case Reject:
		return "Reject"
	default:
		return "Neutral"
	}
}

// Filter may rewrite the message it lets through.
type Filter interface {
	Decide(LogLevel, interface{}) (Decision, interface{})
}

type Handler interface {
	Emit(LogLevel, string, interface{})
}
