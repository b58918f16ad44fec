package logging

import (
	"sync/atomic"
)

// Appender is a named handler guarded by an ordered filter chain.
type Appender struct {
	name    string
	handler Handler
	filters []Filter
}

func (a *Appender) Name() string { return a.name }

// decide runs the chain: the first Reject drops the record, the first Accept
// short-circuits, Neutral moves on. A chain of Neutrals lets the record through.
func (a *Appender) decide(lvl LogLevel, msg interface{}) (bool, interface{}) {
	for _, f := range a.filters {
		d, m := f.Decide(lvl, msg)
		switch d {
		case Reject:
			return false, nil
		case Accept:
			return true, m
		default:
			msg = m
		}
	}
	return true, msg
}

func (a *Appender) Append(lvl LogLevel, prefix string, msg interface{}) {
	if worthy, m := a.decide(lvl, msg); worthy && a.handler != nil {
		a.handler.Emit(lvl, prefix, m)
	}
}

func NewAppender(name string, h Handler, f ...Filter) *Appender {
	return &Appender{name: name, handler: h, filters: f}
}

// Pipeline is immutable once built; reconfiguring means installing a new one.
type Pipeline struct {
	prefix    string
	level     LogLevel
	appenders []*Appender
}

func (p *Pipeline) Prefix() string  { return p.prefix }
func (p *Pipeline) Level() LogLevel { return p.level }

func (p *Pipeline) Appenders() []*Appender {
	return append([]*Appender(nil), p.appenders...)
}

func (p *Pipeline) dispatch(lvl LogLevel, prefix string, msg interface{}) {
	if lvl < p.level || lvl >= OFF {
		return
	}
	for _, a := range p.appenders {
		a.Append(lvl, p.prefix+prefix, msg)
	}
}

// NewPipeline drops records below level before any appender sees them.
// prefix is prepended to every logger's own prefix.
func NewPipeline(prefix string, level LogLevel, appenders ...*Appender) *Pipeline {
	return &Pipeline{prefix: prefix, level: level, appenders: appenders}
}

var active atomic.Pointer[Pipeline]

// Install makes p the pipeline behind every logger, including ones handed out
// before the call. It returns the pipeline it replaced.
func Install(p *Pipeline) *Pipeline { return active.Swap(p) }

func Installed() *Pipeline { return active.Load() }
