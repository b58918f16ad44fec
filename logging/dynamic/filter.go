package dynamic

import (
	"github.com/s4mli/umbral/logging"
)

// LevelFilter rejects records below the live threshold of its name and is
// neutral about everything else. It never accepts on its own.
type LevelFilter struct {
	threshold *Threshold
}

// Build binds a filter to name in the default registry. def only applies when
// name has never been built before in this process.
func Build(name string, def logging.LogLevel) *LevelFilter {
	return Default().Build(name, def)
}

func (r *Registry) Build(name string, def logging.LogLevel) *LevelFilter {
	return &LevelFilter{r.GetOrCreate(name, def)}
}

func (f *LevelFilter) Name() string { return f.threshold.Name() }

func (f *LevelFilter) Level() logging.LogLevel { return f.threshold.Level() }

func (f *LevelFilter) Evaluate(lvl logging.LogLevel) logging.Decision {
	if lvl < f.threshold.Level() {
		return logging.Reject
	}
	return logging.Neutral
}

func (f *LevelFilter) Decide(lvl logging.LogLevel, msg interface{}) (logging.Decision, interface{}) {
	return f.Evaluate(lvl), msg
}

// Set changes the level of every filter named name, in the default registry.
func Set(name string, lvl logging.LogLevel) error {
	err := Default().Set(name, lvl)
	if err != nil {
		logging.GetLogger(" < dynamic > ").Warnf("level change dropped: %s", err.Error())
	}
	return err
}

func Get(name string) (logging.LogLevel, bool) {
	if t, ok := Default().Get(name); ok {
		return t.Level(), true
	}
	return logging.INFO, false
}
