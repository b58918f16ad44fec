package dynamic

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/s4mli/umbral/logging"
	"github.com/stretchr/testify/assert"
)

func TestThresholdScenario(t *testing.T) {
	r := NewRegistry()
	f := r.Build("app", logging.INFO)
	assert.Equal(t, logging.Reject, f.Evaluate(logging.DEBUG))
	assert.Equal(t, logging.Neutral, f.Evaluate(logging.WARN))

	assert.Equal(t, nil, r.Set("app", logging.ERROR))
	assert.Equal(t, logging.Reject, f.Evaluate(logging.WARN))
	assert.Equal(t, logging.Neutral, f.Evaluate(logging.ERROR))
}

func TestReloadKeepsOriginalDefault(t *testing.T) {
	r := NewRegistry()
	old := r.Build("a", logging.WARN)
	reloaded := r.Build("a", logging.ERROR)
	for _, f := range []*LevelFilter{old, reloaded} {
		assert.Equal(t, logging.WARN, f.Level())
		assert.Equal(t, logging.Neutral, f.Evaluate(logging.WARN))
		assert.Equal(t, logging.Reject, f.Evaluate(logging.INFO))
	}
}

func TestSetReachesOldAndNewFilters(t *testing.T) {
	r := NewRegistry()
	old := r.Build("shared", logging.TRACE)
	assert.Equal(t, nil, r.Set("shared", logging.WARN))
	fresh := r.Build("shared", logging.DEBUG)
	for _, f := range []*LevelFilter{old, fresh} {
		assert.Equal(t, logging.Reject, f.Evaluate(logging.INFO))
		assert.Equal(t, logging.Neutral, f.Evaluate(logging.WARN))
	}
}

func TestOffRejectsEverything(t *testing.T) {
	r := NewRegistry()
	f := r.Build("mute", logging.OFF)
	for _, lvl := range []logging.LogLevel{logging.TRACE, logging.INFO, logging.ERROR} {
		assert.Equal(t, logging.Reject, f.Evaluate(lvl))
	}
}

func TestDecidePassesMessageThrough(t *testing.T) {
	f := NewRegistry().Build("msg", logging.INFO)
	d, msg := f.Decide(logging.WARN, "hello")
	assert.Equal(t, logging.Neutral, d)
	assert.Equal(t, "hello", msg)
}

func TestConcurrentBuildAndSet(t *testing.T) {
	r := NewRegistry()
	const workers = 32
	filters := make([]*LevelFilter, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			filters[i] = r.Build("hot", logging.INFO)
			for j := 0; j < 100; j++ {
				filters[i].Evaluate(logging.DEBUG)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, nil, r.Set("hot", logging.TRACE))
	for _, f := range filters {
		assert.Equal(t, logging.Neutral, f.Evaluate(logging.DEBUG))
	}
}

func TestPackageLevelControl(t *testing.T) {
	name := fmt.Sprintf("pkg-%p", t)
	_, ok := Get(name)
	assert.False(t, ok)
	assert.True(t, errors.Is(Set(name, logging.WARN), ErrUnknownFilter))
	_, ok = Get(name)
	assert.False(t, ok)

	f := Build(name, logging.DEBUG)
	assert.Equal(t, nil, Set(name, logging.ERROR))
	lvl, ok := Get(name)
	assert.True(t, ok)
	assert.Equal(t, logging.ERROR, lvl)
	assert.Equal(t, logging.Reject, f.Evaluate(logging.WARN))
}

func TestFilterInPipeline(t *testing.T) {
	r := NewRegistry()
	var got []logging.LogLevel
	h := handlerFunc(func(lvl logging.LogLevel, _ string, _ interface{}) { got = append(got, lvl) })
	l := logging.NewLogger("", logging.NewPipeline("", logging.TRACE,
		logging.NewAppender("console", h, r.Build("console", logging.INFO))))

	l.Debug("dropped")
	l.Info("kept")
	assert.Equal(t, nil, r.Set("console", logging.TRACE))
	l.Debug("kept now")
	assert.Equal(t, []logging.LogLevel{logging.INFO, logging.DEBUG}, got)
}

type handlerFunc func(logging.LogLevel, string, interface{})

func (h handlerFunc) Emit(lvl logging.LogLevel, prefix string, msg interface{}) { h(lvl, prefix, msg) }
