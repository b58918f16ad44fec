package dynamic

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/s4mli/umbral/logging"
)

var ErrUnknownFilter = errors.New("no dynamic filter registered under that name")

// Threshold is the live level shared by every filter bound to one name.
type Threshold struct {
	name  string
	level atomic.Int32
}

func (t *Threshold) Name() string { return t.name }

func (t *Threshold) Level() logging.LogLevel { return logging.LogLevel(t.level.Load()) }

func (t *Threshold) store(lvl logging.LogLevel) { t.level.Store(int32(lvl)) }

// Registry maps filter names to thresholds. Entries are never removed.
type Registry struct {
	mu         sync.Mutex
	thresholds sync.Map
}

func NewRegistry() *Registry { return &Registry{} }

// GetOrCreate returns the threshold for name, creating it at def if it does not
// exist yet. def is ignored for names already registered.
func (r *Registry) GetOrCreate(name string, def logging.LogLevel) *Threshold {
	if t, ok := r.Get(name); ok {
		return t
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.Get(name); ok {
		return t
	}
	t := &Threshold{name: name}
	t.store(def)
	r.thresholds.Store(name, t)
	return t
}

func (r *Registry) Get(name string) (*Threshold, bool) {
	if v, ok := r.thresholds.Load(name); ok {
		return v.(*Threshold), true
	}
	return nil, false
}

// Set never creates a threshold; unknown names yield ErrUnknownFilter.
func (r *Registry) Set(name string, lvl logging.LogLevel) error {
	if !lvl.Valid() {
		return errors.Errorf("invalid level %s for dynamic filter %q", lvl, name)
	}
	t, ok := r.Get(name)
	if !ok {
		return errors.Wrapf(ErrUnknownFilter, "set %q to %s", name, lvl)
	}
	t.store(lvl)
	return nil
}

func (r *Registry) Names() []string {
	var names []string
	r.thresholds.Range(func(k, _ interface{}) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default is the process-wide registry, created on first use.
func Default() *Registry {
	defaultOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}
