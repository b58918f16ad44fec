package config

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/s4mli/umbral/common"
	"github.com/s4mli/umbral/logging"
)

func buildAppender(name string, ac AppenderConfig, ds *Deserializers, h Helper) (*logging.Appender, []error) {
	var errs []error
	params, err := ac.Params.resolve(h)
	if err != nil {
		return nil, []error{errors.Wrapf(err, "appender %s", name)}
	}
	handler, err := ds.handler(params.with("kind", ac.Kind))
	if err != nil {
		errs = append(errs, errors.Wrapf(err, "appender %s", name))
	}
	var filters []logging.Filter
	for i, raw := range ac.Filters {
		resolved, err := raw.resolve(h)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "appender %s filter #%d", name, i))
			continue
		}
		f, err := ds.filter(resolved)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "appender %s filter #%d", name, i))
			continue
		}
		filters = append(filters, f)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return logging.NewAppender(name, handler, filters...), nil
}

// Build turns a log section into a pipeline. Every declared appender is built,
// so dynamic filters on appenders root does not use still register their names,
// but only the ones root lists receive records.
func Build(c *Log, ds *Deserializers, h Helper) (*logging.Pipeline, error) {
	if h == nil {
		h = &devHelper{}
	}
	names := make([]string, 0, len(c.Appenders))
	for name := range c.Appenders {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	built := make(map[string]*logging.Appender, len(names))
	for _, name := range names {
		if a, e := buildAppender(name, c.Appenders[name], ds, h); len(e) > 0 {
			errs = append(errs, e...)
		} else {
			built[name] = a
		}
	}
	var attached []*logging.Appender
	seen := make(map[string]bool)
	for _, name := range c.Root.Appenders {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, declared := c.Appenders[name]; !declared {
			errs = append(errs, errors.Errorf("root refers to undeclared appender %s", name))
		} else if a, ok := built[name]; ok {
			attached = append(attached, a)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Errorf("logging config error: \n\t%s", common.ErrorToString(errs))
	}
	return logging.NewPipeline(c.Prefix, c.Root.Level, attached...), nil
}

// Handle owns the logging configuration loaded from a file.
type Handle struct {
	app, env, file string
	ds             *Deserializers
	mu             sync.Mutex
	config         *Config
}

func (h *Handle) load() (*Config, error) {
	var c Config
	if err := LoadConfig(h.app, h.env, h.file, &c); err != nil {
		return nil, err
	}
	helper, err := NewHelper(h.app, h.env, &c.SSM)
	if err != nil {
		return nil, err
	}
	p, err := Build(&c.Log, h.ds, helper)
	if err != nil {
		return nil, err
	}
	logging.Install(p)
	return &c, nil
}

// Reload re-reads the file and swaps the pipeline in. A dynamic filter name that
// is already registered keeps its live level whatever default the file now says.
// On error the running pipeline is left alone.
func (h *Handle) Reload() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, err := h.load()
	if err != nil {
		return err
	}
	h.config = c
	logging.GetLogger(" < config > ").Debugf("reloaded %s", h.file)
	return nil
}

func (h *Handle) Config() *Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

// Init loads app/env from file, installs the resulting pipeline and returns a
// handle for reloading it. ds defaults to DefaultDeserializers.
func Init(app, env, file string, ds *Deserializers) (*Handle, error) {
	if ds == nil {
		ds = DefaultDeserializers()
	}
	h := &Handle{app: app, env: env, file: file, ds: ds}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}
