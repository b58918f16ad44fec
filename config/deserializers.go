package config

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/s4mli/umbral/logging"
	"github.com/sirupsen/logrus"
)

type FilterDeserializer interface {
	Deserialize(Raw) (logging.Filter, error)
}

type HandlerDeserializer interface {
	Deserialize(Raw) (logging.Handler, error)
}

type FilterDeserializerFunc func(Raw) (logging.Filter, error)

func (f FilterDeserializerFunc) Deserialize(r Raw) (logging.Filter, error) { return f(r) }

type HandlerDeserializerFunc func(Raw) (logging.Handler, error)

func (f HandlerDeserializerFunc) Deserialize(r Raw) (logging.Handler, error) { return f(r) }

// Deserializers maps the kind discriminator of a config entry to whatever
// builds it. It is not safe for concurrent mutation.
type Deserializers struct {
	filters  map[string]FilterDeserializer
	handlers map[string]HandlerDeserializer
}

func NewDeserializers() *Deserializers {
	return &Deserializers{
		filters:  make(map[string]FilterDeserializer),
		handlers: make(map[string]HandlerDeserializer),
	}
}

func (d *Deserializers) InsertFilter(kind string, fd FilterDeserializer) *Deserializers {
	d.filters[kind] = fd
	return d
}

func (d *Deserializers) InsertHandler(kind string, hd HandlerDeserializer) *Deserializers {
	d.handlers[kind] = hd
	return d
}

func (d *Deserializers) Kinds() (filters []string, handlers []string) {
	for k := range d.filters {
		filters = append(filters, k)
	}
	for k := range d.handlers {
		handlers = append(handlers, k)
	}
	sort.Strings(filters)
	sort.Strings(handlers)
	return
}

func (d *Deserializers) filter(r Raw) (logging.Filter, error) {
	fd, ok := d.filters[r.Kind()]
	if !ok {
		return nil, errors.Errorf("unknown filter kind %q", r.Kind())
	}
	return fd.Deserialize(r)
}

func (d *Deserializers) handler(r Raw) (logging.Handler, error) {
	hd, ok := d.handlers[r.Kind()]
	if !ok {
		return nil, errors.Errorf("unknown appender kind %q", r.Kind())
	}
	return hd.Deserialize(r)
}

type thresholdConfig struct {
	Kind  string            `yaml:"kind"`
	Level *logging.LogLevel `yaml:"level"`
}

type metricsConfig struct {
	Kind      string `yaml:"kind"`
	Threshold int32  `yaml:"threshold"`
}

type stdoutConfig struct {
	Kind   string `yaml:"kind"`
	Target string `yaml:"target"`
}

type logrusConfig struct {
	Kind   string `yaml:"kind"`
	Format string `yaml:"format"`
}

func thresholdFilter(r Raw) (logging.Filter, error) {
	var c thresholdConfig
	if err := r.Decode(&c); err != nil {
		return nil, err
	}
	if c.Level == nil {
		return nil, errors.New("threshold filter needs a level")
	}
	return logging.NewThresholdFilter(*c.Level), nil
}

func metricsFilter(r Raw) (logging.Filter, error) {
	var c metricsConfig
	if err := r.Decode(&c); err != nil {
		return nil, err
	}
	if c.Threshold <= 0 {
		return nil, errors.Errorf("metrics filter threshold must be positive, got %d", c.Threshold)
	}
	return logging.NewMetricsFilter(c.Threshold), nil
}

func stdoutHandler(r Raw) (logging.Handler, error) {
	var c stdoutConfig
	if err := r.Decode(&c); err != nil {
		return nil, err
	}
	switch c.Target {
	case "", "stdout":
		return logging.NewStdoutHandler(), nil
	case "stderr":
		return logging.NewWriterHandler(os.Stderr), nil
	default:
		return nil, errors.Errorf("unknown console target %q", c.Target)
	}
}

func logrusHandler(r Raw) (logging.Handler, error) {
	var c logrusConfig
	if err := r.Decode(&c); err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.TraceLevel)
	switch c.Format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Errorf("unknown logrus format %q", c.Format)
	}
	return logging.NewLogrusHandler(l), nil
}

// BaseDeserializers knows the pipeline's own kinds: console and logrus
// appenders, threshold and metrics filters.
func BaseDeserializers() *Deserializers {
	return NewDeserializers().
		InsertHandler("console", HandlerDeserializerFunc(stdoutHandler)).
		InsertHandler("logrus", HandlerDeserializerFunc(logrusHandler)).
		InsertFilter("threshold", FilterDeserializerFunc(thresholdFilter)).
		InsertFilter("metrics", FilterDeserializerFunc(metricsFilter))
}

// DefaultDeserializers is BaseDeserializers plus the dynamic filters.
func DefaultDeserializers() *Deserializers {
	ds := BaseDeserializers()
	AddDeserializers(ds)
	return ds
}
