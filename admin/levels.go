package admin

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/s4mli/umbral/logging"
	"github.com/s4mli/umbral/logging/dynamic"
	"github.com/s4mli/umbral/restful"
)

const (
	LevelsPath = "/levels"
	LevelPath  = "/levels/{name}"
)

type Level struct {
	Name  string           `json:"name"`
	Level logging.LogLevel `json:"level"`
}

// Levels exposes a dynamic registry over HTTP: GET reads, PUT changes.
type Levels struct {
	registry *dynamic.Registry
	logger   logging.Logger
}

func (l *Levels) one(name string) (*Level, error) {
	t, ok := l.registry.Get(name)
	if !ok {
		return nil, &restful.StatusError{Code: http.StatusNotFound,
			Err: errors.Wrap(dynamic.ErrUnknownFilter, name)}
	}
	return &Level{t.Name(), t.Level()}, nil
}

func (l *Levels) Get(r *restful.Request) (interface{}, error) {
	if name, ok := r.Vars["name"]; ok {
		return l.one(name)
	}
	levels := []Level{}
	for _, name := range l.registry.Names() {
		if lvl, err := l.one(name); err == nil {
			levels = append(levels, *lvl)
		}
	}
	return levels, nil
}

// Put expects {"level": "<token>"} on /levels/{name}.
func (l *Levels) Put(r *restful.Request) (interface{}, error) {
	name, ok := r.Vars["name"]
	if !ok {
		return nil, &restful.StatusError{Code: http.StatusMethodNotAllowed,
			Err: fmt.Errorf("PUT needs a filter name")}
	}
	body, _ := r.Body.(map[string]interface{})
	token, _ := body["level"].(string)
	lvl, err := logging.ParseLogLevel(token)
	if err != nil {
		return nil, &restful.StatusError{Code: http.StatusBadRequest, Err: err}
	}
	if err := l.registry.Set(name, lvl); err != nil {
		l.logger.Warnf("level change dropped: %s", err.Error())
		code := http.StatusBadRequest
		if errors.Is(err, dynamic.ErrUnknownFilter) {
			code = http.StatusNotFound
		}
		return nil, &restful.StatusError{Code: code, Err: err}
	}
	l.logger.Infof("%s now at %s", name, lvl)
	return l.one(name)
}

// NewLevels serves registry, or dynamic.Default() when registry is nil.
func NewLevels(registry *dynamic.Registry) *Levels {
	if registry == nil {
		registry = dynamic.Default()
	}
	return &Levels{registry, logging.GetLogger(" < admin > ")}
}

func Register(api *restful.API, registry *dynamic.Registry) *restful.API {
	return api.RegisterResource(NewLevels(registry), LevelsPath, LevelPath)
}
