package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type logrusHandler struct {
	logger logrus.FieldLogger
}

func (h *logrusHandler) Emit(lvl LogLevel, prefix string, msg interface{}) {
	text, ok := render(msg)
	if !ok {
		text = fmt.Sprintf("%+v", msg)
	}
	entry := h.logger
	if p := strings.TrimSpace(prefix); p != "" {
		entry = entry.WithField("prefix", p)
	}
	switch lvl {
	case TRACE:
		entry.WithField("trace", true).Debug(text)
	case DEBUG:
		entry.Debug(text)
	case INFO:
		entry.Info(text)
	case WARN:
		entry.Warn(text)
	default:
		entry.Error(text)
	}
}

// NewLogrusHandler forwards records to logger. Records are already filtered by
// the pipeline, so logger should be configured to let every level through.
func NewLogrusHandler(logger logrus.FieldLogger) Handler {
	return &logrusHandler{logger}
}
