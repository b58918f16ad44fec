package logging

import (
	"io"
	"log"
	"os"
)

var symbols = map[LogLevel]string{
	TRACE: " ☼ ",
	DEBUG: " ☻ ",
	INFO:  " ☺ ",
	WARN:  " ☹ ",
	ERROR: " ☠ ",
}

type stdoutHandler struct {
	log *log.Logger
}

func render(msg interface{}) (string, bool) {
	switch e := msg.(type) {
	case string:
		return e, true
	case error:
		return e.Error(), true
	case func() string:
		return e(), true
	default:
		return "", false
	}
}

func (h *stdoutHandler) Emit(lvl LogLevel, prefix string, msg interface{}) {
	if s, ok := render(msg); ok {
		h.log.Println(symbols[lvl] + prefix + s)
	} else {
		h.log.Printf("%s%s%+v\n", symbols[lvl], prefix, msg)
	}
}

func NewWriterHandler(w io.Writer) Handler {
	return &stdoutHandler{log.New(w, "", log.LstdFlags)}
}

func NewStdoutHandler() Handler { return NewWriterHandler(os.Stdout) }
