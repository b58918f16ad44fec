package logging

import (
	"fmt"
	"strings"
)

type LogLevel int32

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
	// OFF only makes sense as a threshold, it rejects every record.
	OFF
)

var levelNames = map[LogLevel]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	OFF:   "OFF",
}

func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TRACE, nil
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "off":
		return OFF, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// LogLevelFromString falls back to INFO for anything it does not recognise.
func LogLevelFromString(s string) LogLevel {
	lvl, _ := ParseLogLevel(s)
	return lvl
}

func (l LogLevel) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LogLevel(%d)", int32(l))
}

func (l LogLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("unknown log level %d", int32(l))
	}
	return []byte(strings.ToLower(l.String())), nil
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	lvl, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

func (l LogLevel) MarshalYAML() (interface{}, error) {
	text, err := l.MarshalText()
	return string(text), err
}

func (l *LogLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return l.UnmarshalText([]byte(s))
}
