package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

type record struct {
	lvl    LogLevel
	prefix string
	msg    string
}

type captureHandler struct {
	mu      sync.Mutex
	records []record
}

func (h *captureHandler) Emit(lvl LogLevel, prefix string, msg interface{}) {
	s, _ := render(msg)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record{lvl, prefix, s})
}

func (h *captureHandler) levels() []LogLevel {
	h.mu.Lock()
	defer h.mu.Unlock()
	var lvls []LogLevel
	for _, r := range h.records {
		lvls = append(lvls, r.lvl)
	}
	return lvls
}

type fixedFilter struct{ d Decision }

func (f fixedFilter) Decide(_ LogLevel, msg interface{}) (Decision, interface{}) { return f.d, msg }

func TestParseLogLevel(t *testing.T) {
	for s, want := range map[string]LogLevel{
		"trace": TRACE, "DEBUG": DEBUG, " Info ": INFO, "warning": WARN, "error": ERROR, "off": OFF,
	} {
		lvl, err := ParseLogLevel(s)
		assert.Equal(t, nil, err)
		assert.Equal(t, want, lvl)
	}
	_, err := ParseLogLevel("loud")
	assert.NotNil(t, err)
	assert.Equal(t, INFO, LogLevelFromString("loud"))
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, TRACE < DEBUG && DEBUG < INFO && INFO < WARN && WARN < ERROR && ERROR < OFF)
	assert.Equal(t, "WARN", WARN.String())
	assert.Equal(t, "LogLevel(42)", LogLevel(42).String())
}

func TestLevelTextAndYaml(t *testing.T) {
	var v struct {
		Level LogLevel `yaml:"level" json:"level"`
	}
	assert.Equal(t, nil, yaml.Unmarshal([]byte("level: warn"), &v))
	assert.Equal(t, WARN, v.Level)
	assert.NotNil(t, yaml.Unmarshal([]byte("level: chatty"), &v))

	out, err := json.Marshal(v)
	assert.Equal(t, nil, err)
	assert.Equal(t, `{"level":"warn"}`, string(out))
	assert.Equal(t, nil, json.Unmarshal([]byte(`{"level":"error"}`), &v))
	assert.Equal(t, ERROR, v.Level)
}

func TestThresholdFilter(t *testing.T) {
	f := NewThresholdFilter(WARN)
	d, _ := f.Decide(INFO, "x")
	assert.Equal(t, Reject, d)
	d, _ = f.Decide(WARN, "x")
	assert.Equal(t, Neutral, d)
}

func TestAppenderChain(t *testing.T) {
	h := &captureHandler{}
	NewAppender("a", h, fixedFilter{Neutral}, fixedFilter{Neutral}).Append(INFO, "", "all neutral")
	NewAppender("b", h, fixedFilter{Accept}, fixedFilter{Reject}).Append(INFO, "", "accepted")
	NewAppender("c", h, fixedFilter{Neutral}, fixedFilter{Reject}, fixedFilter{Accept}).Append(INFO, "", "rejected")
	assert.Equal(t, 2, len(h.records))
	assert.Equal(t, "all neutral", h.records[0].msg)
	assert.Equal(t, "accepted", h.records[1].msg)
}

func TestMetricsFilter(t *testing.T) {
	h := &captureHandler{}
	l := NewLogger("", NewPipeline("", TRACE, NewAppender("m", h, NewMetricsFilter(100))))
	l.Warn(MetricsInfo{Action: "fast", TimeCost: 0.01})
	l.Warn(MetricsInfo{Action: "slow", TimeCost: 0.5})
	l.Metrics("instant", time.Now())
	assert.Equal(t, 1, len(h.records))
	assert.True(t, strings.HasPrefix(h.records[0].msg, "slow"))
}

func TestPipelineRootLevel(t *testing.T) {
	h := &captureHandler{}
	l := NewLogger(" < test > ", NewPipeline("", INFO, NewAppender("h", h)))
	l.Trace("t")
	l.Debugf("%s", "d")
	l.Info("i")
	l.Errorf("%d", 1)
	assert.Equal(t, []LogLevel{INFO, ERROR}, h.levels())
	assert.Equal(t, " < test > ", h.records[0].prefix)
}

func TestInstallReachesExistingLoggers(t *testing.T) {
	first, second := &captureHandler{}, &captureHandler{}
	prev := Install(NewPipeline("", TRACE, NewAppender("first", first)))
	defer Install(prev)

	l := GetLogger(" < install > ").GetChild("child")
	l.Info("one")
	Install(NewPipeline("", TRACE, NewAppender("second", second)))
	l.Info("two")

	assert.Equal(t, 1, len(first.records))
	assert.Equal(t, 1, len(second.records))
	assert.Equal(t, " < install > child", second.records[0].prefix)
}

func TestWriterHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(" < w > ", NewPipeline("", TRACE, NewAppender("w", NewWriterHandler(&buf))))
	l.Warn(struct{ A int }{7})
	assert.True(t, strings.Contains(buf.String(), " ☹  < w > {A:7}"))
}

func TestLogrusHandler(t *testing.T) {
	var buf bytes.Buffer
	lr := logrus.New()
	lr.SetOutput(&buf)
	lr.SetLevel(logrus.TraceLevel)
	lr.SetFormatter(&logrus.JSONFormatter{})
	l := NewLogger(" < lr > ", NewPipeline("", TRACE, NewAppender("lr", NewLogrusHandler(lr))))
	l.Warn("careful")

	var entry map[string]interface{}
	assert.Equal(t, nil, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "careful", entry["msg"])
	assert.Equal(t, "< lr >", entry["prefix"])
}

func TestSetupLogger(t *testing.T) {
	prev := Installed()
	defer Install(prev)

	h := &captureHandler{}
	l := SetupLogger(" < setup > ", h, NewThresholdFilter(WARN))
	l.Info("dropped")
	l.GetChild("child: ").Warn("kept")
	assert.Equal(t, 1, len(h.records))
	assert.Equal(t, " < setup > child: ", h.records[0].prefix)
	assert.Equal(t, "kept", h.records[0].msg)
}
