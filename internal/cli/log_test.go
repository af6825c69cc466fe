package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestStageDoneLogsCounts(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	st := startStage(logger, "layout")
	time.Sleep(10 * time.Millisecond)
	st.done("placed", 42, "unused", 3)

	out := buf.String()
	for _, want := range []string{"layout", "placed=42", "unused=3", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("stage output %q missing %q", out, want)
		}
	}
}

func TestStageStartIsDebugOnly(t *testing.T) {
	var buf bytes.Buffer
	startStage(newLogger(&buf, log.InfoLevel), "pool")
	if buf.Len() != 0 {
		t.Errorf("start should not log at info level, got %q", buf.String())
	}

	startStage(newLogger(&buf, log.DebugLevel), "pool")
	if !strings.Contains(buf.String(), "stage=pool") {
		t.Errorf("start should log at debug level, got %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Error("loggerFromContext should return the custom logger")
	}
}

func TestIsVerbose(t *testing.T) {
	var buf bytes.Buffer
	if isVerbose(withLogger(context.Background(), newLogger(&buf, log.InfoLevel))) {
		t.Error("info logger should not be verbose")
	}
	if !isVerbose(withLogger(context.Background(), newLogger(&buf, log.DebugLevel))) {
		t.Error("debug logger should be verbose")
	}
}
