package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// setupTestLogger configures a logger with a custom writer for tests
func setupTestLogger(output *bytes.Buffer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	SetLoggerForTest(zerolog.New(output).With().Timestamp().Logger().Level(lvl))
}

func TestInfoLogging(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "info")

	Info("test message", "foo", 42, "bar", true)

	out := buf.String()
	if !strings.Contains(out, "test message") {
		t.Error("Expected log message not found in output")
	}
	if !strings.Contains(out, `"foo":42`) || !strings.Contains(out, `"bar":true`) {
		t.Error("Expected key-value pairs not found in output")
	}
}

func TestWarnAndErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	Info("hidden")
	Warn("something odd", "code", 99)
	Error("error occurred", "error", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info log should be filtered at warn level")
	}
	if !strings.Contains(out, "something odd") || !strings.Contains(out, `"code":99`) {
		t.Error("Warn log output missing expected content")
	}
	if !strings.Contains(out, "error occurred") || !strings.Contains(out, `"error":"boom"`) {
		t.Error("Error log output missing expected content")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	setupTestLogger(&buf, "warn")

	SetLogLevel("debug")
	Debug("should be visible")
	if !strings.Contains(buf.String(), "should be visible") {
		t.Error("Expected debug log after SetLogLevel not found")
	}

	SetLogLevel("invalid-level")
	Debug("filtered")
	Info("dangling", "k", "v", "orphan")
	if strings.Contains(buf.String(), "filtered") {
		t.Error("invalid level should fall back to info")
	}
	if !strings.Contains(buf.String(), `"k":"v"`) || strings.Contains(buf.String(), "orphan") {
		t.Error("expected dangling key to be dropped")
	}
}

func TestInitLogger_WritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "hellojoke.log")
	InitLogger(logFile, 1, 1, 1, false, "info")
	defer SetLoggerForTest(zerolog.New(os.Stdout))

	Info("to file", "k", "v")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("expected log line in file, got %q", string(data))
	}
}
