package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/niels/tiny-file-server/pkg/config"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(true, &buf)

	levels := []struct {
		name string
		log  func(msg string)
	}{
		{"debug", func(msg string) { logger.Debug().Msg(msg) }},
		{"info", func(msg string) { logger.Info().Msg(msg) }},
		{"warn", func(msg string) { logger.Warn().Msg(msg) }},
		{"error", func(msg string) { logger.Error().Msg(msg) }},
	}

	for _, level := range levels {
		level.log(level.name + " message")
		output := buf.String()
		buf.Reset()

		if !strings.Contains(output, level.name+" message") {
			t.Errorf("%s log should contain '%s message', got: %s", level.name, level.name, output)
		}
		if !strings.Contains(output, `"level":"`+level.name+`"`) {
			t.Errorf("%s log should have %s level, got: %s", level.name, level.name, output)
		}
	}
}

func TestDebugDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false, &buf)

	logger.Debug().Msg("debug message")
	if strings.Contains(buf.String(), "debug message") {
		t.Errorf("Debug log should not be visible when debug is disabled, got: %s", buf.String())
	}
	buf.Reset()

	logger.Info().Msg("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("Info log should be visible when debug is disabled, got: %s", buf.String())
	}
}

func TestStructuredHelpers(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewLogger(true, &buf))
	defer SetGlobalLogger(NewLogger(false, &bytes.Buffer{}))

	InfoWith("request served", map[string]interface{}{
		"path":     "/index.html",
		"status":   200,
		"duration": 15 * time.Millisecond,
		"error":    errors.New("boom"),
	})

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output as JSON: %v", err)
	}

	if path, ok := logEntry["path"].(string); !ok || path != "/index.html" {
		t.Errorf("Expected path field to be '/index.html', got: %v", logEntry["path"])
	}
	if status, ok := logEntry["status"].(float64); !ok || int(status) != 200 {
		t.Errorf("Expected status field to be 200, got: %v", logEntry["status"])
	}
	if _, ok := logEntry["duration"].(float64); !ok {
		t.Errorf("Expected duration field to be numeric, got: %v", logEntry["duration"])
	}
	if msg, ok := logEntry["message"].(string); !ok || msg != "request served" {
		t.Errorf("Expected message to be 'request served', got: %v", logEntry["message"])
	}
}

func TestHelperFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewLogger(true, &buf))
	defer SetGlobalLogger(NewLogger(false, &bytes.Buffer{}))

	helpers := map[string]func(string){
		"debug": Debug,
		"info":  Info,
	}

	for name, helper := range helpers {
		helper(name + " helper message")
		output := buf.String()
		buf.Reset()

		if !strings.Contains(output, name+" helper message") {
			t.Errorf("%s helper should log '%s helper message', got: %s", name, name, output)
		}
	}
}

func TestWarnWithLevel(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewLogger(false, &buf))
	defer SetGlobalLogger(NewLogger(false, &bytes.Buffer{}))

	WarnWith("Failed to write response", map[string]interface{}{"path": "/a%20b.html"})

	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("Expected a warn level entry, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"path":"/a%20b.html"`) {
		t.Errorf("Expected the path field, got: %s", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewLogger(true, &buf))
	defer SetGlobalLogger(NewLogger(false, &bytes.Buffer{}))

	logger := WithComponent("router")
	logger.Info().Msg("component message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output as JSON: %v", err)
	}
	if component, ok := logEntry["component"].(string); !ok || component != "router" {
		t.Errorf("Expected component field to be 'router', got: %v", logEntry["component"])
	}
}

func TestInitGlobalLoggerToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "server.log")

	cfg := config.LoadDefault()
	cfg.Logging.LogToFile = true
	cfg.Logging.LogFilePath = logPath

	InitGlobalLogger(false, cfg)
	defer SetGlobalLogger(NewLogger(false, &bytes.Buffer{}))

	Info("written to the rotating file")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to the rotating file") {
		t.Errorf("Log file should contain the message, got: %s", string(data))
	}
}
