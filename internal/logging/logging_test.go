// If you are AI: This file contains tests for logger construction.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLoggerCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, false, Options{Level: "debug", Format: "json", RunID: "abc"})
	if err != nil {
		t.Fatalf("NewWithWriter() failed: %v", err)
	}
	logger.Debug().Int("region", 2).Msg("hello")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("Expected JSON line, got %q: %v", buf.String(), err)
	}
	if line["run"] != "abc" || line["message"] != "hello" || line["level"] != "debug" {
		t.Errorf("Unexpected fields %v", line)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, false, Options{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("NewWithWriter() failed: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestConsoleWithoutColour(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, false, Options{})
	if err != nil {
		t.Fatalf("NewWithWriter() failed: %v", err)
	}
	logger.Info().Msg("plain")
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Expected no colour codes, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "plain") {
		t.Errorf("Expected message in output, got %q", buf.String())
	}
}

func TestInvalidOptions(t *testing.T) {
	if _, err := NewWithWriter(&bytes.Buffer{}, false, Options{Level: "loud"}); err == nil {
		t.Error("Expected error for bad level")
	}
	if _, err := NewWithWriter(&bytes.Buffer{}, false, Options{Format: "xml"}); err == nil {
		t.Error("Expected error for bad format")
	}
}
