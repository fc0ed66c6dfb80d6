package client

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Errorf("request failed: %d", 500)
	logger.Warnf("slow response")
	logger.Debugf("GET %s", "/api/endpoint")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %s", len(lines), buf.String())
	}

	expected := []struct{ level, message string }{
		{"error", "request failed: 500"},
		{"warn", "slow response"},
		{"debug", "GET /api/endpoint"},
	}

	for i, line := range lines {
		var entry map[string]string
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log line %q: %v", line, err)
		}

		if entry["level"] != expected[i].level || entry["message"] != expected[i].message {
			t.Errorf("expected %s %q, got %s %q", expected[i].level, expected[i].message, entry["level"], entry["message"])
		}

		if entry["component"] != "clearpass" {
			t.Errorf("expected component=clearpass, got %s", entry["component"])
		}
	}
}

func TestZerologLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	logger.Debugf("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
}
