package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("menu.analyze.complete", map[string]any{"items": 3, "analysis_id": "a-1"})

	line := strings.TrimSpace(buf.String())
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("decode log json: %v (%s)", err, line)
	}
	for _, key := range []string{"ts", "level", "msg", "items", "analysis_id"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("expected key %q in %v", key, payload)
		}
	}
	if payload["level"] != "info" {
		t.Fatalf("expected level info, got %v", payload["level"])
	}
	if payload["msg"] != "menu.analyze.complete" {
		t.Fatalf("unexpected msg %v", payload["msg"])
	}
}

func TestWarnAndErrorLevels(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("w", nil)
	Error("e", map[string]any{"err": "boom"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var first, second map[string]any
	_ = json.Unmarshal([]byte(lines[0]), &first)
	_ = json.Unmarshal([]byte(lines[1]), &second)
	if first["level"] != "warning" {
		t.Fatalf("expected warning level, got %v", first["level"])
	}
	if second["level"] != "error" || second["err"] != "boom" {
		t.Fatalf("unexpected error line %v", second)
	}
}
