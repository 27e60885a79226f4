package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func Test_Logger_Log_Cases(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		validate func(t *testing.T, decoded map[string]any)
	}{
		{
			name: "all fields are serialised",
			entry: Entry{
				Timestamp: time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC),
				Tool:      "speakers_list",
				Params:    map[string]any{"slug": "ada"},
				Result:    "ok",
				Items:     1,
				Duration:  150 * time.Millisecond,
			},
			validate: func(t *testing.T, decoded map[string]any) {
				t.Helper()
				if decoded["tool"] != "speakers_list" {
					t.Errorf("tool = %v, want speakers_list", decoded["tool"])
				}
				if decoded["result"] != "ok" {
					t.Errorf("result = %v, want ok", decoded["result"])
				}
				if decoded["items"] != float64(1) {
					t.Errorf("items = %v, want 1", decoded["items"])
				}
				if decoded["duration_ns"] != float64(150*time.Millisecond) {
					t.Errorf("duration_ns = %v, want %d", decoded["duration_ns"], 150*time.Millisecond)
				}
				params, ok := decoded["params"].(map[string]any)
				if !ok || params["slug"] != "ada" {
					t.Errorf("params = %v, want slug=ada", decoded["params"])
				}
			},
		},
		{
			name: "zero items is omitted",
			entry: Entry{
				Timestamp: time.Now(),
				Tool:      "content_field_prefix",
				Result:    "ok",
			},
			validate: func(t *testing.T, decoded map[string]any) {
				t.Helper()
				if _, ok := decoded["items"]; ok {
					t.Errorf("items present = %v, want omitted", decoded["items"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf)
			if logger == nil {
				t.Fatal("NewLogger() returned nil")
			}
			if err := logger.Log(tt.entry); err != nil {
				t.Fatalf("Log() error: %v", err)
			}

			out := buf.String()
			if !strings.HasSuffix(out, "\n") {
				t.Errorf("output %q does not end with newline", out)
			}
			var decoded map[string]any
			if err := json.Unmarshal([]byte(out), &decoded); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			tt.validate(t, decoded)
		})
	}
}

func Test_NewLogger_NilWriter(t *testing.T) {
	logger := NewLogger(nil)
	if logger != nil {
		t.Fatal("NewLogger(nil) should return nil")
	}
	if err := logger.Log(Entry{Tool: "x"}); !errors.Is(err, ErrNilWriter) {
		t.Errorf("Log on nil logger = %v, want ErrNilWriter", err)
	}
}

func Test_Logger_ConcurrentWritesProduceWholeLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = logger.Log(Entry{Timestamp: time.Now(), Tool: "jobs_list", Result: "ok"})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != n {
		t.Fatalf("got %d lines, want %d", len(lines), n)
	}
	for i, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func Test_OpenFile_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	if err := os.WriteFile(path, []byte("{\"tool\":\"earlier\"}\n"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	logger, closer, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	if err := logger.Log(Entry{Tool: "stages_list", Result: "ok"}); err != nil {
		t.Fatalf("Log() error: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), data)
	}
	if !strings.Contains(lines[1], "stages_list") {
		t.Errorf("second line = %q, want it to mention stages_list", lines[1])
	}
}

func Test_OpenFile_MissingDirectory(t *testing.T) {
	_, _, err := OpenFile(filepath.Join(t.TempDir(), "nope", "audit.log"))
	if err == nil {
		t.Fatal("expected error for missing directory, got nil")
	}
}
