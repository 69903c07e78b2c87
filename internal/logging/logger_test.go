package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("overflow")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("width", "u32"), "width", "u32"},
		{"Int", Int("terms", 7), "terms", 7},
		{"Uint64", Uint64("count", 12345678901234567890), "count", uint64(12345678901234567890)},
		{"Float64", Float64("progress", 0.5), "progress", 0.5},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

// TestNewLogger tests the component-tagged logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "sequence")

	logger.Info("generated", Uint64("count", 10))
	output := buf.String()

	for _, want := range []string{"sequence", "generated", `"count":10`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error",
			msg:      "access failed",
			err:      errors.New("index 5 out of range"),
			contains: []string{"access failed", "index 5 out of range", "error"},
		},
		{
			name:     "with nil error",
			msg:      "warning",
			contains: []string{"warning", "error"},
		},
		{
			name:     "with error and fields",
			msg:      "generation failed",
			err:      errors.New("term 14 overflows u8"),
			fields:   []Field{String("width", "u8"), Int("count", 20)},
			contains: []string{"generation failed", "overflows", "u8", "20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			logger.Error(tt.msg, tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests the Debug method.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("state transition", String("state", "Parsed"))

	output := buf.String()
	if !strings.Contains(output, "state transition") || !strings.Contains(output, "Parsed") {
		t.Errorf("Debug output missing message or field, got: %s", output)
	}
}

// TestZerologAdapter_PrintfPrintln tests the formatted helpers.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("width %s count %d", "u64", 93)
	logger.Println("seed", 1, 1)

	output := buf.String()
	if !strings.Contains(output, "width u64 count 93") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "seed 1 1") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("test", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestSetLevel tests global level parsing.
func TestSetLevel(t *testing.T) {
	previous := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	if err := SetLevel("WARN"); err != nil {
		t.Fatalf("SetLevel(WARN) returned error: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("global level = %v, want warn", zerolog.GlobalLevel())
	}
	if err := SetLevel("loud"); err == nil {
		t.Error("SetLevel should reject unknown levels")
	}
}
