package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("fibseq", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Count != DefaultCount {
		t.Errorf("Count = %d, want %d", cfg.Count, DefaultCount)
	}
	if cfg.Width != DefaultWidth {
		t.Errorf("Width = %q, want %q", cfg.Width, DefaultWidth)
	}
	if cfg.Separator != format.DefaultSeparator {
		t.Errorf("Separator = %q", cfg.Separator)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s", cfg.Timeout)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.HasAt {
		t.Error("HasAt should be false by default")
	}
	if cfg.Mode() != ModeSequence {
		t.Errorf("Mode = %s, want sequence", cfg.Mode())
	}
}

func TestParseConfigFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, c AppConfig)
	}{
		{"short count", []string{"-n", "25"}, func(t *testing.T, c AppConfig) {
			if c.Count != 25 {
				t.Errorf("Count = %d", c.Count)
			}
		}},
		{"long count", []string{"--count", "7"}, func(t *testing.T, c AppConfig) {
			if c.Count != 7 {
				t.Errorf("Count = %d", c.Count)
			}
		}},
		{"width", []string{"--width", "u8"}, func(t *testing.T, c AppConfig) {
			w, err := c.SequenceWidth()
			if err != nil || w.String() != "u8" {
				t.Errorf("SequenceWidth = %v, %v", w, err)
			}
		}},
		{"at selects index mode", []string{"--at", "2"}, func(t *testing.T, c AppConfig) {
			if !c.HasAt || c.At != "2" || c.Mode() != ModeIndex {
				t.Errorf("At = %q HasAt = %v Mode = %s", c.At, c.HasAt, c.Mode())
			}
		}},
		{"empty at still index mode", []string{"--at="}, func(t *testing.T, c AppConfig) {
			if !c.HasAt || c.Mode() != ModeIndex {
				t.Errorf("HasAt = %v Mode = %s", c.HasAt, c.Mode())
			}
		}},
		{"prompt", []string{"--prompt"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModePrompt {
				t.Errorf("Mode = %s", c.Mode())
			}
		}},
		{"interactive", []string{"-i"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModeREPL {
				t.Errorf("Mode = %s", c.Mode())
			}
		}},
		{"tui", []string{"--tui"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModeTUI {
				t.Errorf("Mode = %s", c.Mode())
			}
		}},
		{"serve", []string{"--serve", ":8080"}, func(t *testing.T, c AppConfig) {
			if c.Serve != ":8080" || c.Mode() != ModeServer {
				t.Errorf("Serve = %q Mode = %s", c.Serve, c.Mode())
			}
		}},
		{"compare", []string{"--compare"}, func(t *testing.T, c AppConfig) {
			if c.Mode() != ModeCompare {
				t.Errorf("Mode = %s", c.Mode())
			}
		}},
		{"elements", []string{"--elements", "10,20"}, func(t *testing.T, c AppConfig) {
			coll, err := c.Collection()
			if err != nil || coll.Len() != 2 {
				t.Errorf("Collection = %v, %v", coll, err)
			}
		}},
		{"aliases", []string{"-q", "-d", "-o", "out.txt"}, func(t *testing.T, c AppConfig) {
			if !c.Quiet || !c.Details || c.OutputFile != "out.txt" {
				t.Errorf("got %+v", c)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("fibseq", tt.args, io.Discard)
			if err != nil {
				t.Fatalf("ParseConfig(%v): %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"bad width", []string{"--width", "12"}},
		{"empty elements", []string{"--elements", ""}},
		{"non-numeric elements", []string{"--elements", "1,x"}},
		{"zero timeout", []string{"--timeout", "0s"}},
		{"conflicting modes", []string{"--at", "1", "--prompt"}},
		{"serve with tui", []string{"--serve", ":0", "--tui"}},
		{"quiet and verbose", []string{"-q", "-v"}},
		{"unknown flag", []string{"--nope"}},
		{"positional", []string{"extra"}},
		{"negative count", []string{"-n", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stderr strings.Builder
			_, err := ParseConfig("fibseq", tt.args, &stderr)
			if err == nil {
				t.Fatalf("ParseConfig(%v) succeeded", tt.args)
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error %T is not a ConfigError", err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d", apperrors.ExitCodeFor(err))
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	t.Parallel()
	var stderr strings.Builder
	_, err := ParseConfig("fibseq", []string{"--help"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "-width") {
		t.Errorf("usage missing --width:\n%s", stderr.String())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"COUNT", "20")
	t.Setenv(EnvPrefix+"WIDTH", "big")
	t.Setenv(EnvPrefix+"TIMEOUT", "5s")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"AT", "3")

	cfg, err := ParseConfig("fibseq", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Count != 20 || cfg.Width != "big" || cfg.Timeout != 5*time.Second || !cfg.Quiet {
		t.Errorf("env not applied: %+v", cfg)
	}
	if !cfg.HasAt || cfg.At != "3" {
		t.Errorf("FIBSEQ_AT not applied: %+v", cfg)
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"COUNT", "20")
	t.Setenv(EnvPrefix+"WIDTH", "8")

	cfg, err := ParseConfig("fibseq", []string{"-n", "5", "--width", "32"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Count != 5 || cfg.Width != "32" {
		t.Errorf("flags should win: %+v", cfg)
	}
}

func TestInvalidEnvIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"COUNT", "many")
	t.Setenv(EnvPrefix+"DETAILS", "perhaps")
	t.Setenv(EnvPrefix+"WIDTH", "bogus")
	t.Setenv(EnvPrefix+"ELEMENTS", "1,x,3")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "loud")

	cfg, err := ParseConfig("fibseq", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Count != DefaultCount || cfg.Details {
		t.Errorf("invalid env should be ignored: %+v", cfg)
	}
	if cfg.Width != DefaultWidth || cfg.Elements != DefaultElements || cfg.LogLevel != DefaultLogLevel {
		t.Errorf("invalid string env should be ignored: width=%q elements=%q log-level=%q",
			cfg.Width, cfg.Elements, cfg.LogLevel)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"maybe", true, true},
		{"", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()
	if ModeREPL.String() != "interactive" || Mode(99).String() != "Mode(99)" {
		t.Errorf("unexpected mode strings: %s %s", ModeREPL, Mode(99))
	}
}
