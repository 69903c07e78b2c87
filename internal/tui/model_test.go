package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibseq/internal/bounded"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/sequence"
)

func testConfig() config.AppConfig {
	return config.AppConfig{
		Count:     10,
		Width:     "64",
		Separator: " -> ",
		Elements:  "1,2,3,4,5",
	}
}

func newTestModel(t *testing.T, cfg config.AppConfig) Model {
	t.Helper()
	m := NewModel(context.Background(), sequence.NewDefaultFactory(), cfg, "test")
	cmd := m.regenerate()
	return update(t, m, cmd())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Lookup", km.Lookup},
		{"Clear", km.Clear},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Width", km.Width},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeysLeaveLettersToInput(t *testing.T) {
	for _, k := range DefaultKeyMap().Quit.Keys() {
		if len(k) == 1 {
			t.Errorf("Quit binding uses printable key %q", k)
		}
	}
}

func TestLookupResolved(t *testing.T) {
	m := newTestModel(t, testConfig())
	m = typeText(t, m, "2")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.attempt == nil || !m.attempt.OK() {
		t.Fatalf("attempt = %+v, want resolved", m.attempt)
	}
	if m.attempt.Value != 3 {
		t.Errorf("Value = %d, want 3", m.attempt.Value)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after lookup: %q", m.input.Value())
	}
	view := m.View()
	for _, want := range []string{
		"The value of the element at index 2 is: 3",
		"AwaitingInput -> Parsed -> Validated -> Resolved",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestLookupRejected(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		path     []bounded.State
	}{
		{"out of range", "5", apperrors.ErrIndexOutOfRange,
			[]bounded.State{bounded.AwaitingInput, bounded.Parsed, bounded.Validated, bounded.Rejected}},
		{"not a number", "abc", apperrors.ErrParse,
			[]bounded.State{bounded.AwaitingInput, bounded.Parsed, bounded.Rejected}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, testConfig())
			m = typeText(t, m, tt.input)
			m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			if m.attempt == nil || m.attempt.OK() {
				t.Fatalf("attempt = %+v, want rejected", m.attempt)
			}
			if !errors.Is(m.attempt.Err, tt.sentinel) {
				t.Errorf("Err = %v, want %v", m.attempt.Err, tt.sentinel)
			}
			if len(m.attempt.Path) != len(tt.path) {
				t.Fatalf("Path = %v, want %v", m.attempt.Path, tt.path)
			}
			for i := range tt.path {
				if m.attempt.Path[i] != tt.path[i] {
					t.Errorf("Path[%d] = %v, want %v", i, m.attempt.Path[i], tt.path[i])
				}
			}
			if !strings.Contains(m.View(), tt.input) {
				t.Errorf("View() does not echo rejected input %q", tt.input)
			}
		})
	}
}

func TestClearResetsAttempt(t *testing.T) {
	m := newTestModel(t, testConfig())
	m = typeText(t, m, "1")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.attempt != nil {
		t.Errorf("attempt = %+v after clear, want nil", m.attempt)
	}
}

func TestInitialSequence(t *testing.T) {
	m := newTestModel(t, testConfig())
	if m.pending {
		t.Fatal("sequence still pending after result")
	}
	want := "1 -> 1 -> 2 -> 3 -> 5 -> 8 -> 13 -> 21 -> 34"
	if !strings.Contains(m.View(), want) {
		t.Errorf("View() missing %q", want)
	}
}

func TestCountKeys(t *testing.T) {
	m := newTestModel(t, testConfig())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("up returned no command")
	}
	m = update(t, m, cmd())
	if m.count != 11 || m.seq.Count != 11 {
		t.Errorf("count = %d, seq.Count = %d, want 11", m.count, m.seq.Count)
	}
	if !strings.Contains(m.View(), "-> 55") {
		t.Error("View() missing term 55 for count 11")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, next.(Model), cmd())
	if m.count != 10 {
		t.Errorf("count = %d after down, want 10", m.count)
	}
}

func TestDownStopsAtZero(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 0
	m := newTestModel(t, cfg)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if cmd != nil {
		t.Error("down at count 0 returned a command")
	}
	if next.(Model).count != 0 {
		t.Errorf("count = %d, want 0", next.(Model).count)
	}
}

func TestStaleSequenceIgnored(t *testing.T) {
	m := newTestModel(t, testConfig())
	stale := sequenceMsg{Generation: m.generation - 1, Err: errors.New("stale")}
	m = update(t, m, stale)
	if m.err != nil {
		t.Errorf("stale message applied: err = %v", m.err)
	}
}

func TestWidthCyclesAndWraps(t *testing.T) {
	m := newTestModel(t, testConfig())
	names := make([]string, 0, len(m.generators))
	for range m.generators {
		names = append(names, m.generator().Name())
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
	}
	if names[0] != "u64" {
		t.Errorf("initial width = %s, want u64", names[0])
	}
	if m.generator().Name() != names[0] {
		t.Errorf("width after full cycle = %s, want %s", m.generator().Name(), names[0])
	}
}

func TestOverflowShown(t *testing.T) {
	cfg := testConfig()
	cfg.Width = "8"
	cfg.Count = 20
	m := newTestModel(t, cfg)
	if !errors.Is(m.err, apperrors.ErrArithmeticOverflow) {
		t.Fatalf("err = %v, want overflow", m.err)
	}
	view := m.View()
	if !strings.Contains(view, "overflows") {
		t.Errorf("View() missing overflow error:\n%s", view)
	}
	if !strings.Contains(view, "(max 14)") {
		t.Errorf("View() missing max count hint:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, testConfig())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}
}

func TestContextCancelledQuits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	msg := watchContextCmd(ctx)()

	m := newTestModel(t, testConfig())
	next, cmd := m.Update(msg)
	if next.(Model).ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("ExitCode() = %d, want %d", next.(Model).ExitCode(), apperrors.ExitErrorCanceled)
	}
	if cmd == nil {
		t.Fatal("cancellation returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("cancellation did not quit")
	}
}

func TestInvalidCollectionFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.Elements = "x"
	m := NewModel(context.Background(), sequence.NewDefaultFactory(), cfg, "test")
	if m.collection.Len() != 5 {
		t.Errorf("collection length = %d, want default 5", m.collection.Len())
	}
}
