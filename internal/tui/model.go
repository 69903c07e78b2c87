package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/bounded"
	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/sequence"
)

// sequenceMsg carries the result of a background generation.
type sequenceMsg struct {
	Generation uint64
	Sequence   *sequence.Sequence
	Err        error
	Duration   time.Duration
}

// contextCancelledMsg is sent when the parent context is done.
type contextCancelledMsg struct{}

// SequenceState holds the sequence panel of a session.
type SequenceState struct {
	generators []sequence.Generator
	current    int
	count      uint64
	generation uint64
	seq        *sequence.Sequence
	err        error
	duration   time.Duration
	pending    bool
}

// Model is the root bubbletea model of the index explorer.
type Model struct {
	keymap KeyMap
	input  textinput.Model

	collection bounded.Collection[int64]
	attempt    *bounded.Attempt[int64]

	SequenceState

	ctx       context.Context
	separator string
	version   string
	recorder  *metrics.Recorder
	width     int
	exitCode  int
}

// NewModel creates an explorer over cfg's collection, starting at cfg's
// count and width. Invalid collection or width settings fall back to the
// defaults.
func NewModel(ctx context.Context, factory sequence.Factory, cfg config.AppConfig, version string) Model {
	collection, err := cfg.Collection()
	if err != nil {
		collection = bounded.DefaultCollection()
	}

	generators := factory.GetAll()
	current := 0
	if g, err := factory.Get(cfg.Width); err == nil {
		current = max(slices.IndexFunc(generators, func(o sequence.Generator) bool {
			return o.Name() == g.Name()
		}), 0)
	}

	input := textinput.New()
	input.Placeholder = "index"
	input.Prompt = "> "
	input.CharLimit = 24
	input.Focus()

	sep := cfg.Separator
	if sep == "" {
		sep = format.DefaultSeparator
	}

	return Model{
		keymap:     DefaultKeyMap(),
		input:      input,
		collection: collection,
		SequenceState: SequenceState{
			generators: generators,
			current:    current,
			count:      cfg.Count,
		},
		ctx:       ctx,
		separator: sep,
		version:   version,
		exitCode:  apperrors.ExitSuccess,
	}
}

// SetRecorder records lookups and generations made during the session.
func (m *Model) SetRecorder(rec *metrics.Recorder) { m.recorder = rec }

// ExitCode returns the code the session ended with.
func (m Model) ExitCode() int { return m.exitCode }

// Init starts the first generation and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.regenerate(),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case sequenceMsg:
		if msg.Generation != m.generation {
			return m, nil // stale result from a previous count or width
		}
		m.pending = false
		m.seq, m.err, m.duration = msg.Sequence, msg.Err, msg.Duration
		terms := 0
		if msg.Sequence != nil {
			terms = len(msg.Sequence.Terms)
		}
		m.recorder.ObserveGeneration(m.generator().Name(), terms, msg.Duration, msg.Err)
		return m, nil

	case contextCancelledMsg:
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Lookup):
		m.lookup()
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.input.Reset()
		m.attempt = nil
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.count++
		return m, m.regenerate()

	case key.Matches(msg, m.keymap.Down):
		if m.count == 0 {
			return m, nil
		}
		m.count--
		return m, m.regenerate()

	case key.Matches(msg, m.keymap.Width):
		m.current = (m.current + 1) % len(m.generators)
		return m, m.regenerate()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// lookup resolves the typed index against the collection.
func (m *Model) lookup() {
	attempt := bounded.Resolve(m.ctx, m.collection, m.input.Value())
	m.recorder.ObserveAccess(attempt.Err)
	m.attempt = &attempt
	m.input.Reset()
}

func (m Model) generator() sequence.Generator { return m.generators[m.current] }

// regenerate bumps the generation counter and returns the command that
// computes the sequence for the current count and width.
func (m *Model) regenerate() tea.Cmd {
	m.generation++
	m.pending = true
	return generateCmd(m.ctx, m.generator(), m.count, m.generation)
}

func generateCmd(ctx context.Context, g sequence.Generator, count, gen uint64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		seq, err := g.Generate(ctx, count, nil)
		return sequenceMsg{Generation: gen, Sequence: seq, Err: err, Duration: time.Since(start)}
	}
}

// watchContextCmd waits for ctx and reports its cancellation.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextCancelledMsg{}
	}
}

// View renders the explorer.
func (m Model) View() string {
	header := titleStyle.Render("fibseq index explorer") + " " + versionStyle.Render(m.version)

	panel := panelStyle
	if m.width > 4 {
		panel = panel.Width(m.width - 4)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		panel.Render(m.accessView()),
		panel.Render(m.sequenceView()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.footerView())
}

func (m Model) accessView() string {
	rows := []string{
		row("Collection", valueStyle.Render(m.collection.String())),
		row("Index", m.input.View()),
	}
	if m.attempt == nil {
		rows = append(rows, row("State", pathStyle.Render(bounded.AwaitingInput.String())))
		return strings.Join(rows, "\n")
	}
	rows = append(rows, row("State", pathStyle.Render(cli.FormatStatePath(m.attempt.Path))))
	if m.attempt.OK() {
		rows = append(rows, row("Result", successStyle.Render(cli.FormatAccessResult(*m.attempt))))
	} else {
		rows = append(rows, row("Result", errorStyle.Render(fmt.Sprintf("%q: %v", m.attempt.Raw, m.attempt.Err))))
	}
	return strings.Join(rows, "\n")
}

func (m Model) sequenceView() string {
	g := m.generator()
	countText := fmt.Sprintf("%d", m.count)
	if g.Width().Fixed() {
		countText += versionStyle.Render(fmt.Sprintf(" (max %d)", sequence.MaxCount(g.Width())))
	}
	rows := []string{
		row("Width", valueStyle.Render(g.Name())),
		row("Count", countText),
	}
	switch {
	case m.pending:
		rows = append(rows, row("Terms", versionStyle.Render("generating...")))
	case m.err != nil:
		rows = append(rows, row("Terms", errorStyle.Render(m.err.Error())))
	case m.seq != nil:
		rows = append(rows,
			row("Terms", successStyle.Render(cli.FormatSequenceLine(m.seq, m.separator, false))),
			row("Duration", valueStyle.Render(format.FormatExecutionDuration(m.duration))),
		)
	}
	return strings.Join(rows, "\n")
}

func (m Model) footerView() string {
	parts := make([]string, 0, len(m.keymap.footerBindings()))
	for _, b := range m.keymap.footerBindings() {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerDescStyle.Render(" • "))
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, factory sequence.Factory, cfg config.AppConfig, version string, rec *metrics.Recorder) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)
	model.SetRecorder(rec)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if m, ok := finalModel.(Model); ok && m.exitCode != apperrors.ExitSuccess {
		return m.exitCode
	}
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
