package bounded

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

var tracer = otel.Tracer("github.com/agbru/fibseq/internal/bounded")

// State is a step of a single access attempt.
type State int

// Access attempt states. Parsed and Validated name the step that ran, so a
// rejection is recorded right after the step that failed. Resolved and
// Rejected are terminal.
const (
	AwaitingInput State = iota
	Parsed
	Validated
	Resolved
	Rejected
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "AwaitingInput"
	case Parsed:
		return "Parsed"
	case Validated:
		return "Validated"
	case Resolved:
		return "Resolved"
	case Rejected:
		return "Rejected"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == Resolved || s == Rejected }

// Attempt records one pass through the access state machine.
type Attempt[T any] struct {
	// Raw is the input as received.
	Raw string
	// Index is the parsed index; only meaningful once Parsed was reached.
	Index uint64
	// Value is the element; only meaningful when State is Resolved.
	Value T
	// Path lists every state visited, starting with AwaitingInput.
	Path []State
	// Err is the failure for a Rejected attempt.
	Err error
}

// State returns the final state of the attempt.
func (a Attempt[T]) State() State { return a.Path[len(a.Path)-1] }

// OK reports whether the attempt resolved to a value.
func (a Attempt[T]) OK() bool { return a.State() == Resolved }

func (a *Attempt[T]) advance(s State) { a.Path = append(a.Path, s) }

// ParseIndex trims surrounding whitespace and parses raw as a base-10
// unsigned integer.
func ParseIndex(raw string) (uint64, error) {
	index, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.ParseError{Input: raw, Cause: err}
	}
	return index, nil
}

// Access parses raw, validates it against c and returns the element.
func Access[T any](c Collection[T], raw string) (T, error) {
	a := Resolve(context.Background(), c, raw)
	return a.Value, a.Err
}

// Resolve runs one attempt and records the visited states:
// AwaitingInput → Parsed → Validated → Resolved on success,
// AwaitingInput → Parsed → Rejected on a parse failure and
// AwaitingInput → Parsed → Validated → Rejected on a range failure.
func Resolve[T any](ctx context.Context, c Collection[T], raw string) Attempt[T] {
	_, span := tracer.Start(ctx, "bounded.Resolve")
	defer span.End()

	a := Attempt[T]{Raw: raw, Path: []State{AwaitingInput}}
	reject := func(err error) Attempt[T] {
		a.Err = err
		a.advance(Rejected)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return a
	}

	index, err := ParseIndex(raw)
	a.advance(Parsed)
	if err != nil {
		return reject(err)
	}
	a.Index = index
	span.SetAttributes(attribute.Int64("bounded.length", int64(c.Len())))

	value, err := c.At(index)
	a.advance(Validated)
	if err != nil {
		return reject(err)
	}
	a.Value = value
	a.advance(Resolved)
	return a
}

// ReadIndex reads a single line from r. A final line without a newline is
// accepted; an empty stream returns io.ErrUnexpectedEOF.
func ReadIndex(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", io.ErrUnexpectedEOF
			}
			return line, nil
		}
		return "", apperrors.WrapError(err, "failed to read line")
	}
	return line, nil
}
