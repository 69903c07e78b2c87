package sequence

import (
	"context"
	"math/big"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/agbru/fibseq/internal/sequence")

// Sequence is a generated run, seed terms included.
type Sequence struct {
	// Count is the length parameter the sequence was generated for.
	Count uint64
	// Width is the integer width the terms were computed in.
	Width Width
	// Terms holds the seeds followed by the generated terms.
	Terms []*big.Int
}

// Generated returns the terms that follow the seeds.
func (s *Sequence) Generated() []*big.Int {
	if len(s.Terms) <= 2 {
		return nil
	}
	return s.Terms[2:]
}

// Strings renders every term in base 10.
func (s *Sequence) Strings() []string {
	out := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		out[i] = t.String()
	}
	return out
}

// Last returns the final term.
func (s *Sequence) Last() *big.Int {
	return s.Terms[len(s.Terms)-1]
}

// Equal reports whether both sequences hold the same terms.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil || len(s.Terms) != len(other.Terms) {
		return false
	}
	for i := range s.Terms {
		if s.Terms[i].Cmp(other.Terms[i]) != 0 {
			return false
		}
	}
	return true
}

// Generator produces seeded sequences in one integer width.
type Generator interface {
	// Name returns the registry name, e.g. "u32" or "big".
	Name() string
	// Width returns the integer width used for terms.
	Width() Width
	// Generate runs the generator for count. progress may be nil.
	Generate(ctx context.Context, count uint64, progress ProgressFunc) (*Sequence, error)
	// GenerateTo runs the generator and reports progress on progressChan,
	// tagged with index. Sends never block.
	GenerateTo(ctx context.Context, progressChan chan<- ProgressUpdate, index int, count uint64) (*Sequence, error)
}

// coreGenerator is the algorithm behind a Generator.
type coreGenerator interface {
	Name() string
	Width() Width
	GenerateCore(ctx context.Context, count uint64, progress ProgressFunc) ([]*big.Int, error)
}

// SeqGenerator decorates a coreGenerator with tracing and progress handling.
type SeqGenerator struct {
	core coreGenerator
}

var _ Generator = (*SeqGenerator)(nil)

// NewGenerator wraps a core algorithm.
func NewGenerator(core coreGenerator) Generator {
	return &SeqGenerator{core: core}
}

// Name returns the core's name.
func (g *SeqGenerator) Name() string { return g.core.Name() }

// Width returns the core's width.
func (g *SeqGenerator) Width() Width { return g.core.Width() }

// Generate runs the core inside a span and always reports completion.
func (g *SeqGenerator) Generate(ctx context.Context, count uint64, progress ProgressFunc) (*Sequence, error) {
	ctx, span := tracer.Start(ctx, "sequence.Generate", trace.WithAttributes(
		attribute.String("sequence.width", g.core.Width().String()),
		attribute.String("sequence.count", strconv.FormatUint(count, 10)),
	))
	defer span.End()

	if progress == nil {
		progress = func(float64) {}
	}
	terms, err := g.core.GenerateCore(ctx, count, progress)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	progress(1.0)
	span.SetAttributes(attribute.Int("sequence.terms", len(terms)))
	return &Sequence{Count: count, Width: g.core.Width(), Terms: terms}, nil
}

// GenerateTo adapts Generate to channel-based progress reporting.
func (g *SeqGenerator) GenerateTo(ctx context.Context, progressChan chan<- ProgressUpdate, index int, count uint64) (*Sequence, error) {
	report := func(v float64) {
		if progressChan == nil {
			return
		}
		select {
		case progressChan <- ProgressUpdate{GeneratorIndex: index, Value: v}:
		default:
		}
	}
	return g.Generate(ctx, count, report)
}
