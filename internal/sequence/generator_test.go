package sequence

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

func TestDefaultFactory_Get(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	tests := []struct {
		name      string
		wantName  string
		wantWidth Width
		wantErr   bool
	}{
		{"u8", "u8", Width8, false},
		{"16", "u16", Width16, false},
		{"U32", "u32", Width32, false},
		{"u64", "u64", Width64, false},
		{"big", "big", WidthBig, false},
		{"u128", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := factory.Get(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Get(%q) should fail", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", tt.name, err)
			}
			if g.Name() != tt.wantName || g.Width() != tt.wantWidth {
				t.Errorf("Get(%q) = %s/%v, want %s/%v", tt.name, g.Name(), g.Width(), tt.wantName, tt.wantWidth)
			}
		})
	}
}

func TestDefaultFactory_MustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustGet should panic for unknown names")
		}
	}()
	NewDefaultFactory().MustGet("nope")
}

func TestDefaultFactory_GetAllOrder(t *testing.T) {
	t.Parallel()
	all := NewDefaultFactory().GetAll()
	if len(all) < 5 {
		t.Fatalf("expected at least 5 generators, got %d", len(all))
	}
	for i, w := range []Width{Width8, Width16, Width32, Width64} {
		if all[i].Width() != w {
			t.Errorf("GetAll()[%d] width = %v, want %v", i, all[i].Width(), w)
		}
	}
}

func TestSeqGenerator_Generate(t *testing.T) {
	t.Parallel()
	for _, g := range NewDefaultFactory().GetAll() {
		t.Run(g.Name(), func(t *testing.T) {
			t.Parallel()
			var mu sync.Mutex
			var reports []float64
			seq, err := g.Generate(context.Background(), 10, func(v float64) {
				mu.Lock()
				reports = append(reports, v)
				mu.Unlock()
			})
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if got := len(seq.Terms); got != 9 {
				t.Fatalf("got %d terms, want 9", got)
			}
			if seq.Last().Int64() != 34 {
				t.Errorf("last term = %s, want 34", seq.Last())
			}
			if len(seq.Generated()) != 7 {
				t.Errorf("Generated() has %d terms, want 7", len(seq.Generated()))
			}
			if len(reports) == 0 || reports[len(reports)-1] != 1.0 {
				t.Errorf("final progress report should be 1.0, got %v", reports)
			}
			for i := 1; i < len(reports); i++ {
				if reports[i] < reports[i-1] {
					t.Errorf("progress went backwards: %v", reports)
				}
			}
		})
	}
}

func TestSeqGenerator_Overflow(t *testing.T) {
	t.Parallel()
	g := NewDefaultFactory().MustGet("u16")
	seq, err := g.Generate(context.Background(), 100, nil)
	if seq != nil {
		t.Error("overflowing generation should not return a sequence")
	}
	if !errors.Is(err, apperrors.ErrArithmeticOverflow) {
		t.Fatalf("expected an overflow error, got %v", err)
	}
}

func TestSeqGenerator_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, name := range []string{"u64", "big"} {
		// u64 would overflow long before 10k; cancellation is observed first.
		_, err := NewDefaultFactory().MustGet(name).Generate(ctx, 10_000, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", name, err)
		}
	}
}

func TestSeqGenerator_GenerateTo(t *testing.T) {
	t.Parallel()
	g := NewDefaultFactory().MustGet("big")

	ch := make(chan ProgressUpdate, 200)
	if _, err := g.GenerateTo(context.Background(), ch, 3, 500); err != nil {
		t.Fatalf("GenerateTo failed: %v", err)
	}
	close(ch)
	var last ProgressUpdate
	n := 0
	for u := range ch {
		if u.GeneratorIndex != 3 {
			t.Fatalf("unexpected index %d", u.GeneratorIndex)
		}
		last = u
		n++
	}
	if n == 0 || last.Value != 1.0 {
		t.Errorf("expected final update 1.0, got %d updates ending at %v", n, last.Value)
	}

	if _, err := g.GenerateTo(context.Background(), nil, 0, 50); err != nil {
		t.Errorf("nil channel should be accepted: %v", err)
	}
}

func TestSequence_Equal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := NewDefaultFactory()
	a, _ := f.MustGet("u32").Generate(ctx, 20, nil)
	b, _ := f.MustGet("big").Generate(ctx, 20, nil)
	c, _ := f.MustGet("big").Generate(ctx, 21, nil)

	if !a.Equal(b) {
		t.Error("u32 and big should agree at count 20")
	}
	if a.Equal(c) {
		t.Error("different counts should not be equal")
	}
	if a.Equal(nil) {
		t.Error("nil should never be equal")
	}
}
