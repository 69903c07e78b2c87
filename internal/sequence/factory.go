package sequence

import (
	"fmt"
	"sort"
	"sync"
)

// Factory looks up generators by name.
type Factory interface {
	Get(name string) (Generator, error)
	MustGet(name string) Generator
	List() []string
	GetAll() []Generator
}

// extraGenerators holds cores registered by optional build-tagged files.
var extraGenerators []func() coreGenerator

// DefaultFactory is a registry pre-populated with every supported width.
type DefaultFactory struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

var _ Factory = (*DefaultFactory)(nil)

// NewDefaultFactory registers u8, u16, u32, u64, big and any optional cores.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{generators: make(map[string]Generator)}
	for _, w := range Widths() {
		if w.Fixed() {
			f.Register(FixedWidthGenerator{W: w})
		} else {
			f.Register(BigGenerator{})
		}
	}
	for _, mk := range extraGenerators {
		f.Register(mk())
	}
	return f
}

// Register adds or replaces a core under its own name.
func (f *DefaultFactory) Register(core coreGenerator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generators[core.Name()] = NewGenerator(core)
}

// Get returns the generator registered under name. Width spellings accepted
// by ParseWidth ("32", "u32") resolve to the same generator.
func (f *DefaultFactory) Get(name string) (Generator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if g, ok := f.generators[name]; ok {
		return g, nil
	}
	if w, err := ParseWidth(name); err == nil {
		if g, ok := f.generators[w.String()]; ok {
			return g, nil
		}
	}
	return nil, fmt.Errorf("unknown generator %q (available: %v)", name, f.listLocked())
}

// MustGet is like Get but panics on unknown names. Intended for tests and
// static wiring only.
func (f *DefaultFactory) MustGet(name string) Generator {
	g, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return g
}

// List returns the registered names, sorted by width then name.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

func (f *DefaultFactory) listLocked() []string {
	all := f.sortedLocked()
	names := make([]string, len(all))
	for i, g := range all {
		names[i] = g.Name()
	}
	return names
}

// GetAll returns every registered generator in List order.
func (f *DefaultFactory) GetAll() []Generator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sortedLocked()
}

func (f *DefaultFactory) sortedLocked() []Generator {
	all := make([]Generator, 0, len(f.generators))
	for _, g := range f.generators {
		all = append(all, g)
	}
	sort.Slice(all, func(i, j int) bool {
		ri, rj := widthRank(all[i].Width()), widthRank(all[j].Width())
		if ri != rj {
			return ri < rj
		}
		return all[i].Name() < all[j].Name()
	})
	return all
}

// widthRank orders fixed widths before arbitrary precision.
func widthRank(w Width) int {
	if w == WidthBig {
		return 1 << 10
	}
	return int(w)
}
