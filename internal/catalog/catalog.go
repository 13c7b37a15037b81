// Package catalog maps stable indices and names to attractor constructors.
package catalog

import (
	"fmt"
	"strings"

	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/physics"
)

// Entry describes one registered attractor family.
type Entry struct {
	Key          string
	Kind         dynamo.Kind
	Name         string
	InitialState dynamo.State
	New          func() dynamo.Attractor
}

// Registry maps indices and keys to attractor families.
type Registry struct {
	entries []Entry
	byKey   map[string]int
}

// NewRegistry returns a registry holding the built-in families in index
// order: lorenz, rossler, chen, chua, double_scroll.
func NewRegistry() *Registry {
	r := &Registry{byKey: make(map[string]int)}

	r.Register(func() dynamo.Attractor { return physics.NewLorenz() })
	r.Register(func() dynamo.Attractor { return physics.NewRossler() })
	r.Register(func() dynamo.Attractor { return physics.NewChen() })
	r.Register(func() dynamo.Attractor { return physics.NewChua() })
	r.Register(func() dynamo.Attractor { return physics.NewDoubleScroll() })

	return r
}

// Register appends a family and returns its index. The key is the family's
// Kind string.
func (r *Registry) Register(fn func() dynamo.Attractor) int {
	sample := fn()
	e := Entry{
		Key:          sample.Kind().String(),
		Kind:         sample.Kind(),
		Name:         sample.Name(),
		InitialState: sample.DefaultState(),
		New:          fn,
	}
	r.entries = append(r.entries, e)
	idx := len(r.entries) - 1
	r.byKey[e.Key] = idx
	return idx
}

// CreateByIndex builds a fresh model with default coefficients.
func (r *Registry) CreateByIndex(i int) (dynamo.Attractor, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, fmt.Errorf("%w: index %d (have %d)", dynamo.ErrUnknownModelKind, i, len(r.entries))
	}
	return r.entries[i].New(), nil
}

// CreateByName builds a model by key and also returns its index.
func (r *Registry) CreateByName(name string) (dynamo.Attractor, int, error) {
	idx, err := r.IndexOf(name)
	if err != nil {
		return nil, -1, err
	}
	att, err := r.CreateByIndex(idx)
	return att, idx, err
}

func (r *Registry) IndexOf(name string) (int, error) {
	idx, ok := r.byKey[strings.ToLower(name)]
	if !ok {
		return -1, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownModelKind, name, r.Keys())
	}
	return idx, nil
}

func (r *Registry) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(r.entries) {
		return Entry{}, false
	}
	return r.entries[i], true
}

func (r *Registry) Len() int { return len(r.entries) }

func (r *Registry) List() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}
