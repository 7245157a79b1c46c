package dataset

import (
	"fmt"
	"sort"
)

// Index maps generation numbers to their preset collections.
// An Index never changes after construction and is safe to share.
type Index struct {
	parts map[int]*Collection
}

// Source hands out the Index a request should use.
type Source interface {
	Index() *Index
}

// NewIndex builds an index over cols. A later collection for the same
// generation replaces an earlier one.
func NewIndex(cols ...*Collection) *Index {
	parts := make(map[int]*Collection, len(cols))
	for _, c := range cols {
		if c != nil {
			parts[c.Generation] = c
		}
	}
	return &Index{parts: parts}
}

// Index returns i itself so a fixed Index can serve as a Source.
func (i *Index) Index() *Index { return i }

// Presets returns the collection for gen.
func (i *Index) Presets(gen int) (*Collection, error) {
	if i != nil {
		if c, ok := i.parts[gen]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrDatasetNotFound, gen)
}

// Generations lists loaded generations in ascending order.
func (i *Index) Generations() []int {
	if i == nil {
		return nil
	}
	out := make([]int, 0, len(i.parts))
	for g := range i.parts {
		out = append(out, g)
	}
	sort.Ints(out)
	return out
}
