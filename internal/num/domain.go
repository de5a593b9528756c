// Package num provides the bounded-index domain type shared by every core
// package. Go has no const generics, so the Rust original's
// BoundedIndex<const N: usize> becomes a runtime-checked Index validated
// against a Domain carried alongside it, rather than a distinct type per N.
package num

import "fmt"

// Domain describes the symbol range {0, .., N-1} a board or candidate note
// is defined over. N must be >= 2.
type Domain struct {
	N int
}

// NewDomain validates N and returns a Domain.
func NewDomain(n int) (Domain, error) {
	if n < 2 {
		return Domain{}, fmt.Errorf("num: domain size must be >= 2, got %d", n)
	}
	return Domain{N: n}, nil
}

// Index is a value known to lie in [0, N) for some Domain. It carries no
// reference to the domain itself — callers validate at construction via
// Domain.Index and trust the value afterward, mirroring the original's
// compile-time-checked BoundedIndex.
type Index int

// Index validates v against the domain and returns a Index.
func (d Domain) Index(v int) (Index, error) {
	if v < 0 || v >= d.N {
		return 0, fmt.Errorf("num: value %d out of bounds for domain [0,%d)", v, d.N)
	}
	return Index(v), nil
}

// MustIndex is Index but panics on an out-of-range value; used where the
// caller has already established the bound (e.g. iterating [0,N)).
func (d Domain) MustIndex(v int) Index {
	idx, err := d.Index(v)
	if err != nil {
		panic(err)
	}
	return idx
}

// All returns every Index in [0, N) in order.
func (d Domain) All() []Index {
	out := make([]Index, d.N)
	for i := 0; i < d.N; i++ {
		out[i] = Index(i)
	}
	return out
}

// Range returns every Index in [lo, hi) in order. It rejects a negative or
// overflowing bound rather than silently clamping.
func (d Domain) Range(lo, hi int) ([]Index, error) {
	if lo < 0 || hi > d.N || lo > hi {
		return nil, fmt.Errorf("num: range [%d,%d) invalid for domain [0,%d)", lo, hi, d.N)
	}
	out := make([]Index, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, Index(i))
	}
	return out, nil
}
