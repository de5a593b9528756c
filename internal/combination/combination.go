// Package combination implements a lazy, allocation-light lexicographic
// k-of-n combination iterator, used by the Naked-k strategy to enumerate
// candidate subsets of a zone.
package combination

// Iterator enumerates all size-k subsets of {0, .., n-1} in strict
// lexicographic order. It reuses its internal result buffer between
// Next() calls — callers must not retain the returned slice across calls.
type Iterator struct {
	n, k    int
	indices []int
	buf     []int
	started bool
	done    bool
}

// New creates an Iterator over k-of-n combinations. Degenerate cases
// (k == 0, k > n, or n == 0) produce an iterator that yields nothing.
func New(n, k int) *Iterator {
	it := &Iterator{n: n, k: k}
	if k == 0 || k > n || n == 0 {
		it.done = true
		return it
	}
	it.indices = make([]int, k)
	for i := range it.indices {
		it.indices[i] = i
	}
	it.buf = make([]int, k)
	return it
}

// Next returns the next combination as a borrowed slice of indices into
// [0,n), or ok=false when the enumeration is exhausted.
func (it *Iterator) Next() (combo []int, ok bool) {
	if it.done {
		return nil, false
	}

	if !it.started {
		it.started = true
	} else if !it.advance() {
		it.done = true
		return nil, false
	}

	copy(it.buf, it.indices)
	return it.buf, true
}

// advance moves indices to the next combination in lexicographic order.
// Returns false once every combination has been produced.
func (it *Iterator) advance() bool {
	i := it.k - 1
	for i >= 0 && it.indices[i] == it.n-it.k+i {
		i--
	}
	if i < 0 {
		return false
	}
	it.indices[i]++
	for j := i + 1; j < it.k; j++ {
		it.indices[j] = it.indices[j-1] + 1
	}
	return true
}

// Count returns C(n,k), the total number of combinations New(n,k) would
// produce — useful for tests and for pre-sizing result buffers.
func Count(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}
