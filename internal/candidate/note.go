// Package candidate implements CandidateNote: an O(1) candidate set over a
// domain of N symbols, backed by a uint64 bitflag for N<=64 and falling
// back to a multi-word bitset for larger domains (spec "Bitflag cap").
package candidate

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Note is a candidate set over {0, .., N-1} with O(1) membership, add,
// remove, and a cached true-count so IsFinal/FinalNum never rescan.
type Note struct {
	n int

	// small holds the bitflag representation for n <= maxBitflagBits.
	small uint64
	// big holds the multi-word fallback for n > maxBitflagBits. Only one
	// of small/big is live at a time, selected by useBig.
	big   *bitset.BitSet
	useBig bool

	trueCount int

	final    bool
	finalNum int

	fixedFinal    bool
	fixedFinalNum int
}

const maxBitflagBits = 64

// AllTrue returns a Note with every value in [0,n) present.
func AllTrue(n int) (*Note, error) {
	note, err := newNote(n)
	if err != nil {
		return nil, err
	}
	for v := 0; v < n; v++ {
		note.setBit(v, true)
	}
	note.trueCount = n
	note.syncFinal()
	return note, nil
}

// AllFalse returns a Note with no values present.
func AllFalse(n int) (*Note, error) {
	return newNote(n)
}

func newNote(n int) (*Note, error) {
	if n < 2 {
		return nil, fmt.Errorf("candidate: domain size must be >= 2, got %d", n)
	}
	note := &Note{n: n}
	if n > maxBitflagBits {
		note.useBig = true
		note.big = bitset.New(uint(n))
	}
	return note, nil
}

func (note *Note) validate(v int) {
	if v < 0 || v >= note.n {
		panic(fmt.Sprintf("candidate: value %d out of bounds for domain [0,%d)", v, note.n))
	}
}

func (note *Note) setBit(v int, present bool) {
	if note.useBig {
		if present {
			note.big.Set(uint(v))
		} else {
			note.big.Clear(uint(v))
		}
		return
	}
	mask := uint64(1) << uint(v)
	if present {
		note.small |= mask
	} else {
		note.small &^= mask
	}
}

func (note *Note) getBit(v int) bool {
	if note.useBig {
		return note.big.Test(uint(v))
	}
	return note.small&(uint64(1)<<uint(v)) != 0
}

// Get reports whether v is currently a candidate.
func (note *Note) Get(v int) bool {
	note.validate(v)
	return note.getBit(v)
}

// SetTrue adds v to the candidate set. Idempotent.
func (note *Note) SetTrue(v int) {
	note.validate(v)
	if note.getBit(v) {
		return
	}
	note.setBit(v, true)
	note.trueCount++
	note.syncFinal()
}

// SetFalse removes v from the candidate set. Idempotent.
func (note *Note) SetFalse(v int) {
	note.validate(v)
	if !note.getBit(v) {
		return
	}
	note.setBit(v, false)
	note.trueCount--
	note.syncFinal()
}

// SetTo replaces the candidate set with exactly the values in list.
// Duplicates in list are tolerated and absorbed.
func (note *Note) SetTo(list []int) {
	note.clearAll()
	seen := make(map[int]bool, len(list))
	for _, v := range list {
		note.validate(v)
		if !seen[v] {
			seen[v] = true
			note.setBit(v, true)
		}
	}
	note.trueCount = len(seen)
	note.syncFinal()
}

func (note *Note) clearAll() {
	if note.useBig {
		note.big.ClearAll()
	} else {
		note.small = 0
	}
}

// SetToSingle forces v to be the only candidate. v need not currently be
// present; forcing a value not currently present is valid (it is exactly
// how a guess is applied).
func (note *Note) SetToSingle(v int) {
	note.validate(v)
	note.clearAll()
	note.setBit(v, true)
	note.trueCount = 1
	note.syncFinal()
}

func (note *Note) syncFinal() {
	note.final = note.trueCount == 1
	if note.final {
		note.finalNum = note.firstBit()
	} else {
		note.finalNum = -1
	}
}

func (note *Note) firstBit() int {
	for v := 0; v < note.n; v++ {
		if note.getBit(v) {
			return v
		}
	}
	return -1
}

// TrueCount returns the number of present candidates.
func (note *Note) TrueCount() int { return note.trueCount }

// IsFinal reports whether exactly one candidate remains.
func (note *Note) IsFinal() bool { return note.final }

// FinalNum returns the sole present value and true iff IsFinal.
func (note *Note) FinalNum() (int, bool) {
	if !note.final {
		return 0, false
	}
	return note.finalNum, true
}

// Bitflag returns the 64-bit mask of present values. ok is false when
// n > 64 and the bitflag representation cannot hold the domain.
func (note *Note) Bitflag() (mask uint64, ok bool) {
	if note.useBig {
		return 0, false
	}
	return note.small, true
}

// TrueList returns a dense slice of present values. Order is unspecified
// and may change across calls as candidates are removed.
func (note *Note) TrueList() []int {
	out := make([]int, 0, note.trueCount)
	for v := 0; v < note.n; v++ {
		if note.getBit(v) {
			out = append(out, v)
		}
	}
	return out
}

// MinimumCandidate returns the smallest present value, or ok=false if none.
func (note *Note) MinimumCandidate() (v int, ok bool) {
	b := note.firstBit()
	if b == -1 {
		return 0, false
	}
	return b, true
}

// IsSameNote reports whether note and other hold identical candidate sets
// over the same domain size.
func (note *Note) IsSameNote(other *Note) bool {
	if note.n != other.n {
		return false
	}
	if note.trueCount != other.trueCount {
		return false
	}
	for v := 0; v < note.n; v++ {
		if note.getBit(v) != other.getBit(v) {
			return false
		}
	}
	return true
}

// Intersection returns a new Note holding only values present in both
// note and other.
func (note *Note) Intersection(other *Note) *Note {
	if note.n != other.n {
		panic("candidate: intersection across differing domain sizes")
	}
	result, _ := AllFalse(note.n)
	for v := 0; v < note.n; v++ {
		if note.getBit(v) && other.getBit(v) {
			result.setBit(v, true)
			result.trueCount++
		}
	}
	result.syncFinal()
	return result
}

// UnionInto mutates other to additionally contain every value present in
// note, i.e. other := note ∪ other.
func (note *Note) UnionInto(other *Note) {
	if note.n != other.n {
		panic("candidate: union across differing domain sizes")
	}
	for v := 0; v < note.n; v++ {
		if note.getBit(v) && !other.getBit(v) {
			other.setBit(v, true)
			other.trueCount++
		}
	}
	other.syncFinal()
}

// FixedFinal returns the generator-assigned solution value, if any is set.
func (note *Note) FixedFinal() (int, bool) {
	if !note.fixedFinal {
		return 0, false
	}
	return note.fixedFinalNum, true
}

// FixCurrentAsFinal records the current final value as the fixed-final
// solution value. Used only by the generator, after a full solve.
func (note *Note) FixCurrentAsFinal() {
	v, ok := note.FinalNum()
	if !ok {
		panic("candidate: FixCurrentAsFinal called on a non-final note")
	}
	note.fixedFinal = true
	note.fixedFinalNum = v
}

// ClearFixedFinal drops the stored fixed-final value without touching the
// current candidate set.
func (note *Note) ClearFixedFinal() {
	note.fixedFinal = false
	note.fixedFinalNum = 0
}

// ResetToBlank restores every value as a candidate and drops any
// fixed-final marking, turning a solved cell back into an unknown one.
// Used by the punch generator to carve a hole in a completed board.
func (note *Note) ResetToBlank() {
	all := make([]int, note.n)
	for v := range all {
		all[v] = v
	}
	note.SetTo(all)
	note.ClearFixedFinal()
}

// Domain returns the candidate note's symbol count N.
func (note *Note) Domain() int { return note.n }
