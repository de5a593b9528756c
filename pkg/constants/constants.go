// Package constants holds the engine's fixed defaults: the canonical board
// sizes, solver limits, and CLI defaults shared across packages.
package constants

import "time"

// Canonical board sizes.
const (
	SizeClassic9  = 9
	SizeClassic16 = 16
)

// MinDomainSize is the smallest domain CandidateNote and Board support.
const MinDomainSize = 2

// MaxBitflagSize is the largest domain that fits in a single uint64
// bitflag; above this, CandidateNote falls back to a multi-word bitset.
const MaxBitflagSize = 64

// Solver defaults.
const (
	DefaultFillTimeout      = 30 * time.Second
	DefaultParallelPoolSize = 8
)

// DefaultGivens is the default advisory clue-count target the CLI logs when
// the caller does not specify one. Punch does not enforce it.
const DefaultGivens = 30

// Status strings a Solver reports via Status() after FillWithTimeout
// returns; not part of the core's error taxonomy.
const (
	StatusCompleted       = "completed"
	StatusStalled         = "stalled"
	StatusMaxStepsReached = "max_steps_reached"
)

// EngineVersion is surfaced by the CLI's --version flag.
const EngineVersion = "0.1.0"

// DateFormat is used by the CLI when stamping generated-puzzle output.
const DateFormat = "2006-01-02"
