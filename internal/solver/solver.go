// Package solver implements the orchestrator: it owns a board lock, a
// zone cache, an RNG, and a history stack, and drives constraint
// propagation to completion, guessing and rolling back as needed.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sudoku-engine/internal/board"
	"sudoku-engine/internal/boardlock"
	"sudoku-engine/internal/rng"
	"sudoku-engine/internal/strategy"
	"sudoku-engine/internal/zonecache"
	"sudoku-engine/pkg/constants"
)

// ErrUnsolvable is returned when a contradiction is found with no Guess
// entry left in history to roll back to.
var ErrUnsolvable = errors.New("solver: board is unsolvable from current state")

// defaultPoolSize covers Validator + Single + NakedK + BoxLine running
// concurrently each step; WithPoolSize can raise it for callers that want
// more headroom for future strategies or deeper pipelining.
const defaultPoolSize = 4

// Solver drives one board from its initial candidate state toward a full
// solution (or exhaustion). Not safe for concurrent use by multiple
// callers; the parallelism is internal, one step at a time.
type Solver struct {
	bl   *boardlock.BoardLock
	zc   *zonecache.ZoneCache
	rng  *rng.RNG
	pool *ants.Pool
	log  zerolog.Logger

	poolSize int

	history []historyEntry

	solveCount     map[zonecache.Strategy]int
	guessCount     int
	rollbackCount  int
	backtrackCount int

	// status is the outcome of the most recent FillWithTimeout call, one
	// of the constants.Status* strings; empty until FillWithTimeout runs.
	status string

	consumed bool
}

// Option configures a Solver at construction.
type Option func(*Solver)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) { s.log = l }
}

// WithPoolSize overrides the worker pool's concurrency. Defaults to
// defaultPoolSize (one worker per strategy run each step).
func WithPoolSize(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.poolSize = n
		}
	}
}

// New builds a Solver over b, seeded from OS entropy, and builds the
// board's ZoneCache. Fails if the board's zones are malformed.
func New(b *board.Board, opts ...Option) (*Solver, error) {
	return newSolver(b, rng.New(), opts...)
}

// NewWithSeed is New with a deterministic seed: identical seeds over
// structurally identical boards solve identically.
func NewWithSeed(b *board.Board, seed uint64, opts ...Option) (*Solver, error) {
	return newSolver(b, rng.NewWithSeed(seed), opts...)
}

func newSolver(b *board.Board, r *rng.RNG, opts ...Option) (*Solver, error) {
	zc, err := zonecache.New(b)
	if err != nil {
		return nil, err
	}
	s := &Solver{
		bl:         boardlock.New(b),
		zc:         zc,
		rng:        r,
		log:        zerolog.Nop(),
		poolSize:   defaultPoolSize,
		solveCount: make(map[zonecache.Strategy]int),
	}
	return finishConstruction(s, opts)
}

// FromParts adopts an existing lock/cache/rng — used by the punch package
// when handing a board back from generator to solver.
func FromParts(bl *boardlock.BoardLock, zc *zonecache.ZoneCache, r *rng.RNG, logger zerolog.Logger, opts ...Option) (*Solver, error) {
	s := &Solver{
		bl:         bl,
		zc:         zc,
		rng:        r,
		log:        logger,
		poolSize:   defaultPoolSize,
		solveCount: make(map[zonecache.Strategy]int),
	}
	return finishConstruction(s, opts)
}

func finishConstruction(s *Solver, opts []Option) (*Solver, error) {
	for _, opt := range opts {
		opt(s)
	}
	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("solver: building worker pool: %w", err)
	}
	s.pool = pool
	return s, nil
}

func (s *Solver) assertLive() {
	if s.consumed {
		panic("solver: use after the board was handed off (into_punch)")
	}
}

// ConsumeForPunch releases the solver's ownership of its board lock, zone
// cache and RNG to the caller (the punch package) and marks the solver
// unusable, mirroring the spec's consuming solver->punch transition. It
// refuses while a guess is outstanding on a board that is not yet fully
// solved; on a fully solved board every remaining guess is confirmed.
func (s *Solver) ConsumeForPunch() (*boardlock.BoardLock, *zonecache.ZoneCache, *rng.RNG, zerolog.Logger, error) {
	s.assertLive()
	if s.UnsolvedCount() != 0 && s.anyGuessOutstanding() {
		return nil, nil, nil, zerolog.Logger{}, errors.New("solver: cannot hand off to punch with pending guesses unresolved")
	}
	s.consumed = true
	s.pool.Release()
	return s.bl, s.zc, s.rng, s.log, nil
}

func (s *Solver) anyGuessOutstanding() bool {
	depth := 0
	for _, e := range s.history {
		switch e.kind {
		case entryGuess:
			depth++
		case entryGuessBacktrack:
			depth--
		}
	}
	return depth > 0
}

// Board returns the board being solved.
func (s *Solver) Board() *board.Board { return s.bl.Board() }

// RandomSeed returns the RNG's seed.
func (s *Solver) RandomSeed() uint64 { return s.rng.Seed() }

// SetRandomSeed reseeds the solver's RNG.
func (s *Solver) SetRandomSeed(seed uint64) { s.rng.SetSeed(seed) }

// SolveCountByStrategy returns how many steps a given strategy
// contributed a committed effect to.
func (s *Solver) SolveCountByStrategy(strat zonecache.Strategy) int {
	return s.solveCount[strat]
}

// GuessCount returns the total number of guesses made.
func (s *Solver) GuessCount() int { return s.guessCount }

// RollbackCount returns the total number of rollbacks performed.
func (s *Solver) RollbackCount() int { return s.rollbackCount }

// BacktrackCount returns the number of guesses that rolled back into an
// excluded-value backtrack.
func (s *Solver) BacktrackCount() int { return s.backtrackCount }

// Status reports the outcome of the most recent FillWithTimeout call
// (constants.StatusCompleted, StatusStalled, or StatusMaxStepsReached).
// Empty if FillWithTimeout has not been called yet.
func (s *Solver) Status() string { return s.status }

// UnsolvedCount returns how many cells are not yet final.
func (s *Solver) UnsolvedCount() int {
	rg := s.bl.ReadLock()
	defer rg.Release()
	n := 0
	for _, c := range s.Board().Cells {
		if !rg.Read(c).IsFinal() {
			n++
		}
	}
	return n
}

type parallelResult struct {
	validateErr error
	single      []strategy.Effect
	nakedK      []strategy.Effect
	boxLine     []strategy.Effect
}

// runStrategies runs Validator and the three deduction strategies
// concurrently on the solver's worker pool, joining (via errgroup) before
// returning — the barrier the orchestrator needs before it may upgrade to
// a write guard.
func (s *Solver) runStrategies(rg *boardlock.ReadGuard) (parallelResult, error) {
	var res parallelResult
	g := new(errgroup.Group)

	g.Go(func() error {
		return submit(s.pool, func() { res.validateErr = strategy.Validate(rg, s.zc) })
	})
	g.Go(func() error {
		return submit(s.pool, func() { res.single = strategy.Single(rg, s.zc) })
	})
	g.Go(func() error {
		return submit(s.pool, func() { res.nakedK = strategy.NakedK(rg, s.zc) })
	})
	g.Go(func() error {
		return submit(s.pool, func() { res.boxLine = strategy.BoxLine(rg, s.zc) })
	})

	if err := g.Wait(); err != nil {
		return parallelResult{}, err
	}
	return res, nil
}

// submit runs fn on pool and blocks until it completes.
func submit(pool *ants.Pool, fn func()) error {
	done := make(chan struct{})
	err := pool.Submit(func() {
		defer close(done)
		fn()
	})
	if err != nil {
		return fmt.Errorf("solver: submitting to worker pool: %w", err)
	}
	<-done
	return nil
}

// Solve runs one propagation step: acquire a read guard, run every
// strategy in parallel, then upgrade the same guard to a write guard (the
// runStrategies errgroup barrier guarantees every worker has already
// joined, so the upgrade's drop-then-reacquire gap has no other reader
// relying on the lock) and either roll back (on contradiction) or commit
// whatever effects were proposed. Returns whether any progress was made.
func (s *Solver) Solve() (bool, error) {
	s.assertLive()

	rg := s.bl.ReadLock()
	res, err := s.runStrategies(rg)
	if err != nil {
		rg.Release()
		return false, err
	}

	if res.validateErr != nil {
		s.log.Debug().Err(res.validateErr).Msg("contradiction detected, rolling back")
		ok := s.rollback(rg)
		if !ok {
			return false, ErrUnsolvable
		}
		return true, nil
	}

	return s.commit(rg, res)
}

// commit applies every proposed effect under a write guard, deduplicating
// removals a later strategy re-proposed, then records history and
// invalidates the check flags of every zone touched.
func (s *Solver) commit(rg *boardlock.ReadGuard, res parallelResult) (bool, error) {
	wg := rg.UpgradeToWrite()

	backedUp := make(map[int]bool)
	var backups []cellBackup
	var changed []*board.Cell
	contributed := make(map[zonecache.Strategy]bool)

	apply := func(strat zonecache.Strategy, effects []strategy.Effect) {
		for _, e := range effects {
			note := wg.Write(e.Cell)
			for _, v := range e.Values {
				if !note.Get(v) {
					continue
				}
				if !backedUp[e.Cell.Index] {
					backedUp[e.Cell.Index] = true
					backups = append(backups, cellBackup{cell: e.Cell, prior: note.TrueList()})
					changed = append(changed, e.Cell)
				}
				note.SetFalse(v)
				contributed[strat] = true
			}
		}
	}

	apply(zonecache.StrategySingle, res.single)
	apply(zonecache.StrategyNakedK, res.nakedK)
	apply(zonecache.StrategyBoxLine, res.boxLine)

	if len(backups) == 0 {
		wg.Release()
		return false, nil
	}

	s.history = append(s.history, historyEntry{kind: entrySolve, backups: backups})
	s.history = append(s.history, historyEntry{kind: entryCommit})
	for strat := range contributed {
		s.solveCount[strat]++
	}
	wg.Release()

	s.zc.ClearChecksForCells(changed)
	s.log.Debug().Int("cells_changed", len(changed)).Msg("committed deduction step")
	return true, nil
}

// rollback pops history back through (and including) the most recent
// Guess, restoring each popped entry's backups, then converts that Guess
// into a GuessBacktrack excluding the attempted value. Returns false if
// no Guess remains in history (board is unsolvable). rg is upgraded to a
// write guard for the duration of the rollback.
func (s *Solver) rollback(rg *boardlock.ReadGuard) bool {
	wg := rg.UpgradeToWrite()
	defer wg.Release()

	for {
		if len(s.history) == 0 {
			return false
		}
		entry := s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]

		if entry.kind == entryCommit {
			continue
		}
		for _, bk := range entry.backups {
			wg.Write(bk.cell).SetTo(bk.prior)
		}
		if entry.kind != entryGuess {
			continue
		}

		wg.Write(entry.cell).SetFalse(entry.value)
		s.history = append(s.history, historyEntry{kind: entryGuessBacktrack, cell: entry.cell, value: entry.value})
		s.rollbackCount++
		s.backtrackCount++
		s.zc.ClearChecksForCells([]*board.Cell{entry.cell})
		s.log.Debug().Int("cell", entry.cell.Index).Int("excluded", entry.value).Msg("rolled back to guess, excluding value")
		return true
	}
}

// guess picks a cell among those with the fewest remaining candidates
// (ties broken by flat index then RNG), forces a random candidate value
// onto it, and records a Guess history entry.
func (s *Solver) guess() (bool, error) {
	rg := s.bl.ReadLock()
	var tied []*board.Cell
	minCount := -1
	for _, c := range s.Board().Cells {
		note := rg.Read(c)
		if note.IsFinal() {
			continue
		}
		tc := note.TrueCount()
		if minCount == -1 || tc < minCount {
			minCount = tc
			tied = tied[:0]
			tied = append(tied, c)
		} else if tc == minCount {
			tied = append(tied, c)
		}
	}
	if len(tied) == 0 {
		rg.Release()
		return false, nil
	}
	cell := tied[s.rng.PickOne(len(tied))]
	options := rg.Read(cell).TrueList()
	value := options[s.rng.PickOne(len(options))]
	rg.Release()

	wg := s.bl.WriteLock()
	backup := cellBackup{cell: cell, prior: wg.Write(cell).TrueList()}
	wg.Write(cell).SetToSingle(value)
	s.history = append(s.history, historyEntry{kind: entryGuess, cell: cell, value: value, backups: []cellBackup{backup}})
	s.history = append(s.history, historyEntry{kind: entryCommit})
	s.guessCount++
	wg.Release()

	s.zc.ClearChecksForCells([]*board.Cell{cell})
	s.log.Debug().Int("cell", cell.Index).Int("value", value).Msg("guessed")
	return true, nil
}

// FillOnce runs Solve; if it made no progress, it guesses instead.
// Returns whether any progress (deduction or guess) was made.
func (s *Solver) FillOnce() (bool, error) {
	s.assertLive()
	progressed, err := s.Solve()
	if err != nil {
		return false, err
	}
	if progressed {
		return true, nil
	}
	return s.guess()
}

// FillWithTimeout loops FillOnce until the board is full, d elapses, or no
// further progress (deduction, guess, or rollback) is possible. Returns
// the number of cells still unsolved when it stops.
func (s *Solver) FillWithTimeout(d time.Duration) (int, error) {
	s.assertLive()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()

	for {
		if s.UnsolvedCount() == 0 {
			s.status = constants.StatusCompleted
			return 0, nil
		}
		select {
		case <-ctx.Done():
			s.status = constants.StatusMaxStepsReached
			return s.UnsolvedCount(), nil
		default:
		}

		progressed, err := s.FillOnce()
		if err != nil {
			if errors.Is(err, ErrUnsolvable) {
				s.status = constants.StatusStalled
				return s.UnsolvedCount(), nil
			}
			return s.UnsolvedCount(), err
		}
		if !progressed {
			s.status = constants.StatusStalled
			return s.UnsolvedCount(), nil
		}
	}
}
