// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package engine wraps search.Context into the engine's game-playing
// client interface: a single worker goroutine runs one search at a
// time, while the owning goroutine may concurrently set up the next
// position, request a stop, or read the in-progress analysis. Every
// field touched from both sides is guarded by Engine's mutex, so none
// of that concurrent access needs to be synchronized by the caller.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/book"
	"github.com/chesswise/mess/pkg/cache"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/eval/classical"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/search"
	"github.com/chesswise/mess/pkg/search/tt"
)

// Options configures the tables an Engine is built with.
type Options struct {
	HashMB  int // transposition table size in megabytes
	CacheMB int // move-list/eval cache size in megabytes
}

// DefaultOptions returns the Options every Engine is built with unless
// overridden.
func DefaultOptions() Options {
	return Options{HashMB: 16, CacheMB: 10}
}

// Analysis is one ranked line of a completed or in-progress search, as
// returned by GetAnalysis.
type Analysis struct {
	Move  move.Move
	Score eval.Eval
	PV    move.Variation
}

// Engine is the programmatic game-playing client described by the
// search engine and client interfaces: set up a position, run a
// search on a worker goroutine, and poll or stop it from the caller's
// own goroutine.
type Engine struct {
	// book and the tables below are shared across every position this
	// Engine searches and persist for its lifetime. Only NewGame resets
	// the two tables, matching a transposition table's usual lifetime
	// within a single game; the book is never reset.
	book  *book.Book
	cache *cache.Cache
	tt    *tt.Table

	mu        sync.Mutex
	evaluator eval.Evaluator
	board     *board.Board
	ctx       *search.Context

	active   bool
	ponder   bool
	limits   search.Limits
	best     move.Move
	analysis []Analysis
}

// New creates an Engine at the standard starting position, using
// evaluator for static evaluation. A nil evaluator defaults to the
// classical hand-written evaluation function.
func New(evaluator eval.Evaluator, opts Options) *Engine {
	if evaluator == nil {
		evaluator = classical.NewEvaluator()
	}

	e := &Engine{
		book:      book.New(),
		cache:     cache.New(),
		tt:        tt.NewTable(opts.HashMB),
		evaluator: evaluator,
	}
	e.cache.Resize(opts.CacheMB)
	e.setPositionLocked(board.StartFEN)
	return e
}

// Book returns the Engine's opening book, for callers that want to
// load lines into it before searching.
func (e *Engine) Book() *book.Book {
	return e.book
}

// NewGame resets every table shared across searches. It must not be
// called while a search is active.
func (e *Engine) NewGame() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		return errors.New("engine: cannot start a new game while a search is active")
	}

	e.tt.Clear()
	e.cache.Clear()
	return nil
}

// SetPosition sets the position to fen, discarding any analysis of the
// previous position. It must not be called while a search is active.
func (e *Engine) SetPosition(fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		return errors.New("engine: cannot set position while a search is active")
	}

	e.setPositionLocked(fen)
	return nil
}

func (e *Engine) setPositionLocked(fen string) {
	e.board = board.New(fen)
	e.ctx = search.NewContext(e.board, e.evaluator, e.cache, e.tt)
	e.ctx.Book = e.book
	e.best = move.Null
	e.analysis = nil
}

// ApplyMove plays the long-algebraic move mv (e.g. "e2e4", "e7e8q") on
// the current position. It must not be called while a search is
// active.
func (e *Engine) ApplyMove(mv string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		return errors.New("engine: cannot apply a move while a search is active")
	}

	m, err := book.FindCoordinateMove(e.board, mv)
	if err != nil {
		return err
	}

	e.board.MakeMove(m)
	e.best = move.Null
	e.analysis = nil
	return nil
}

// ApplyMoveList is ApplyMove for every whitespace-separated move in
// moves, in order. It stops and returns the first error encountered,
// leaving the position advanced through the moves before it.
func (e *Engine) ApplyMoveList(moves string) error {
	for _, mv := range strings.Fields(moves) {
		if err := e.ApplyMove(mv); err != nil {
			return err
		}
	}
	return nil
}

// ApplyPGNMove plays the standard algebraic notation move san (e.g.
// "Nf3", "O-O", "exd5") on the current position.
func (e *Engine) ApplyPGNMove(san string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		return errors.New("engine: cannot apply a move while a search is active")
	}

	m, err := book.ResolveSAN(e.board, san)
	if err != nil {
		return err
	}

	e.board.MakeMove(m)
	e.best = move.Null
	e.analysis = nil
	return nil
}

// SetSearchTimeLimit bounds the next Go call to at most ms
// milliseconds of search and turns off an infinite search. A depth
// limit set by SetMaximumDepth stays in force alongside it.
func (e *Engine) SetSearchTimeLimit(ms int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.limits.Infinite = false
	e.limits.MoveTime = ms
}

// SetLimits overwrites every search limit at once, for callers (such as
// a UCI front-end) translating a richer limit set - remaining clock
// time and increment, moves to go, or infinite search - than the
// single-value SetSearchTimeLimit/SetMaximumDepth setters cover.
func (e *Engine) SetLimits(l search.Limits) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.limits = l
}

// SetMaximumDepth bounds the next Go call to at most d plys of
// iterative deepening. A depth of 0 leaves the search depth-unbounded.
func (e *Engine) SetMaximumDepth(d int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.limits.Depth = d
}

// SetPonder records whether pondering is enabled, as reported by
// IsPondering. Go does not read the flag: no search runs on the
// opponent's clock, and searches behave the same either way.
func (e *Engine) SetPonder(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ponder = on
}

// IsPondering reports whether pondering is currently enabled.
func (e *Engine) IsPondering() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ponder
}

// Go starts a search on the current position using the limits set by
// SetSearchTimeLimit, SetMaximumDepth, or SetLimits, running it on a
// new worker goroutine and returning immediately. onReport, if
// non-nil, is called from the worker goroutine once per completed
// depth; onDone, if non-nil, is called once, after the search has
// fully stopped, with its final best move and score.
//
// Go is a no-op if a search is already active.
func (e *Engine) Go(onReport func(search.Report), onDone func(move.Move, eval.Eval)) {
	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return
	}

	e.active = true
	ctx := e.ctx
	limits := e.limits
	e.mu.Unlock()

	go func() {
		pv, score := ctx.Search(limits, func(r search.Report) {
			e.recordAnalysis(pv0(r.PV), r.Score, r.PV)
			if onReport != nil {
				onReport(r)
			}
		})

		e.mu.Lock()
		e.active = false
		e.mu.Unlock()
		e.recordAnalysis(pv0(pv), score, pv)

		if onDone != nil {
			onDone(pv0(pv), score)
		}
	}()
}

func pv0(pv move.Variation) move.Move {
	return pv.Move(0)
}

func (e *Engine) recordAnalysis(best move.Move, score eval.Eval, pv move.Variation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.best = best
	e.analysis = []Analysis{{Move: best, Score: score, PV: pv}}
}

// Stop requests that an active search return as soon as it next
// checks, reporting the best move found by its last completed depth.
// It is a no-op if no search is active.
func (e *Engine) Stop() {
	e.mu.Lock()
	ctx := e.ctx
	e.mu.Unlock()
	ctx.Stop()
}

// IsActive reports whether a search is currently running.
func (e *Engine) IsActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// GetBestMove returns the best move found by the current or most
// recently completed search, or move.Null if none has run yet.
func (e *Engine) GetBestMove() (move.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.best == move.Null {
		return move.Null, fmt.Errorf("engine: no search result is available")
	}
	return e.best, nil
}

// GetAnalysis returns the engine's ranked root-move analysis: in this
// single-line configuration, a slice of at most one Analysis holding
// the current best move, its score, and its principal variation.
func (e *Engine) GetAnalysis() []Analysis {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Analysis(nil), e.analysis...)
}
