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

// Package search implements the engine's principal-variation search:
// iterative deepening, negamax with alpha-beta pruning, and the
// quiescence search that stabilizes leaf evaluations, backed by a
// shared transposition table and an opening book consulted before any
// of it runs.
package search

import (
	"sync/atomic"
	"time"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/book"
	"github.com/chesswise/mess/pkg/cache"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/search/clock"
	"github.com/chesswise/mess/pkg/search/tt"
)

// MaxDepth bounds how deep iterative deepening will ever search, and
// sizes every per-ply table indexed by search depth.
const MaxDepth = 128

// Limits bounds how long a single search is allowed to run.
type Limits struct {
	Nodes int
	Depth int

	Infinite  bool
	MoveTime  int
	Time      [piece.ColorN]int
	Increment [piece.ColorN]int
	MovesToGo int
}

// manager builds the clock.Manager Limits describes.
func (l Limits) manager(us piece.Color) clock.Manager {
	switch {
	case l.Infinite:
		return clock.InfiniteManager{}
	case l.MoveTime != 0:
		return &clock.MoveManager{Duration: l.MoveTime}
	default:
		return &clock.NormalManager{
			Us:        us,
			Time:      l.Time,
			Increment: l.Increment,
			MovesToGo: l.MovesToGo,
		}
	}
}

// Context holds all of the state of a single, possibly ongoing search:
// the position being searched, its shared caches, and the statistics
// and principal variation accumulated so far.
type Context struct {
	Board *board.Board
	Book  *book.Book
	Eval  eval.Evaluator
	Cache *cache.Cache
	TT    *tt.Table

	limits Limits
	clock  clock.Manager

	// stopped is set from Stop, which may be called from a different
	// goroutine (e.g. a UCI "stop" command handler) while a search is
	// in progress, so it is read and written atomically.
	stopped atomic.Bool

	stats   Stats
	pv      move.Variation
	pvScore eval.Eval

	killers [MaxDepth + 1]move.Move
}

// NewContext creates a search Context over b, using the given shared
// evaluator, cache, and transposition table. Every Context created over
// the same Cache and Table shares their contents across searches.
func NewContext(b *board.Board, evaluator eval.Evaluator, c *cache.Cache, table *tt.Table) *Context {
	return &Context{
		Board: b,
		Book:  book.New(),
		Eval:  evaluator,
		Cache: c,
		TT:    table,
	}
}

// Stop requests that an in-progress search return as soon as it next
// checks, reporting the best line found by the last completed depth.
// It is safe to call from a different goroutine than the one running
// Search.
func (search *Context) Stop() {
	search.stopped.Store(true)
}

// Search runs iterative deepening under limits and returns the best
// line and its evaluation found before the search stopped.
//
// If the book holds a move for the current position, it is played
// immediately without running any tree search.
func (search *Context) Search(limits Limits, report func(Report)) (move.Variation, eval.Eval) {
	if bookMove, ok := search.Book.Probe(search.Board.Hash); ok {
		var pv move.Variation
		pv.Update(bookMove, move.Variation{})
		return pv, eval.Draw
	}

	search.limits = limits
	search.clock = limits.manager(search.Board.SideToMove)
	search.clock.GetDeadline()

	search.stopped.Store(false)

	search.stats = Stats{SearchStart: time.Now()}
	search.Cache.ClearKillers()
	search.TT.NextEpoch()

	return search.iterativeDeepening(report)
}

// shouldStop reports whether the search should abort at the current
// node: an external Stop call, a hard node limit, or its time budget
// has been exceeded.
//
// The node and time limits are checked only once every 2048 nodes,
// since time.Now is too expensive to call on every node visited.
func (search *Context) shouldStop() bool {
	if search.stopped.Load() {
		return true
	}

	if search.stats.Nodes&2047 != 0 || search.limits.Infinite {
		return false
	}

	if search.limits.Nodes != 0 && search.stats.Nodes > search.limits.Nodes {
		search.Stop()
		return true
	}

	if search.clock.Expired() {
		search.Stop()
		return true
	}

	return false
}

// draw returns the score to use for a drawn position: not exactly
// zero, so that among equally losing or winning lines the search still
// has a preference and doesn't shuffle forever.
func draw(nodes int) eval.Eval {
	return eval.RandDraw(nodes)
}
