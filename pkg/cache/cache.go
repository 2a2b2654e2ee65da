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

// Package cache implements the engine-wide, position-keyed caches used
// by search in addition to the per-search tt.Table: a move-list cache
// that skips move generation on positions reached by more than one
// path, a static evaluation cache, and a set of killer moves that is
// position-independent and cleared only between searches.
//
// Every table is guarded by its own mutex so that concurrent readers
// from, for instance, a multi-position evaluation cache warm-up never
// block on the killer-move set.
package cache

import (
	"sync"

	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/zobrist"
)

// defaultCapacityMB is the starting size of the move-list and
// evaluation tables, matching the Rust engine's own default.
const defaultCapacityMB = 10

// Cache bundles every engine-wide cache consulted outside the
// principal-variation search itself.
type Cache struct {
	moveLists moveListTable
	evals     evalTable

	killerMu sync.RWMutex
	killers  map[move.Move]struct{}
}

// New creates a Cache with tables sized to their default capacity.
func New() *Cache {
	return &Cache{
		moveLists: newMoveListTable(defaultCapacityMB),
		evals:     newEvalTable(defaultCapacityMB),
		killers:   make(map[move.Move]struct{}),
	}
}

// Clear empties every table in the cache.
func (c *Cache) Clear() {
	c.moveLists.clear()
	c.evals.clear()
	c.ClearKillers()
}

// Resize rebuilds the move-list and evaluation tables at a new
// capacity in megabytes, discarding their previous contents.
func (c *Cache) Resize(capacityMB int) {
	c.moveLists = newMoveListTable(capacityMB)
	c.evals = newEvalTable(capacityMB)
}

// MoveList returns the cached move list for hash, if any.
func (c *Cache) MoveList(hash zobrist.Key) ([]move.Move, bool) {
	return c.moveLists.get(hash)
}

// SetMoveList caches moves as the move list for hash.
func (c *Cache) SetMoveList(hash zobrist.Key, moves []move.Move) {
	c.moveLists.set(hash, moves)
}

// Eval returns the cached static evaluation for hash, if any.
func (c *Cache) Eval(hash zobrist.Key) (EvalEntry, bool) {
	return c.evals.get(hash)
}

// SetEval caches entry as the static evaluation for hash.
func (c *Cache) SetEval(hash zobrist.Key, entry EvalEntry) {
	c.evals.set(hash, entry)
}

// ClearEvals empties only the evaluation table, e.g. when switching
// evaluators without wanting a stale-hash collision against new values.
func (c *Cache) ClearEvals() {
	c.evals.clear()
}

// EvalEntry is a single cached static evaluation, along with the depth
// it was computed to so a shallower reuse attempt is known unreliable.
type EvalEntry struct {
	Value eval.Eval
	Depth int
}

// AddKiller records m as a killer move: a quiet move that caused a
// beta cutoff elsewhere in the search tree and is worth trying early
// in other branches at a similar depth.
func (c *Cache) AddKiller(m move.Move) {
	c.killerMu.Lock()
	defer c.killerMu.Unlock()
	c.killers[m] = struct{}{}
}

// IsKiller reports whether m is a recorded killer move.
func (c *Cache) IsKiller(m move.Move) bool {
	c.killerMu.RLock()
	defer c.killerMu.RUnlock()
	_, ok := c.killers[m]
	return ok
}

// ClearKillers empties the killer-move set. Unlike the move-list and
// eval tables, killer moves are position-independent and must be
// cleared whenever the engine starts analyzing a new position.
func (c *Cache) ClearKillers() {
	c.killerMu.Lock()
	defer c.killerMu.Unlock()
	c.killers = make(map[move.Move]struct{})
}
