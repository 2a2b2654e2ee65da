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

package cache

import (
	"sync"

	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/zobrist"
)

// estimated average bytes held per cached move list, used to translate
// a megabyte capacity into an entry-count bound for the hash map.
const avgMoveListBytes = 128

// estimated bytes per evaluation entry.
const avgEvalEntryBytes = 32

// moveListTable is a capacity-bounded, mutex-guarded hash-to-move-list
// cache. Unlike tt.Table it is a plain map, since move lists vary in
// length and don't fit a fixed-size slot; capacity is enforced by
// dropping the whole table and starting over once the bound is hit,
// which is simple and cheap relative to an LRU for this workload.
type moveListTable struct {
	mu       sync.RWMutex
	entries  map[zobrist.Key][]move.Move
	maxItems int
}

func newMoveListTable(capacityMB int) moveListTable {
	return moveListTable{
		entries:  make(map[zobrist.Key][]move.Move),
		maxItems: capacityMB * 1024 * 1024 / avgMoveListBytes,
	}
}

func (t *moveListTable) get(hash zobrist.Key) ([]move.Move, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	moves, ok := t.entries[hash]
	return moves, ok
}

func (t *moveListTable) set(hash zobrist.Key, moves []move.Move) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.maxItems {
		t.entries = make(map[zobrist.Key][]move.Move)
	}

	t.entries[hash] = moves
}

func (t *moveListTable) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[zobrist.Key][]move.Move)
}

// evalTable is the equivalent capacity-bounded cache for static
// evaluations.
type evalTable struct {
	mu       sync.RWMutex
	entries  map[zobrist.Key]EvalEntry
	maxItems int
}

func newEvalTable(capacityMB int) evalTable {
	return evalTable{
		entries:  make(map[zobrist.Key]EvalEntry),
		maxItems: capacityMB * 1024 * 1024 / avgEvalEntryBytes,
	}
}

func (t *evalTable) get(hash zobrist.Key) (EvalEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[hash]
	return entry, ok
}

func (t *evalTable) set(hash zobrist.Key, entry EvalEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.maxItems {
		t.entries = make(map[zobrist.Key]EvalEntry)
	}

	t.entries[hash] = entry
}

func (t *evalTable) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[zobrist.Key]EvalEntry)
}
