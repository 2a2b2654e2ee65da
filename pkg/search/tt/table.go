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

// Package tt implements the principal-variation transposition table:
// a fixed-size, quality-replacement hash table keyed by zobrist hash
// that lets iterative deepening reuse work across depths and caches
// alpha-beta cutoffs within a single search.
package tt

import (
	"math/bits"
	"unsafe"

	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/zobrist"
)

// EntrySize is the size in bytes of a single Entry.
var EntrySize = int(unsafe.Sizeof(Entry{}))

// NewTable creates a Table sized to at most mbs megabytes.
func NewTable(mbs int) *Table {
	size := (mbs * 1024 * 1024) / EntrySize
	if size == 0 {
		size = 1
	}

	return &Table{table: make([]Entry, size), size: size}
}

// Table is a fixed-size transposition table shared across a search.
type Table struct {
	table []Entry
	size  int
	epoch uint8
}

// Clear empties every entry in the table.
func (tt *Table) Clear() {
	clear(tt.table)
}

// NextEpoch marks the table entries from the previous search as
// lower-quality, so a new search slowly overwrites them instead of
// being blocked by depth-heavy entries from a stale position.
func (tt *Table) NextEpoch() {
	tt.epoch++
}

// Resize rebuilds the table at a new size, carrying over as many
// entries as fit.
func (tt *Table) Resize(mbs int) {
	size := (mbs * 1024 * 1024) / EntrySize
	if size == 0 {
		size = 1
	}

	newTable := make([]Entry, size)
	copy(newTable, tt.table)

	*tt = Table{table: newTable, size: size}
}

// Store inserts entry into the table, replacing the existing occupant
// of its slot only if entry is of equal or higher quality.
func (tt *Table) Store(entry Entry) {
	target := tt.fetch(entry.Hash)
	entry.epoch = tt.epoch

	if entry.quality() >= target.quality() {
		*target = entry
	}
}

// Probe fetches the entry for hash, and whether it is usable: present
// and not a stale hash-index collision.
func (tt *Table) Probe(hash zobrist.Key) (Entry, bool) {
	entry := *tt.fetch(hash)
	return entry, entry.Type != NoEntry && entry.Hash == hash
}

func (tt *Table) fetch(hash zobrist.Key) *Entry {
	return &tt.table[tt.indexOf(hash)]
}

// indexOf maps a hash to a table slot using a fast multiply-high
// reduction instead of an expensive modulo.
// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func (tt *Table) indexOf(hash zobrist.Key) uint {
	index, _ := bits.Mul(uint(hash), uint(tt.size))
	return index
}

// Entry is a single transposition table slot.
type Entry struct {
	Hash zobrist.Key
	Move move.Move

	Value Eval
	Type  EntryType

	Depth uint8
	epoch uint8
}

// quality ranks an entry for replacement purposes: deeper and more
// recent (higher epoch) searches are worth more to keep.
func (entry *Entry) quality() uint8 {
	return entry.epoch + entry.Depth/3
}

// EntryType classifies the kind of bound an Entry's Value represents.
type EntryType uint8

const (
	NoEntry EntryType = iota

	ExactEntry
	LowerBound
	UpperBound
)

// EvalFrom converts score, expressed as plys-to-mate-from-root, into
// an Entry's plys-to-mate-from-here representation so it stays valid
// when reused from a different ply.
func EvalFrom(score eval.Eval, plys int) Eval {
	switch {
	case score > eval.WinInMaxPly:
		score += eval.Eval(plys)
	case score < eval.LoseInMaxPly:
		score -= eval.Eval(plys)
	}

	return Eval(score)
}

// Eval is a transposition-table-local evaluation: for mate scores it
// stores plys-to-mate-from-this-entry rather than plys-to-mate-from
// the search root, so the conversion back to eval.Eval depends on the
// ply it is being reused at.
type Eval eval.Eval

// Eval converts a stored Eval back to an eval.Eval usable at plys.
func (e Eval) Eval(plys int) eval.Eval {
	score := eval.Eval(e)

	switch {
	case score > eval.WinInMaxPly:
		score -= eval.Eval(plys)
	case score < eval.LoseInMaxPly:
		score += eval.Eval(plys)
	}

	return score
}
