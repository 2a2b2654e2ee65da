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

// Package book implements the engine's opening book: a position-keyed
// table of previously-analyzed moves consulted before search kicks in.
// Lines can be loaded from raw coordinate-move sequences, from PGN game
// text, or as a single reply to a given FEN.
package book

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/zobrist"
)

// Book maps a position's hash to the set of moves known to be good
// replies there, gathered from every line it was built from.
type Book struct {
	mu      sync.RWMutex
	entries map[zobrist.Key][]move.Move
}

// New creates an empty Book.
func New() *Book {
	return &Book{entries: make(map[zobrist.Key][]move.Move)}
}

// Probe returns a uniformly random move recorded for hash, if any.
func (bk *Book) Probe(hash zobrist.Key) (move.Move, bool) {
	bk.mu.RLock()
	defer bk.mu.RUnlock()

	moves, ok := bk.entries[hash]
	if !ok || len(moves) == 0 {
		return move.Null, false
	}

	return moves[rand.Intn(len(moves))], true
}

// Moves returns every move recorded for hash.
func (bk *Book) Moves(hash zobrist.Key) []move.Move {
	bk.mu.RLock()
	defer bk.mu.RUnlock()
	return append([]move.Move(nil), bk.entries[hash]...)
}

// Len reports the number of distinct positions in the book.
func (bk *Book) Len() int {
	bk.mu.RLock()
	defer bk.mu.RUnlock()
	return len(bk.entries)
}

func (bk *Book) record(hash zobrist.Key, m move.Move) {
	bk.mu.Lock()
	defer bk.mu.Unlock()

	for _, existing := range bk.entries[hash] {
		if existing == m {
			return
		}
	}
	bk.entries[hash] = append(bk.entries[hash], m)
}

// AddLine records every position reached by playing line from the
// starting position, where line is a sequence of coordinate-notation
// moves, e.g. "e2e4 c7c5 g1f3 d7d6".
func (bk *Book) AddLine(line string) error {
	return bk.addCoordinateLine(board.New(board.StartFEN), line)
}

// AddLineFromPosition is AddLine starting from fen instead of the
// starting position.
func (bk *Book) AddLineFromPosition(fen, line string) error {
	return bk.addCoordinateLine(board.New(fen), line)
}

func (bk *Book) addCoordinateLine(b *board.Board, line string) error {
	for _, token := range strings.Fields(line) {
		m, err := FindCoordinateMove(b, token)
		if err != nil {
			return err
		}

		bk.record(b.Hash, m)
		b.MakeMove(m)
	}

	return nil
}

// AddSingleMove records mv, in coordinate notation, as a reply to the
// position given by fen, without requiring the rest of a line.
func (bk *Book) AddSingleMove(fen, mv string) error {
	b := board.New(fen)
	m, err := FindCoordinateMove(b, mv)
	if err != nil {
		return err
	}

	bk.record(b.Hash, m)
	return nil
}

// FindCoordinateMove resolves a long-algebraic token ("e2e4", "e7e8q")
// against b's legal moves.
func FindCoordinateMove(b *board.Board, token string) (move.Move, error) {
	for _, m := range b.GenerateMoves() {
		if m.String() == token {
			return m, nil
		}
	}
	return move.Null, fmt.Errorf("book: %q is not a legal move in position %s", token, b.FEN())
}
