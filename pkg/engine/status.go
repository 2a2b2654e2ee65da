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

package engine

import (
	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/cache"
	"github.com/chesswise/mess/pkg/piece"
)

// GameStatus classifies how a position stands with respect to the
// rules that end a game, as opposed to board.Board.IsDraw, which only
// needs to know whether a position scores as a draw during search and
// so doesn't distinguish a stalemate from a repetition or care which
// side is mated.
type GameStatus int

// every way a game can stand.
const (
	Ongoing GameStatus = iota
	WhiteWon
	BlackWon
	Stalemate
	ThreeFoldRepetition
	Draw
)

// String converts a GameStatus into its human-readable name.
func (s GameStatus) String() string {
	switch s {
	case WhiteWon:
		return "white won"
	case BlackWon:
		return "black won"
	case Stalemate:
		return "stalemate"
	case ThreeFoldRepetition:
		return "threefold repetition"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// IsOver reports whether s ends the game, as opposed to Ongoing.
func (s GameStatus) IsOver() bool {
	return s != Ongoing
}

// Status reports how the current position stands, using the same
// move-list cache a search over the position would, so polling this
// between moves of a game the Engine is also searching never
// regenerates a position's moves twice.
func (e *Engine) Status() GameStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return IsGameOver(e.board, e.cache)
}

// IsGameOver classifies b's position as Ongoing or one of the ways a
// game ends, checked in order: an empty move list (checkmate, naming
// the side to move's opponent as the winner, or stalemate if the side
// to move isn't in check), the fifty-move rule, the insufficient-
// material predicate, and threefold repetition.
func IsGameOver(b *board.Board, c *cache.Cache) GameStatus {
	moves, ok := c.MoveList(b.Hash)
	if !ok {
		moves = b.GenerateMoves()
		c.SetMoveList(b.Hash, moves)
	}

	if len(moves) == 0 {
		if !b.IsInCheck(b.SideToMove) {
			return Stalemate
		}
		if b.SideToMove == piece.White {
			return BlackWon
		}
		return WhiteWon
	}

	switch {
	case b.DrawClock >= 100:
		return Draw
	case isInsufficientMaterial(b):
		return Draw
	case isThreeFoldRepetition(b):
		return ThreeFoldRepetition
	default:
		return Ongoing
	}
}

// isThreeFoldRepetition reports whether the current position (counting
// the current occurrence itself) has occurred three or more times,
// probing history back only to the last irreversible move, the same
// window board.Board.IsRepetition draws from for a single repeat.
func isThreeFoldRepetition(b *board.Board) bool {
	depth := util.Max(0, b.Plys-b.DrawClock)

	count := 1
	for i := b.Plys - 2; i >= depth; i -= 2 {
		if b.History[i].Hash == b.Hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}

	return false
}

// isInsufficientMaterial reports whether neither side has enough
// material left to force checkmate: no pawns, rooks, or queens on the
// board, and at most one minor piece (bishop or knight) between both
// sides.
func isInsufficientMaterial(b *board.Board) bool {
	heavy := b.PieceBBs[piece.Pawn] | b.PieceBBs[piece.Rook] | b.PieceBBs[piece.Queen]
	if heavy != 0 {
		return false
	}

	minors := b.PieceBBs[piece.Bishop] | b.PieceBBs[piece.Knight]
	return minors.Count() <= 1
}
