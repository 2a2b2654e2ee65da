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

// Package attacks precomputes and serves attack bitboards for every
// piece type and square. Non-sliding piece attacks (king, knight, pawn)
// are simple lookup tables computed once at init. Sliding piece attacks
// (bishop, rook, queen) depend on board occupancy and are served from
// magic bitboard hash tables, also built at init time.
// https://www.chessprogramming.org/Looking_For_Magics
package attacks

import (
	"github.com/chesswise/mess/pkg/bitboard"
	"github.com/chesswise/mess/pkg/castling"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// lookup tables for the precalculated attack boards of non-sliding pieces.
var (
	King   [square.N]bitboard.Board
	Knight [square.N]bitboard.Board
	Pawn   [piece.ColorN][square.N]bitboard.Board
)

func init() {
	for s := square.A8; s <= square.H1; s++ {
		King[s] = kingAttacksFrom(s)
		Knight[s] = knightAttacksFrom(s)
		Pawn[piece.White][s] = pawnAttacksFrom(s, piece.White)
		Pawn[piece.Black][s] = pawnAttacksFrom(s, piece.Black)
	}
}

// board is a small helper for building attack bitboards one offset at a
// time, discarding any offset that would wrap off the edge of the board.
type board struct {
	origin square.Square
	board  bitboard.Board
}

// addAttack adds the square origin+(fileOffset, rankOffset) to the
// attack bitboard being built, if that square is on the board.
func (b *board) addAttack(fileOffset square.File, rankOffset square.Rank) {
	attackFile := b.origin.File() + fileOffset
	attackRank := b.origin.Rank() + rankOffset

	switch {
	case attackFile < square.FileA, attackFile > square.FileH,
		attackRank < square.Rank8, attackRank > square.Rank1:
		return
	}

	b.board.Set(square.New(attackFile, attackRank))
}

func kingAttacksFrom(s square.Square) bitboard.Board {
	b := board{origin: s}

	b.addAttack(1, 0)
	b.addAttack(1, 1)
	b.addAttack(0, 1)
	b.addAttack(-1, 0)
	b.addAttack(0, -1)
	b.addAttack(1, -1)
	b.addAttack(-1, 1)
	b.addAttack(-1, -1)

	return b.board
}

func knightAttacksFrom(s square.Square) bitboard.Board {
	b := board{origin: s}

	b.addAttack(2, 1)
	b.addAttack(1, 2)
	b.addAttack(1, -2)
	b.addAttack(2, -1)
	b.addAttack(-1, 2)
	b.addAttack(-2, 1)
	b.addAttack(-2, -1)
	b.addAttack(-1, -2)

	return b.board
}

func pawnAttacksFrom(s square.Square, c piece.Color) bitboard.Board {
	up := bitboard.Squares[s].Up(c)
	return up.East() | up.West()
}

// castleMask maps a king's castling destination square to the squares
// that must be empty for that castle to be legal.
var castleMask = map[square.Square]bitboard.Board{
	square.G1: bitboard.F1G1,
	square.C1: bitboard.B1C1D1,
	square.G8: bitboard.F8G8,
	square.C8: bitboard.B8C8D8,
}

var castleRight = map[square.Square]castling.Rights{
	square.G1: castling.WhiteK,
	square.C1: castling.WhiteQ,
	square.G8: castling.BlackK,
	square.C8: castling.BlackQ,
}

// KingAll returns the king's attack set including pseudo-legal castling
// destinations, given the current occupancy and castling rights.
func KingAll(s square.Square, occupied bitboard.Board, cr castling.Rights) bitboard.Board {
	attacks := King[s]

	for dest, mask := range castleMask {
		if cr&castleRight[dest] != 0 && occupied&mask == 0 {
			attacks.Set(dest)
		}
	}

	return attacks
}
