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

// Package board implements the main chessboard representation used by
// the engine: a dual bitboard/mailbox position, move generation, and
// incremental make/unmake move updates.
package board

import (
	"fmt"

	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/attacks"
	"github.com/chesswise/mess/pkg/bitboard"
	"github.com/chesswise/mess/pkg/castling"
	"github.com/chesswise/mess/pkg/mailbox"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
	"github.com/chesswise/mess/pkg/zobrist"
)

// Board represents the state of a chessboard at a given position. It
// holds two representations of the position: an 8x8 mailbox used for
// cheap piece-at-square lookup, and a set of bitboards used for the
// bitwise calculations that drive move generation.
//
// Various utility bitboards used by move generation (check-mask,
// pin-masks, seen squares) are pre-calculated once per position and
// cached on Board instead of being recomputed on every query.
type Board struct {
	// zobrist hash of the current position.
	Hash zobrist.Key

	// 8x8 mailbox board representation.
	Position mailbox.Board

	// bitboard board representation.
	PieceBBs [piece.TypeN]bitboard.Board
	ColorBBs [piece.ColorN]bitboard.Board

	SideToMove      piece.Color
	EnPassantTarget square.Square
	CastlingRights  castling.Rights

	Plys      int
	FullMoves int
	DrawClock int

	// History records irreversible state needed by UnmakeMove, and the
	// hash at every past ply for repetition detection, indexed by Plys.
	History [move.MaxPly]BoardState

	// Friends, Enemies, and Occupied cache ColorBBs[us], ColorBBs[them]
	// and their union; InitBitboards (re)computes them for the side to
	// move whenever a position is loaded or a move is made or unmade.
	Friends  bitboard.Board
	Enemies  bitboard.Board
	Occupied bitboard.Board

	// Kings caches each color's king square, since it is looked up
	// constantly during check and pin detection.
	Kings [piece.ColorN]square.Square

	// Target is the set of squares a friendly piece may legally move
	// to, ignoring pins: ^Friends & CheckMask.
	Target bitboard.Board

	CheckN    int
	CheckMask bitboard.Board

	PinnedD  bitboard.Board
	PinnedHV bitboard.Board

	SeenByEnemy bitboard.Board
}

// BoardState holds the irreversible information needed to undo a single
// ply: whatever MakeMove cannot recompute by simply moving the piece
// back, plus the hash for repetition detection.
type BoardState struct {
	Move          move.Move
	CapturedPiece piece.Piece

	CastlingRights  castling.Rights
	EnPassantTarget square.Square
	DrawClock       int

	Hash zobrist.Key
}

// String converts a Board into a human-readable string.
func (b *Board) String() string {
	return fmt.Sprintf("%s\nFen: %s\nKey: %X\n", b.Position, b.FEN(), b.Hash)
}

// IsDraw reports whether the position is a draw by the fifty-move rule
// or by repetition. Threefold repetition is not distinguished from any
// other repetition, since treating every repeat as drawn is simpler and
// sufficient for search purposes.
func (b *Board) IsDraw() bool {
	return b.DrawClock >= 100 || b.IsRepetition()
}

// IsRepetition reports whether the current position has occurred before
// in the game, probing history back only to the last irreversible move.
func (b *Board) IsRepetition() bool {
	depth := util.Max(0, b.Plys-b.DrawClock)

	for i := b.Plys - 2; i >= depth; i -= 2 {
		if b.History[i].Hash == b.Hash {
			return true
		}
	}

	return false
}

// ClearSquare removes the piece occupying s and updates the dependent
// position information (bitboards, mailbox, hash) accordingly.
func (b *Board) ClearSquare(s square.Square) {
	p := b.Position[s]

	b.ColorBBs[p.Color()].Unset(s)
	b.PieceBBs[p.Type()].Unset(s)
	b.Position[s] = piece.NoPiece
	b.Hash ^= zobrist.PieceSquare[p][s]
}

// FillSquare places p on s and updates the dependent position
// information. Callers must ensure s is currently empty.
func (b *Board) FillSquare(s square.Square, p piece.Piece) {
	c := p.Color()
	t := p.Type()

	b.ColorBBs[c].Set(s)

	if t == piece.King {
		b.Kings[c] = s
	}

	b.PieceBBs[t].Set(s)
	b.Position[s] = p
	b.Hash ^= zobrist.PieceSquare[p][s]
}

// IsInCheck reports whether the side c is currently in check.
func (b *Board) IsInCheck(c piece.Color) bool {
	return b.IsAttacked(b.Kings[c], c.Other())
}

// IsAttacked reports whether s is attacked by a piece of color them.
func (b *Board) IsAttacked(s square.Square, them piece.Color) bool {
	if attacks.Pawn[them.Other()][s]&b.Pawns(them) != bitboard.Empty {
		return true
	}

	if attacks.Knight[s]&b.Knights(them) != bitboard.Empty {
		return true
	}

	if attacks.King[s]&b.King(them) != bitboard.Empty {
		return true
	}

	queens := b.Queens(them)

	if attacks.Bishop(s, b.Occupied)&(b.Bishops(them)|queens) != bitboard.Empty {
		return true
	}

	return attacks.Rook(s, b.Occupied)&(b.Rooks(them)|queens) != bitboard.Empty
}

// Pawns returns the bitboard of all pawns of color c.
func (b *Board) Pawns(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Pawn] & b.ColorBBs[c]
}

// Knights returns the bitboard of all knights of color c.
func (b *Board) Knights(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Knight] & b.ColorBBs[c]
}

// Bishops returns the bitboard of all bishops of color c.
func (b *Board) Bishops(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Bishop] & b.ColorBBs[c]
}

// Rooks returns the bitboard of all rooks of color c.
func (b *Board) Rooks(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Rook] & b.ColorBBs[c]
}

// Queens returns the bitboard of all queens of color c.
func (b *Board) Queens(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.Queen] & b.ColorBBs[c]
}

// King returns a bitboard containing only the king of color c.
func (b *Board) King(c piece.Color) bitboard.Board {
	return b.PieceBBs[piece.King] & b.ColorBBs[c]
}

// InitBitboards (re)computes every utility bitboard used by move
// generation from the main position state. New calls it after loading
// a FEN, and MakeMove and UnmakeMove call it again in full after every
// move; GenerateMoves reads the results without refreshing them.
func (b *Board) InitBitboards() {
	b.Friends = b.ColorBBs[b.SideToMove]
	b.Enemies = b.ColorBBs[b.SideToMove.Other()]
	b.Occupied = b.Friends | b.Enemies
	b.CalculateCheckmask()
	b.CalculatePinmask()
	b.SeenByEnemy = b.SeenSquares(b.SideToMove.Other())
	b.Target = ^b.Friends & b.CheckMask
}

// CalculateCheckmask computes CheckN, the number of pieces checking the
// side to move's king (0, 1, or 2), and CheckMask, the set of squares a
// friendly piece may move to in order to block every check: the
// checking piece's square, plus, for a sliding checker, the squares
// between it and the king. CheckMask is Universe when not in check. On
// double check its contents do not matter, since no single move can
// block two checks and GenerateMoves then generates king moves only.
func (b *Board) CalculateCheckmask() {
	us := b.SideToMove
	them := us.Other()

	b.CheckN = 0
	b.CheckMask = bitboard.Empty

	kingSq := b.Kings[us]

	pawns := b.Pawns(them) & attacks.Pawn[us][kingSq]
	knights := b.Knights(them) & attacks.Knight[kingSq]
	bishops := (b.Bishops(them) | b.Queens(them)) & attacks.Bishop(kingSq, b.Occupied)
	rooks := (b.Rooks(them) | b.Queens(them)) & attacks.Rook(kingSq, b.Occupied)

	// a pawn and a knight can never check the king simultaneously since
	// neither is a sliding piece, so discovered double checks between
	// them are impossible.
	switch {
	case pawns != bitboard.Empty:
		b.CheckMask |= pawns
		b.CheckN++

	case knights != bitboard.Empty:
		b.CheckMask |= knights
		b.CheckN++
	}

	if bishops != bitboard.Empty {
		bishopSq := bishops.FirstOne()
		b.CheckMask |= bitboard.Between[kingSq][bishopSq] | bitboard.Squares[bishopSq]
		b.CheckN++
	}

	if b.CheckN < 2 && rooks != bitboard.Empty {
		if b.CheckN == 0 && rooks.Count() > 1 {
			// double check; leave the check-mask empty
			b.CheckN = 2
		} else {
			rookSq := rooks.FirstOne()
			b.CheckMask |= bitboard.Between[kingSq][rookSq] | bitboard.Squares[rookSq]
			b.CheckN++
		}
	}

	if b.CheckN == 0 {
		b.CheckMask = bitboard.Universe
	}
}

// CalculatePinmask computes the horizontal/vertical and diagonal
// pin-masks: the ray (inclusive of the pinning piece) along which a
// pinned friendly piece may still move without exposing its king.
func (b *Board) CalculatePinmask() {
	us := b.SideToMove
	them := us.Other()

	kingSq := b.Kings[us]

	friends := b.ColorBBs[us]
	enemies := b.ColorBBs[them]

	b.PinnedD = bitboard.Empty
	b.PinnedHV = bitboard.Empty

	// treat the king as a rook: any enemy rook/queen its "attacks" would
	// reach, seeing through friendly pieces but stopped by enemy ones, is
	// a potential pinner.
	for rooks := (b.Rooks(them) | b.Queens(them)) & attacks.Rook(kingSq, enemies); rooks != bitboard.Empty; {
		rook := rooks.Pop()
		possiblePin := bitboard.Between[kingSq][rook] | bitboard.Squares[rook]

		if (possiblePin & friends).Count() == 1 {
			b.PinnedHV |= possiblePin
		}
	}

	// same trick, treating the king as a bishop.
	for bishops := (b.Bishops(them) | b.Queens(them)) & attacks.Bishop(kingSq, enemies); bishops != bitboard.Empty; {
		bishop := bishops.Pop()
		possiblePin := bitboard.Between[kingSq][bishop] | bitboard.Squares[bishop]

		if (possiblePin & friends).Count() == 1 {
			b.PinnedD |= possiblePin
		}
	}
}

// SeenSquares returns the set of squares attacked by pieces of color by.
// The enemy king is excluded as a sliding-ray blocker, since it must
// move off any square it currently occupies rather than block behind
// itself; this keeps king moves along the same ray illegal.
func (b *Board) SeenSquares(by piece.Color) bitboard.Board {
	pawns := b.Pawns(by)
	knights := b.Knights(by)
	bishops := b.Bishops(by)
	rooks := b.Rooks(by)
	queens := b.Queens(by)
	kingSq := b.Kings[by]

	blockers := b.Occupied &^ b.King(by.Other())

	seen := attacks.PawnsLeft(pawns, by) | attacks.PawnsRight(pawns, by)

	for knights != bitboard.Empty {
		from := knights.Pop()
		seen |= attacks.Knight[from]
	}

	for bishops != bitboard.Empty {
		from := bishops.Pop()
		seen |= attacks.Bishop(from, blockers)
	}

	for rooks != bitboard.Empty {
		from := rooks.Pop()
		seen |= attacks.Rook(from, blockers)
	}

	for queens != bitboard.Empty {
		from := queens.Pop()
		seen |= attacks.Bishop(from, blockers) | attacks.Rook(from, blockers)
	}

	seen |= attacks.King[kingSq]

	return seen
}
