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

// Package move declares the packed Move representation and related
// move-list and move-ordering utilities.
package move

import (
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// Move represents a chess move in a single packed word.
//
// Format: MSB -> LSB
//
//	[20 isCapture bool 20] \
//	[19 toPiece piece.Piece 16][15 fromPiece piece.Piece 12] \
//	[11 target square.Square 6][05 source square.Square 00]
//
// The packing is intentionally loose (a byte per field would do) since
// move ordering never depends on the bit layout itself, only on the
// accessors below.
type Move uint32

// MaxPly is the maximum number of plys a single search or game can reach.
const MaxPly = 1024

// Null is the "do nothing" move, printed as "0000" in coordinate
// notation. It is used as a sentinel for absent best moves.
const Null Move = 0

const (
	sourceWidth = 6
	targetWidth = 6
	fPieceWidth = 4
	tPieceWidth = 4
	tacticWidth = 1

	sourceOffset = 0
	targetOffset = sourceOffset + sourceWidth
	fPieceOffset = targetOffset + targetWidth
	tPieceOffset = fPieceOffset + fPieceWidth
	tacticOffset = tPieceOffset + tPieceWidth

	sourceMask = (1 << sourceWidth) - 1
	targetMask = (1 << targetWidth) - 1
	fPieceMask = (1 << fPieceWidth) - 1
	tPieceMask = (1 << tPieceWidth) - 1
	tacticMask = (1 << tacticWidth) - 1
)

// New creates a Move from a source square, target square, the piece
// being moved, and whether the move is a capture. The to-piece field
// starts out equal to the from-piece; SetPromotion overrides it.
func New(source, target square.Square, fPiece piece.Piece, isCapture bool) Move {
	m := Move(source) << sourceOffset
	m |= Move(target) << targetOffset
	m |= Move(fPiece) << fPieceOffset
	m |= Move(fPiece) << tPieceOffset

	if isCapture {
		m |= tacticMask << tacticOffset
	}

	return m
}

// String converts a move to its long algebraic notation.
// Examples: "e2e4", "e1g1" (castling), "d7d8q" (promotion), "0000" (null).
func (m Move) String() string {
	if m == Null {
		return "0000"
	}

	s := m.Source().String() + m.Target().String()

	if m.IsPromotion() {
		s += m.ToPiece().Type().String()
	}

	return s
}

// SetPromotion sets the promoted-to piece of the move.
func (m Move) SetPromotion(p piece.Piece) Move {
	m &^= tPieceMask << tPieceOffset
	m |= Move(p) << tPieceOffset
	return m
}

// Source returns the move's source square.
func (m Move) Source() square.Square {
	return square.Square((m >> sourceOffset) & sourceMask)
}

// Target returns the move's target square.
func (m Move) Target() square.Square {
	return square.Square((m >> targetOffset) & targetMask)
}

// FromPiece returns the piece being moved.
func (m Move) FromPiece() piece.Piece {
	return piece.Piece((m >> fPieceOffset) & fPieceMask)
}

// ToPiece returns the piece occupying the target square after the move.
// For non-promotions this equals FromPiece; for promotions it is the
// promoted piece.
func (m Move) ToPiece() piece.Piece {
	return piece.Piece((m >> tPieceOffset) & tPieceMask)
}

// IsCapture reports whether the move captures a piece (including en
// passant; en passant moves are marked captures at construction time).
func (m Move) IsCapture() bool {
	return (m>>tacticOffset)&tacticMask != 0
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m != Null && m.FromPiece() != m.ToPiece()
}

// IsEnPassant reports whether the move is an en passant capture, given
// the en passant target square of the position it was generated in.
func (m Move) IsEnPassant(ep square.Square) bool {
	return ep != square.None && m.Target() == ep && m.FromPiece().Type() == piece.Pawn
}

// IsQuiet reports whether the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// IsReversible reports whether the move could in principle be undone by
// a later move of the same piece; captures and pawn moves cannot, and
// this drives the fifty-move / repetition-detection reset point.
func (m Move) IsReversible() bool {
	return !m.IsCapture() && m.FromPiece().Type() != piece.Pawn
}
