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

// Package piece implements representations of all the chess pieces and
// colors, and related utility functions.
//
// The King, Queen, Rook, Knight, Bishop, and Pawn are represented by the
// K, Q, R, N, B, and P strings respectively, with uppercase for white and
// lowercase for black. The strings w and b represent the White and Black
// colors respectively.
package piece

// New creates a new Piece with the given type and color.
func New(t Type, c Color) Piece {
	return Piece(c<<colorOffset) | Piece(t)
}

// NewFromString creates a Piece from the given piece identifier.
func NewFromString(id string) Piece {
	switch id {
	case "K":
		return WhiteKing
	case "Q":
		return WhiteQueen
	case "R":
		return WhiteRook
	case "N":
		return WhiteKnight
	case "B":
		return WhiteBishop
	case "P":
		return WhitePawn
	case "k":
		return BlackKing
	case "q":
		return BlackQueen
	case "r":
		return BlackRook
	case "n":
		return BlackKnight
	case "b":
		return BlackBishop
	case "p":
		return BlackPawn
	default:
		panic("piece: invalid piece identifier " + id)
	}
}

// Piece represents a colored chess piece.
// Format: MSB [color 1 bit][type 3 bits] LSB
type Piece uint8

// constants representing colored chess pieces.
const (
	NoPiece Piece = 0

	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Pawn) + 1
	WhiteBishop Piece = Piece(Pawn) + 2
	WhiteRook   Piece = Piece(Pawn) + 3
	WhiteQueen  Piece = Piece(Pawn) + 4
	WhiteKing   Piece = Piece(Pawn) + 5

	BlackPawn   Piece = Piece(Pawn) + 8
	BlackKnight Piece = Piece(Pawn) + 9
	BlackBishop Piece = Piece(Pawn) + 10
	BlackRook   Piece = Piece(Pawn) + 11
	BlackQueen  Piece = Piece(Pawn) + 12
	BlackKing   Piece = Piece(Pawn) + 13
)

// N is the number of piece-color combinations representable in a Piece.
// Ideally this would be 12 (6 types * 2 colors), but separating the color
// bit from the type bits for cheap access bloats it to 16.
const N = 16

const (
	colorOffset = 3
	typeMask    = (1 << colorOffset) - 1
)

// String converts a Piece into its string representation, using the
// standard algebraic letters: upper case for white, lower case for black.
func (p Piece) String() string {
	const pieceToStr = " PNBRQK  pnbrqk"
	return string(pieceToStr[p])
}

// Type returns the piece type of the given Piece.
func (p Piece) Type() Type {
	if p == NoPiece {
		return NoType
	}

	return Type(p & typeMask)
}

// Color returns the piece color of the given Piece.
func (p Piece) Color() Color {
	if p == NoPiece {
		panic("piece: NoPiece has no color")
	}

	return Color(p >> colorOffset)
}

// Is reports whether the given Piece has the given type.
func (p Piece) Is(target Type) bool {
	return p.Type() == target
}

// IsColor reports whether the given Piece has the given color.
func (p Piece) IsColor(target Color) bool {
	return p != NoPiece && p.Color() == target
}

// Type represents the type/kind of a chess piece.
type Type uint8

// constants representing chess piece types.
const (
	NoType Type = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// TypeN is the number of piece types, including NoType.
const TypeN = 7

// Promotions lists the piece types a pawn may promote to, queen first
// since it is almost always the strongest choice for move ordering.
var Promotions = [4]Type{Queen, Rook, Bishop, Knight}

// String converts a Type into its lower-case string representation.
func (t Type) String() string {
	const typeToStr = " pnbrqk"
	return string(typeToStr[t])
}
