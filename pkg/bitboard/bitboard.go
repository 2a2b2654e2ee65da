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

// Package bitboard implements a 64-bit bitboard representation of a
// chessboard, and the bit-twiddling operations used to manipulate it.
package bitboard

import (
	"math/bits"

	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// Board is a 64-bit bitboard, one bit per square, a8 in the LSB up
// to h1 in the MSB to match square.Square's a8=0..h1=63 numbering.
type Board uint64

// String returns an 8x8 grid representation of the given Board.
func (b Board) String() string {
	var str string
	for s := square.A8; s <= square.H1; s++ {
		if b.IsSet(s) {
			str += "1"
		} else {
			str += "0"
		}

		if s.File() == square.FileH {
			str += "\n"
		} else {
			str += " "
		}
	}

	return str
}

// Up shifts the given Board one rank up, relative to the given color.
func (b Board) Up(c piece.Color) Board {
	switch c {
	case piece.White:
		return b.North()
	case piece.Black:
		return b.South()
	default:
		panic("bitboard: bad color")
	}
}

// Down shifts the given Board one rank down, relative to the given color.
func (b Board) Down(c piece.Color) Board {
	switch c {
	case piece.White:
		return b.South()
	case piece.Black:
		return b.North()
	default:
		panic("bitboard: bad color")
	}
}

// North shifts the given Board towards rank 8.
func (b Board) North() Board {
	return b >> 8
}

// South shifts the given Board towards rank 1.
func (b Board) South() Board {
	return b << 8
}

// East shifts the given Board towards the h-file.
func (b Board) East() Board {
	return (b &^ FileH) << 1
}

// West shifts the given Board towards the a-file.
func (b Board) West() Board {
	return (b &^ FileA) >> 1
}

// Pop returns the least significant set square of the given Board and
// clears it.
func (b *Board) Pop() square.Square {
	s := b.FirstOne()
	*b &= *b - 1
	return s
}

// Count returns the number of set squares in the given Board.
func (b Board) Count() int {
	return bits.OnesCount64(uint64(b))
}

// FirstOne returns the least significant set square of the given Board.
func (b Board) FirstOne() square.Square {
	return square.Square(bits.TrailingZeros64(uint64(b)))
}

// IsSet reports whether the given square is set in the bitboard.
func (b Board) IsSet(s square.Square) bool {
	return b&Squares[s] != 0
}

// Set sets the given square in the bitboard. Setting square.None is a
// no-op, matching the board package's habit of using None as a sentinel.
func (b *Board) Set(s square.Square) {
	if s == square.None {
		return
	}

	*b |= Squares[s]
}

// Unset clears the given square in the bitboard.
func (b *Board) Unset(s square.Square) {
	if s == square.None {
		return
	}

	*b &^= Squares[s]
}
