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

// Package castling provides types and definitions useful when dealing
// with castling rights and castling moves in a board representation.
package castling

import "github.com/chesswise/mess/pkg/square"

// Rights represents the current castling rights of a position.
// [Black Queen-side][Black King-side][White Queen-side][White King-side]
type Rights byte

// NewRights creates a Rights from a FEN castling-availability field,
// checking for each identifier in the canonical KQkq order.
//
//	White King-side:  K
//	White Queen-side: Q
//	Black King-side:  k
//	Black Queen-side: q
//
// The string "-" represents NoCasl.
func NewRights(r string) Rights {
	var rights Rights

	if r == "-" {
		return NoCasl
	}

	if r != "" && r[0] == 'K' {
		r = r[1:]
		rights |= WhiteK
	}

	if r != "" && r[0] == 'Q' {
		r = r[1:]
		rights |= WhiteQ
	}

	if r != "" && r[0] == 'k' {
		r = r[1:]
		rights |= BlackK
	}

	if r != "" && r[0] == 'q' {
		rights |= BlackQ
	}

	return rights
}

// constants representing the individual and combined castling rights.
const (
	WhiteK Rights = 1 << 0 // white king-side
	WhiteQ Rights = 1 << 1 // white queen-side
	BlackK Rights = 1 << 2 // black king-side
	BlackQ Rights = 1 << 3 // black queen-side

	NoCasl Rights = 0

	WhiteA Rights = WhiteK | WhiteQ
	BlackA Rights = BlackK | BlackQ

	Kingside  Rights = WhiteK | BlackK
	Queenside Rights = WhiteQ | BlackQ

	All Rights = WhiteA | BlackA
)

// N is the number of possible unique castling-rights combinations.
const N = 1 << 4

// RightUpdates maps every chessboard square to the rights that must be
// cleared if a piece moves from or to that square: moving the a1 rook or
// capturing on a1 ends White's queen-side rights, moving the king on e1
// ends both of White's rights, and so on. Squares not listed here never
// affect castling rights.
var RightUpdates = [square.N]Rights{
	square.A8: BlackQ, square.E8: BlackA, square.H8: BlackK,
	square.A1: WhiteQ, square.E1: WhiteA, square.H1: WhiteK,
}

// String converts the given Rights to its FEN string representation.
func (c Rights) String() string {
	var str string

	if c&WhiteK != 0 {
		str += "K"
	}

	if c&WhiteQ != 0 {
		str += "Q"
	}

	if c&BlackK != 0 {
		str += "k"
	}

	if c&BlackQ != 0 {
		str += "q"
	}

	if str == "" {
		str = "-"
	}

	return str
}
