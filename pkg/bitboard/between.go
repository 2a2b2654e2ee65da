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

package bitboard

import "github.com/chesswise/mess/pkg/square"

// Between maps a pair of squares lying on a common rank, file, or
// diagonal to the bitboard of squares strictly between them (excluding
// both endpoints). Pairs with no common line map to Empty.
// https://www.chessprogramming.org/Square_Attacked_By#LegalityTest
var Between [square.N][square.N]Board

func init() {
	for from := square.A8; from <= square.H1; from++ {
		for to := square.A8; to <= square.H1; to++ {
			var mask Board

			switch {
			case from == to:
				continue
			case from.Rank() == to.Rank():
				mask = Ranks[from.Rank()]
			case from.File() == to.File():
				mask = Files[from.File()]
			case from.Diagonal() == to.Diagonal():
				mask = Diagonals[from.Diagonal()]
			case from.AntiDiagonal() == to.AntiDiagonal():
				mask = AntiDiagonals[from.AntiDiagonal()]
			default:
				continue
			}

			atkFromTo := Hyperbola(from, Squares[to], mask)
			atkToFrom := Hyperbola(to, Squares[from], mask)
			Between[from][to] = atkFromTo & atkToFrom
		}
	}
}
