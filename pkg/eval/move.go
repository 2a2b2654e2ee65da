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

package eval

import (
	"math"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/piece"
)

// MoveFunc scores a single move for move ordering purposes.
type MoveFunc func(move.Move) MoveScore

// MoveScore is a move-ordering score; higher moves are tried first.
type MoveScore uint16

const (
	PVMove       MoveScore = math.MaxUint16
	KillerMove   MoveScore = 20000
	MvvLvaOffset MoveScore = 100
	DefaultMove  MoveScore = 0
)

// MvvLva maps [victim][attacker] to a most-valuable-victim,
// least-valuable-attacker ordering bonus: capturing a valuable piece
// with a cheap one sorts high, the reverse sorts low.
var MvvLva = [piece.TypeN][piece.TypeN]MoveScore{
	piece.Pawn:   {16, 15, 14, 13, 12, 11, 10},
	piece.Knight: {26, 25, 24, 23, 22, 21, 20},
	piece.Bishop: {36, 35, 34, 33, 32, 31, 30},
	piece.Rook:   {46, 45, 44, 43, 42, 41, 40},
	piece.Queen:  {56, 55, 54, 53, 52, 51, 50},
}

// OfMove builds a MoveFunc that favors the PV move, then captures by
// MVV-LVA, then a killer move, then everything else.
func OfMove(b *board.Board, pv, killer move.Move) MoveFunc {
	return func(m move.Move) MoveScore {
		switch {
		case m == pv:
			return PVMove

		case m.IsCapture(), m.IsPromotion():
			victim := b.Position[m.Target()].Type()
			attacker := m.FromPiece().Type()
			return MvvLvaOffset + MvvLva[victim][attacker]

		case m == killer:
			return KillerMove

		default:
			return DefaultMove
		}
	}
}
