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

package classical

import (
	"github.com/chesswise/mess/pkg/bitboard"
	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/piece"
)

// hangingPiecePenalty applies per non-pawn, non-king piece that is
// attacked and left completely undefended.
var hangingPiecePenalty = S(-12, -18)

// hangingPenalty returns the total penalty for c's pieces that the
// opponent attacks and c does not defend.
func hangingPenalty(b *board.Board, c piece.Color, attackedByUs, attackedByThem bitboard.Board) Score {
	minorsAndMajors := b.ColorBBs[c] &^ b.PieceBBs[piece.Pawn] &^ b.PieceBBs[piece.King]
	undefended := minorsAndMajors & attackedByThem &^ attackedByUs
	return Score(undefended.Count()) * hangingPiecePenalty
}
