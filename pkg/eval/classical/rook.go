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
	"github.com/chesswise/mess/pkg/attacks"
	"github.com/chesswise/mess/pkg/bitboard"
	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

var (
	// rookOpenFileBonus applies to a rook on a file with no pawns at all.
	rookOpenFileBonus = S(20, 12)
	// rookSemiOpenFileBonus applies to a rook on a file with enemy pawns
	// but none of its own.
	rookSemiOpenFileBonus = S(10, 6)
	// connectedRooksBonus rewards a pair of rooks defending each other
	// along a shared open rank or file.
	connectedRooksBonus = S(6, 10)
)

// rookFileBonus returns the open- or half-open-file bonus for a rook of
// color c standing on s.
func rookFileBonus(b *board.Board, s square.Square, c piece.Color) Score {
	file := bitboard.Files[s.File()]
	pawns := b.PieceBBs[piece.Pawn]

	switch {
	case pawns&file == bitboard.Empty:
		return rookOpenFileBonus
	case pawns&b.ColorBBs[c]&file == bitboard.Empty:
		return rookSemiOpenFileBonus
	default:
		return 0
	}
}

// connectedRooks returns connectedRooksBonus if c's two rooks defend
// each other along a clear rank or file.
func connectedRooks(b *board.Board, c piece.Color, occupied bitboard.Board) Score {
	rooks := b.PieceBBs[piece.Rook] & b.ColorBBs[c]
	if rooks.Count() != 2 {
		return 0
	}

	first := rooks.Pop()
	second := rooks.FirstOne()

	if attacks.Rook(first, occupied).IsSet(second) {
		return connectedRooksBonus
	}
	return 0
}
