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
	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// mateWithMajorPieceBonus replaces the ordinary evaluation with a
// technique score whenever one side has a lone king and the other has
// nothing but a king plus a single queen or rook: push the defending
// king to the edge and walk the attacking king closer to it, the
// standard technique for converting this kind of material edge into
// mate.
func mateWithMajorPieceBonus(b *board.Board) (Score, bool) {
	attacker, ok := loneKingVsMajorPiece(b)
	if !ok {
		return 0, false
	}

	defender := attacker.Other()

	attackerKing := (b.PieceBBs[piece.King] & b.ColorBBs[attacker]).FirstOne()
	defenderKing := (b.PieceBBs[piece.King] & b.ColorBBs[defender]).FirstOne()

	cornerDist := centerDistance(defenderKing)
	kingDist := squareDistance(attackerKing, defenderKing)

	// favor driving the defending king away from the center and the
	// attacking king towards the defending one.
	score := Score(16*cornerDist + (14 - kingDist))
	if attacker == piece.Black {
		score = -score
	}
	return score, true
}

// loneKingVsMajorPiece reports the color with the extra material when
// the position is exactly a king, and a king plus a single rook or
// queen and no other non-king material.
func loneKingVsMajorPiece(b *board.Board) (piece.Color, bool) {
	for _, attacker := range [2]piece.Color{piece.White, piece.Black} {
		defender := attacker.Other()

		ownPawns := b.PieceBBs[piece.Pawn] & b.ColorBBs[attacker]
		ownKnights := b.PieceBBs[piece.Knight] & b.ColorBBs[attacker]
		ownBishops := b.PieceBBs[piece.Bishop] & b.ColorBBs[attacker]
		ownRooks := b.PieceBBs[piece.Rook] & b.ColorBBs[attacker]
		ownQueens := b.PieceBBs[piece.Queen] & b.ColorBBs[attacker]

		majors := ownRooks.Count() + ownQueens.Count()
		if majors != 1 {
			continue
		}
		if ownPawns.Count() != 0 || ownKnights.Count() != 0 || ownBishops.Count() != 0 {
			continue
		}

		opponentHasNothing := (b.ColorBBs[defender] &^ b.PieceBBs[piece.King]) == 0
		if !opponentHasNothing {
			continue
		}

		return attacker, true
	}

	return piece.White, false
}

// centerDistance measures how far s is from the center of the board,
// the Chebyshev distance from the nearest of the four center squares.
func centerDistance(s square.Square) int {
	file := int(s.File())
	rank := int(s.Rank())

	fileDist := util.Min(util.Abs(file-3), util.Abs(file-4))
	rankDist := util.Min(util.Abs(rank-3), util.Abs(rank-4))
	return util.Max(fileDist, rankDist)
}

// squareDistance returns the Chebyshev distance between two squares.
func squareDistance(a, b square.Square) int {
	fileDist := util.Abs(int(a.File()) - int(b.File()))
	rankDist := util.Abs(int(a.Rank()) - int(b.Rank()))
	return util.Max(fileDist, rankDist)
}
