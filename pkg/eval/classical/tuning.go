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
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// TermsN is the number of independently tunable evaluation terms: one
// material value and one piece-square entry per piece type and square.
// Mobility, king safety, and the endgame-technique terms are left
// fixed, since they aren't linear in a single coefficient per position
// the way material and piece-square placement are.
const TermsN = int(piece.TypeN) + int(piece.TypeN)*square.N

// Coefficient is the net number of times a tunable term appears in a
// position's evaluation: the count of White pieces contributing to it
// minus the count of Black pieces, mirrored the same way pieceSquare
// mirrors Black's table onto White's.
type Coefficient struct {
	Index int
	Count int
}

// Coefficients returns the non-zero coefficients of every tunable term
// in b, for recomputing the position's static evaluation cheaply as
// Param is perturbed during tuning.
func Coefficients(b *board.Board) []Coefficient {
	counts := make([]int, TermsN)

	for t := piece.Pawn; t <= piece.King; t++ {
		counts[materialIndex(t)] += (b.PieceBBs[t] & b.ColorBBs[piece.White]).Count()
		counts[materialIndex(t)] -= (b.PieceBBs[t] & b.ColorBBs[piece.Black]).Count()

		for bb := b.PieceBBs[t] & b.ColorBBs[piece.White]; bb != bitboard.Empty; {
			counts[psqtIndex(t, bb.Pop())]++
		}
		for bb := b.PieceBBs[t] & b.ColorBBs[piece.Black]; bb != bitboard.Empty; {
			counts[psqtIndex(t, bb.Pop()^56)]--
		}
	}

	coefficients := make([]Coefficient, 0, TermsN)
	for i, count := range counts {
		if count != 0 {
			coefficients = append(coefficients, Coefficient{Index: i, Count: count})
		}
	}
	return coefficients
}

func materialIndex(t piece.Type) int {
	return int(t)
}

func psqtIndex(t piece.Type, s square.Square) int {
	return int(piece.TypeN) + int(t)*square.N + int(s)
}

// Param returns the current middle-game and end-game value of tunable
// term i, in the same index space Coefficients reports.
func Param(i int) (mg, eg eval.Eval) {
	if i < int(piece.TypeN) {
		m := material[piece.Type(i)]
		return m.MG(), m.EG()
	}

	i -= int(piece.TypeN)
	t := piece.Type(i / square.N)
	idx := i % square.N
	return eval.Eval(psqtMG[t][idx]), eval.Eval(psqtEG[t][idx])
}

// SetParam overwrites the middle-game and end-game value of tunable
// term i.
func SetParam(i int, mg, eg eval.Eval) {
	if i < int(piece.TypeN) {
		material[piece.Type(i)] = S(mg, eg)
		return
	}

	i -= int(piece.TypeN)
	t := piece.Type(i / square.N)
	idx := i % square.N
	psqtMG[t][idx] = int(mg)
	psqtEG[t][idx] = int(eg)
}

// Phase returns b's middle-game weight for interpolating between
// tapered terms' middle-game and end-game values: 1 at the starting
// material count of phase-bearing pieces, 0 once they're all gone.
func Phase(b *board.Board) float64 {
	var phase eval.Eval
	for t := piece.Pawn; t <= piece.King; t++ {
		phase += eval.Eval((b.PieceBBs[t] & (b.ColorBBs[piece.White] | b.ColorBBs[piece.Black])).Count()) * phaseInc[t]
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return float64(phase) / float64(MaxPhase)
}
