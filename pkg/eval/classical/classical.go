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

// Package classical implements a hand-written, tapered middle-game/
// end-game evaluation function: material, piece-square tables, mobility,
// pawn structure, rook quality, outposts, hanging pieces, and a small
// set of king-safety and endgame-technique terms. It satisfies
// eval.Evaluator, recomputing from scratch on every call, so it can
// stand in for the NNUE evaluator wherever the engine asks for one of
// those instead of an incrementally updated accumulator.
package classical

import (
	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/attacks"
	"github.com/chesswise/mess/pkg/bitboard"
	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// mobilityBonus is the tapered bonus per reachable square beyond the
// first, indexed by piece type.
var mobilityBonus = [piece.TypeN]Score{
	piece.Knight: S(4, 4),
	piece.Bishop: S(5, 4),
	piece.Rook:   S(2, 4),
	piece.Queen:  S(1, 2),
}

// kingShelterPenalty is the tapered penalty per missing pawn in front of
// the king, castled or not, applied to the three files around it.
var kingShelterPenalty = S(-10, -2)

// bishopPairBonus rewards holding both bishops, which complement each
// other's blind diagonals.
var bishopPairBonus = S(22, 35)

// outpostBonus rewards a knight or bishop sitting on a square no enemy
// pawn can ever challenge, defended by one of its own pawns.
var outpostBonus = [piece.TypeN]Score{
	piece.Knight: S(18, 8),
	piece.Bishop: S(10, 4),
}

// Evaluator is the classical static evaluation function. It holds no
// state of its own; every call derives its result from the Board given
// to it, so a single Evaluator is safe to share across searches.
type Evaluator struct{}

// NewEvaluator builds a classical Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns the static evaluation of b from the side to move's
// perspective.
func (*Evaluator) Evaluate(b *board.Board) eval.Eval {
	if technique, ok := mateWithMajorPieceBonus(b); ok {
		if b.SideToMove == piece.Black {
			return eval.Eval(-technique)
		}
		return eval.Eval(technique)
	}

	var score Score
	var phase eval.Eval

	occupied := b.ColorBBs[piece.White] | b.ColorBBs[piece.Black]

	var attackedBy [piece.ColorN]bitboard.Board
	for c := piece.White; c <= piece.Black; c++ {
		pawns := b.PieceBBs[piece.Pawn] & b.ColorBBs[c]
		attackedBy[c] = attacks.PawnsLeft(pawns, c) | attacks.PawnsRight(pawns, c)
		attackedBy[c] |= attacks.King[(b.PieceBBs[piece.King] & b.ColorBBs[c]).FirstOne()]
	}

	for c := piece.White; c <= piece.Black; c++ {
		sign := Score(1)
		if c == piece.Black {
			sign = -1
		}

		bishops := 0

		for t := piece.Pawn; t <= piece.King; t++ {
			pieces := b.PieceBBs[t] & b.ColorBBs[c]
			phase += eval.Eval(pieces.Count()) * phaseInc[t]

			pieces2 := pieces
			for pieces2 != bitboard.Empty {
				s := pieces2.Pop()
				score += sign * pieceSquare(piece.New(t, c), s)

				switch t {
				case piece.Knight, piece.Bishop, piece.Rook, piece.Queen:
					attacked := attacksFrom(t, s, occupied)
					attackedBy[c] |= attacked
					score += sign * mobilityOf(t, attacked)

					if t == piece.Bishop {
						bishops++
					}
					if t == piece.Rook {
						score += sign * rookFileBonus(b, s, c)
					}
					if (t == piece.Knight || t == piece.Bishop) && isOutpost(b, s, c) {
						score += sign * outpostBonus[t]
					}
				}
			}
		}

		if bishops >= 2 {
			score += sign * bishopPairBonus
		}

		score += sign * connectedRooks(b, c, occupied)
		score += sign * pawnStructure(b, c)
		score += sign * kingSafety(b, c)
	}

	score += hangingPenalty(b, piece.White, attackedBy[piece.White], attackedBy[piece.Black])
	score -= hangingPenalty(b, piece.Black, attackedBy[piece.Black], attackedBy[piece.White])

	if phase > MaxPhase {
		phase = MaxPhase
	}

	t := float64(phase) / float64(MaxPhase)
	tapered := eval.Eval(util.Lerp(float64(score.EG()), float64(score.MG()), t))

	if b.SideToMove == piece.Black {
		return -tapered
	}
	return tapered
}

// attacksFrom returns the squares a piece of type t standing on s
// attacks, given the board's full occupancy.
func attacksFrom(t piece.Type, s square.Square, occupied bitboard.Board) bitboard.Board {
	switch t {
	case piece.Knight:
		return attacks.Knight[s]
	case piece.Bishop:
		return attacks.Bishop(s, occupied)
	case piece.Rook:
		return attacks.Rook(s, occupied)
	case piece.Queen:
		return attacks.Queen(s, occupied)
	default:
		return bitboard.Empty
	}
}

// mobilityOf returns the tapered bonus for a piece of type t that
// attacks the squares in attacked.
func mobilityOf(t piece.Type, attacked bitboard.Board) Score {
	count := Score(attacked.Count())
	if count == 0 {
		return 0
	}
	return (count - 1) * mobilityBonus[t]
}

// kingSafety approximates pawn-shelter quality in front of c's king: a
// penalty for each of the three files around the king file missing a
// friendly pawn on the two ranks immediately in front of it.
func kingSafety(b *board.Board, c piece.Color) Score {
	kingSq := (b.PieceBBs[piece.King] & b.ColorBBs[c]).FirstOne()
	pawns := b.PieceBBs[piece.Pawn] & b.ColorBBs[c]

	// the two ranks in front of the king, from c's point of view
	var front bitboard.Board
	for i := 1; i <= 2; i++ {
		r := int(kingSq.Rank()) - i
		if c == piece.Black {
			r = int(kingSq.Rank()) + i
		}
		if r >= 0 && r < square.RankN {
			front |= bitboard.Ranks[r]
		}
	}

	file := kingSq.File()
	missing := 0
	for _, f := range []square.File{file - 1, file, file + 1} {
		if f < square.FileA || f > square.FileH {
			continue
		}

		shelter := bitboard.Files[f] & front & pawns
		if shelter == bitboard.Empty {
			missing++
		}
	}

	return Score(missing) * kingShelterPenalty
}
