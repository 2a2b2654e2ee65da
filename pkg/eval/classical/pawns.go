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

// passedPawnBonus is indexed by the number of single-square pushes a
// pawn still needs to promote; it grows sharply towards the end game,
// where a passed pawn's race against the defending king matters far
// more than in a piece-heavy middle game.
var passedPawnBonus = [8]Score{
	1: S(60, 150),
	2: S(40, 100),
	3: S(25, 60),
	4: S(15, 35),
	5: S(10, 20),
	6: S(5, 10),
}

var (
	// protectedPawnBonus rewards a pawn defended by another pawn.
	protectedPawnBonus = S(8, 12)
	// connectedPassedBonus adds to protectedPawnBonus for a passed pawn
	// that is also defended by another pawn.
	connectedPassedBonus = S(10, 20)
	// backwardPawnPenalty applies to a pawn that cannot be protected by
	// a pawn on an adjacent file and whose stop square is already
	// controlled by an enemy pawn.
	backwardPawnPenalty = S(-9, -6)
	// pawnIslandPenalty applies per island beyond the first; pawns split
	// across disconnected file-groups are individually easier to attack.
	pawnIslandPenalty = S(-5, -10)
)

// pawnStructure scores passed, protected, backward, and island pawn
// terms for every pawn of color c.
func pawnStructure(b *board.Board, c piece.Color) Score {
	them := c.Other()

	us := b.PieceBBs[piece.Pawn] & b.ColorBBs[c]
	theirPawns := b.PieceBBs[piece.Pawn] & b.ColorBBs[them]

	var score Score

	for pawns := us; pawns != bitboard.Empty; {
		s := pawns.Pop()

		front := frontSpan(s, c)
		passedMask := front | front.West() | front.East()

		protected := isProtectedByPawn(us, s, c)

		if theirPawns&passedMask == bitboard.Empty {
			score += passedPawnBonus[promotionDistance(s, c)]
			if protected {
				score += connectedPassedBonus
			}
		}

		switch {
		case protected:
			score += protectedPawnBonus
		case isBackward(us, theirPawns, s, c):
			score += backwardPawnPenalty
		}
	}

	if islands := pawnIslands(us); islands > 1 {
		score += Score(islands-1) * pawnIslandPenalty
	}

	return score
}

// frontSpan returns every square ahead of s, on s's own file, from c's
// perspective.
func frontSpan(s square.Square, c piece.Color) bitboard.Board {
	file := bitboard.Files[s.File()]

	var mask bitboard.Board
	if c == piece.White {
		for r := square.Rank8; r < s.Rank(); r++ {
			mask |= bitboard.Ranks[r]
		}
	} else {
		for r := s.Rank() + 1; r <= square.Rank1; r++ {
			mask |= bitboard.Ranks[r]
		}
	}

	return file & mask
}

// rearMask returns every square level with or behind s, from c's
// perspective, across the whole board.
func rearMask(s square.Square, c piece.Color) bitboard.Board {
	var mask bitboard.Board
	if c == piece.White {
		for r := s.Rank(); r <= square.Rank1; r++ {
			mask |= bitboard.Ranks[r]
		}
	} else {
		for r := square.Rank8; r <= s.Rank(); r++ {
			mask |= bitboard.Ranks[r]
		}
	}
	return mask
}

// promotionDistance returns the number of single-square pushes the
// pawn on s still needs to reach its promotion rank.
func promotionDistance(s square.Square, c piece.Color) int {
	if c == piece.White {
		return int(s.Rank())
	}
	return int(square.Rank1 - s.Rank())
}

// isProtectedByPawn reports whether any pawn in us attacks s.
func isProtectedByPawn(us bitboard.Board, s square.Square, c piece.Color) bool {
	attacked := attacks.PawnsLeft(us, c) | attacks.PawnsRight(us, c)
	return attacked.IsSet(s)
}

// isBackward reports whether the pawn on s can never be protected by a
// pawn on an adjacent file, and its stop square is already controlled
// by an enemy pawn, the standard definition of a backward pawn.
func isBackward(us, them bitboard.Board, s square.Square, c piece.Color) bool {
	file := bitboard.Files[s.File()]
	adjacentFiles := file.West() | file.East()

	if us&adjacentFiles&rearMask(s, c) != bitboard.Empty {
		return false
	}

	var stop square.Square
	if c == piece.White {
		stop = s - 8
	} else {
		stop = s + 8
	}

	enemyAttacks := attacks.PawnsLeft(them, c.Other()) | attacks.PawnsRight(them, c.Other())
	return enemyAttacks.IsSet(stop)
}

// pawnIslands counts the contiguous groups of occupied files in us.
func pawnIslands(us bitboard.Board) int {
	islands := 0
	prevOccupied := false
	for f := square.FileA; f <= square.FileH; f++ {
		occupied := us&bitboard.Files[f] != bitboard.Empty
		if occupied && !prevOccupied {
			islands++
		}
		prevOccupied = occupied
	}
	return islands
}

// isOutpost reports whether s is unreachable by any enemy pawn, now or
// after it advances, and is defended by a friendly pawn: a stable post
// for a knight or bishop that the opponent can never evict with a pawn.
func isOutpost(b *board.Board, s square.Square, c piece.Color) bool {
	them := c.Other()

	front := frontSpan(s, c)
	guardedFiles := front.West() | front.East()

	enemyPawns := b.PieceBBs[piece.Pawn] & b.ColorBBs[them]
	if enemyPawns&guardedFiles != bitboard.Empty {
		return false
	}

	friendlyPawns := b.PieceBBs[piece.Pawn] & b.ColorBBs[c]
	return isProtectedByPawn(friendlyPawns, s, c)
}
