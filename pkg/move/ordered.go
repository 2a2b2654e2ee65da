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

package move

// eval is the set of types a move-ordering score may be represented as.
// uint64 is excluded to avoid overflow when packed alongside a Move.
type eval interface {
	~int | ~int8 | ~int16 | ~int32 |
		~uint | ~uint8 | ~uint16 | ~uint32
}

// ScoreMoves scores every move in moveList with scorer and returns an
// OrderedMoveList ready for incremental selection-sort picking.
func ScoreMoves[T eval](moveList []Move, scorer func(Move) T) OrderedMoveList[T] {
	ordered := make([]OrderedMove[T], len(moveList))

	for i, m := range moveList {
		ordered[i] = NewOrdered(m, scorer(m))
	}

	return OrderedMoveList[T]{moves: ordered, Length: len(moveList)}
}

// OrderedMoveList is a scored, partially-sorted move list. Moves are
// sorted lazily, one PickMove call at a time, since alpha-beta pruning
// usually means most of the list is never examined.
type OrderedMoveList[T eval] struct {
	moves  []OrderedMove[T]
	Length int
}

// PickMove finds the highest-scoring move at or after index, swaps it
// into index, and returns it.
func (list *OrderedMoveList[T]) PickMove(index int) Move {
	bestIndex := index
	bestScore := list.moves[index].Eval()

	for i := index + 1; i < list.Length; i++ {
		if score := list.moves[i].Eval(); score > bestScore {
			bestIndex = i
			bestScore = score
		}
	}

	list.moves[index], list.moves[bestIndex] = list.moves[bestIndex], list.moves[index]
	return list.moves[index].Move()
}

// NewOrdered packs a move and its ordering score into a single word.
func NewOrdered[T eval](m Move, score T) OrderedMove[T] {
	// [ score 32 bits ][ move 32 bits ]
	return OrderedMove[T](uint64(score)<<32 | uint64(m))
}

// OrderedMove packs a Move with a move-ordering score for fast sorting.
type OrderedMove[T eval] uint64

// Eval returns the move's ordering score.
func (m OrderedMove[T]) Eval() T {
	return T(m >> 32)
}

// Move returns the packed move.
func (m OrderedMove[T]) Move() Move {
	return Move(m & 0xFFFFFFFF)
}
