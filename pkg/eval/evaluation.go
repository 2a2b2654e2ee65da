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

// Package eval contains the types shared by every evaluation function
// (classical and NNUE) and by the search package that consumes them.
package eval

import (
	"fmt"
	"math"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// Evaluator is implemented by every static evaluation function an
// engine can be built with; engine.New takes the one it uses.
type Evaluator interface {
	// Evaluate returns the evaluation of b from the perspective of the
	// side to move.
	Evaluate(b *board.Board) Eval
}

// EfficientlyUpdatable is implemented by evaluators whose incremental
// state tracks FillSquare/ClearSquare calls made on a board.Board,
// avoiding a full position rescan on every node.
type EfficientlyUpdatable interface {
	FillSquare(s square.Square, p piece.Piece)
	ClearSquare(s square.Square, p piece.Piece)
	Accumulate(stm piece.Color) Eval
}

// MatedIn returns the evaluation of being checkmated in the given
// number of plys; longer mates score closer to zero so the search
// prefers delaying the inevitable over accepting it sooner.
func MatedIn(plys int) Eval {
	return -Mate + Eval(plys)
}

// RandDraw returns a small pseudo-random draw score derived from seed,
// used to nudge the search out of repeating a drawn line when other
// lines score the same.
func RandDraw(seed int) Eval {
	return Eval(8 - (seed & 7))
}

// Eval is a relative centipawn evaluation: positive favors the side to
// move, negative favors the opponent.
type Eval int

const (
	Inf  Eval = math.MaxInt32 / 2
	Mate Eval = Inf - 1
	Draw Eval = 0

	WinInMaxPly  Eval = Mate - 2*10000
	LoseInMaxPly Eval = -WinInMaxPly
)

// String renders the Eval in UCI "info score" syntax.
func (e Eval) String() string {
	switch {
	case e > WinInMaxPly:
		plys := Mate - e
		return fmt.Sprintf("mate %d", (plys/2)+(plys%2))
	case e < LoseInMaxPly:
		plys := -Mate - e
		return fmt.Sprintf("mate %d", -((plys / 2) + (plys % 2)))
	default:
		return fmt.Sprintf("cp %d", e)
	}
}
