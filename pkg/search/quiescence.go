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

package search

import (
	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/cache"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
)

// quiescence extends negamax along capture and promotion lines until
// the position is "quiet", avoiding the horizon effect where a leaf
// evaluation is cut off right before or after a winning capture.
// https://www.chessprogramming.org/Quiescence_Search
func (search *Context) quiescence(ply int, alpha, beta eval.Eval) eval.Eval {
	search.stats.Nodes++
	search.stats.SelDepth = util.Max(search.stats.SelDepth, ply)

	if search.shouldStop() {
		return 0
	}

	if search.Board.IsDraw() {
		return draw(search.stats.Nodes)
	}

	standPat := search.evaluate()
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	if ply >= MaxDepth {
		return standPat
	}

	moves := search.generateMoves()
	noisy := make([]move.Move, 0, len(moves))
	for _, m := range moves {
		if m.IsCapture() || m.IsPromotion() {
			noisy = append(noisy, m)
		}
	}

	if len(noisy) == 0 {
		return standPat
	}

	list := move.ScoreMoves(noisy, eval.OfMove(search.Board, move.Null, move.Null))

	best := standPat
	for i := 0; i < list.Length; i++ {
		m := list.PickMove(i)

		search.Board.MakeMove(m)
		score := -search.quiescence(ply+1, -beta, -alpha)
		search.Board.UnmakeMove()

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if alpha >= beta {
					break
				}
			}
		}
	}

	return best
}

// evaluate returns the static evaluation of the current position,
// consulting the shared evaluation cache before falling back to the
// configured evaluator.
func (search *Context) evaluate() eval.Eval {
	if entry, ok := search.Cache.Eval(search.Board.Hash); ok {
		return entry.Value
	}

	value := search.Eval.Evaluate(search.Board)
	search.Cache.SetEval(search.Board.Hash, cache.EvalEntry{Value: value})
	return value
}

// generateMoves returns the current position's move list, consulting
// the shared move-list cache before falling back to move generation.
// Positions reached by more than one path (a common transposition)
// skip regenerating their moves entirely.
func (search *Context) generateMoves() []move.Move {
	if moves, ok := search.Cache.MoveList(search.Board.Hash); ok {
		return moves
	}

	moves := search.Board.GenerateMoves()
	search.Cache.SetMoveList(search.Board.Hash, moves)
	return moves
}
