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
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/search/tt"
)

// negamax is the zero-sum reformulation of minimax: since one side's
// advantage is the other's disadvantage, a single recursive function
// negating its own return value serves both the maximizing and the
// minimizing player. https://www.chessprogramming.org/Negamax
//
// Alpha-beta pruning cuts off any branch that can no longer affect the
// final result, and Principal Variation Search narrows every search
// after the first move at a node to a null window, re-searching with
// the full window only if that narrow search suggests it might raise
// alpha. https://www.chessprogramming.org/Alpha-Beta
// https://www.chessprogramming.org/Principal_Variation_Search
func (search *Context) negamax(ply, depth int, alpha, beta eval.Eval, pv *move.Variation) eval.Eval {
	search.stats.Nodes++
	search.stats.SelDepth = util.Max(search.stats.SelDepth, ply)

	switch {
	case search.shouldStop():
		return 0

	case ply > 0 && search.Board.IsDraw():
		return draw(search.stats.Nodes)

	case depth <= 0, ply >= MaxDepth:
		return search.quiescence(ply, alpha, beta)
	}

	isPVNode := beta-alpha != 1

	moves := search.generateMoves()
	if len(moves) == 0 {
		if search.Board.IsInCheck(search.Board.SideToMove) {
			return eval.MatedIn(ply)
		}
		return eval.Draw
	}

	originalAlpha := alpha

	bestMove := move.Null
	bestEval := -eval.Inf

	if entry, hit := search.TT.Probe(search.Board.Hash); hit {
		bestMove = entry.Move

		if !isPVNode && entry.Depth >= uint8(depth) {
			search.stats.TTHits++
			value := entry.Value.Eval(ply)

			switch entry.Type {
			case tt.ExactEntry:
				return value
			case tt.LowerBound:
				alpha = util.Max(alpha, value)
			case tt.UpperBound:
				beta = util.Min(beta, value)
			}

			if alpha >= beta {
				return value
			}
		}
	}

	killer := move.Null
	if ply <= MaxDepth {
		killer = search.killers[ply]
	}

	// nudge quiet moves that caused a cutoff anywhere else in this
	// search ahead of completely unscored quiet moves, since the
	// per-ply killer slot only remembers the single most recent one.
	scorer := eval.OfMove(search.Board, bestMove, killer)
	list := move.ScoreMoves(moves, func(m move.Move) eval.MoveScore {
		if s := scorer(m); s != eval.DefaultMove || !search.Cache.IsKiller(m) {
			return s
		}
		return eval.DefaultMove + 1
	})

	for i := 0; i < list.Length; i++ {
		var childPV move.Variation

		m := list.PickMove(i)
		search.Board.MakeMove(m)

		var score eval.Eval
		switch {
		case !isPVNode || i > 0:
			// late move reductions: a quiet move searched deep into an
			// already-ordered move list is unlikely to beat alpha, so
			// verify that cheaply at a shallower depth before spending
			// a full-depth search on it.
			reduction := 0
			if i >= 3 && depth >= 3 && m.IsQuiet() {
				reduction = util.Clamp(reductions[util.Min(depth, MaxDepth)][util.Min(i+1, 127)], 0, depth-1)
			}

			score = -search.negamax(ply+1, depth-1-reduction, -alpha-1, -alpha, &childPV)
			if reduction > 0 && score > alpha {
				// the reduced search beat alpha; the reduction may have
				// hidden something, so verify at full depth.
				score = -search.negamax(ply+1, depth-1, -alpha-1, -alpha, &childPV)
			}

			if isPVNode && score > alpha && score < beta {
				score = -search.negamax(ply+1, depth-1, -beta, -alpha, &childPV)
			}
		default:
			score = -search.negamax(ply+1, depth-1, -beta, -alpha, &childPV)
		}

		search.Board.UnmakeMove()

		if score > bestEval {
			bestMove = m
			bestEval = score

			if score > alpha {
				alpha = score
				pv.Update(m, childPV)

				if alpha >= beta {
					if m.IsQuiet() && ply <= MaxDepth {
						search.killers[ply] = m
						search.Cache.AddKiller(m)
					}
					break
				}
			}
		}
	}

	if !search.stopped.Load() {
		var entryType tt.EntryType
		switch {
		case bestEval <= originalAlpha:
			entryType = tt.UpperBound
		case bestEval >= beta:
			entryType = tt.LowerBound
		default:
			entryType = tt.ExactEntry
		}

		search.TT.Store(tt.Entry{
			Hash:  search.Board.Hash,
			Value: tt.EvalFrom(bestEval, ply),
			Move:  bestMove,
			Depth: uint8(depth),
			Type:  entryType,
		})
	}

	return bestEval
}
