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
)

// aspirationWindow narrows negamax's initial alpha-beta bounds to a
// small window around the previous iteration's score, instead of the
// full [-inf, inf] range. A narrower window produces more beta cutoffs
// and searches faster, at the cost of a re-search whenever the true
// score falls outside it. https://www.chessprogramming.org/Aspiration_Windows
func (search *Context) aspirationWindow(depth int, prevScore eval.Eval, pv *move.Variation) eval.Eval {
	alpha := -eval.Inf
	beta := eval.Inf

	initialDepth := depth

	var window eval.Eval = 50

	if depth >= 5 {
		alpha = prevScore - window
		beta = prevScore + window
	}

	for {
		if search.shouldStop() {
			return 0
		}

		var line move.Variation
		result := search.negamax(0, depth, alpha, beta, &line)

		switch {
		case result <= alpha:
			beta = (alpha + beta) / 2
			alpha = util.Max(alpha-window, -eval.Inf)
			depth = initialDepth

		case result >= beta:
			beta = util.Min(beta+window, eval.Inf)
			if util.Abs(result) <= eval.Inf/2 {
				depth--
			}

		default:
			*pv = line
			return result
		}

		window += window / 2
	}
}
