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
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
)

// iterativeDeepening runs negamax at successively greater depths,
// reporting each completed depth's principal variation through
// report. Searching shallow depths first fills the transposition
// table and move-ordering data that make the deeper searches faster,
// and it means a time-limited search always has a usable result: the
// best line from the last depth it fully completed.
//
// A depth's result is only committed to search.pv once the depth
// finishes; an interrupted depth's half-searched line is discarded so
// a stopped search never reports a PV worse than its previous depth.
func (search *Context) iterativeDeepening(report func(Report)) (move.Variation, eval.Eval) {
	maxDepth := search.limits.Depth
	if maxDepth == 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	var pv move.Variation
	score := eval.Draw

	for depth := 1; depth <= maxDepth; depth++ {
		search.stats.Depth = depth
		search.stats.SelDepth = 0

		var iterationPV move.Variation
		iterationScore := search.aspirationWindow(depth, score, &iterationPV)

		if search.stopped.Load() && depth > 1 {
			break
		}

		pv = iterationPV
		score = iterationScore
		search.pv = pv
		search.pvScore = score

		if report != nil {
			report(search.report())
		}

		if score > eval.WinInMaxPly || score < eval.LoseInMaxPly {
			// a forced mate has been found; searching deeper only
			// finds longer, equally forced lines.
			break
		}

		if search.shouldStop() {
			break
		}
	}

	return pv, score
}
