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
	"fmt"
	"time"

	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/move"
)

// Stats accumulates counters over the lifetime of a single search.
type Stats struct {
	SearchStart time.Time

	Nodes    int
	TTHits   int
	Depth    int
	SelDepth int
}

// Report summarizes a completed iterative deepening depth in a form
// suitable for relaying to a UCI client.
type Report struct {
	Depth    int
	SelDepth int

	Nodes int
	Nps   float64

	Time  time.Duration
	Score eval.Eval
	PV    move.Variation
}

// report builds a Report from the search's current statistics and PV.
func (search *Context) report() Report {
	elapsed := time.Since(search.stats.SearchStart)

	return Report{
		Depth:    search.stats.Depth,
		SelDepth: search.stats.SelDepth,

		Nodes: search.stats.Nodes,
		Nps:   float64(search.stats.Nodes) / util.Max(0.001, elapsed.Seconds()),

		Time:  elapsed,
		Score: search.pvScore,
		PV:    search.pv,
	}
}

// String renders a Report as a UCI "info" line.
func (report Report) String() string {
	return fmt.Sprintf(
		"info depth %d seldepth %d score %s nodes %d nps %.f time %d pv %s",
		report.Depth, report.SelDepth, report.Score, report.Nodes, report.Nps,
		report.Time.Milliseconds(), report.PV,
	)
}
