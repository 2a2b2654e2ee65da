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

package engine_test

import (
	"testing"
	"time"

	"github.com/chesswise/mess/pkg/engine"
	"github.com/chesswise/mess/pkg/move"
)

func waitForIdle(t *testing.T, e *engine.Engine) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for e.IsActive() {
		if time.Now().After(deadline) {
			t.Fatal("engine did not finish searching in time")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestGoReturnsImmediatelyAndReportsABestMove(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())
	e.SetMaximumDepth(4)

	e.Go(nil, nil)
	if !e.IsActive() {
		t.Fatal("expected Go to have started a search")
	}

	waitForIdle(t, e)

	best, err := e.GetBestMove()
	if err != nil {
		t.Fatalf("GetBestMove: %v", err)
	}
	if best == move.Null {
		t.Error("expected a non-null best move")
	}

	analysis := e.GetAnalysis()
	if len(analysis) == 0 {
		t.Fatal("expected non-empty analysis after a completed search")
	}
	if analysis[0].Move != best {
		t.Errorf("analysis move = %s, want %s matching GetBestMove", analysis[0].Move, best)
	}
}

func TestStopEndsAnActiveSearch(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())

	e.Go(nil, nil)
	time.Sleep(10 * time.Millisecond)
	e.Stop()

	waitForIdle(t, e)

	if _, err := e.GetBestMove(); err != nil {
		t.Fatalf("GetBestMove: %v", err)
	}
}

func TestSecondGoIsANoOpWhileASearchIsActive(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())

	e.Go(nil, nil)
	e.Go(nil, nil) // must not panic or deadlock, and must not restart the search

	e.Stop()
	waitForIdle(t, e)
}

func TestSetPositionRejectedWhileSearching(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())

	e.Go(nil, nil)
	if err := e.SetPosition("8/8/8/8/8/8/8/K6k w - - 0 1"); err == nil {
		t.Error("expected SetPosition to reject a request while a search is active")
	}

	e.Stop()
	waitForIdle(t, e)
}

func TestApplyMoveAdvancesThePosition(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())

	if err := e.ApplyMove("e2e4"); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if err := e.ApplyMove("e7e5"); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if err := e.ApplyMove("e2e4"); err == nil {
		t.Error("expected replaying an already-played move to fail")
	}
}

func TestApplyPGNMoveResolvesStandardAlgebraicNotation(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())

	if err := e.ApplyPGNMove("Nf3"); err != nil {
		t.Fatalf("ApplyPGNMove: %v", err)
	}
	if err := e.ApplyPGNMove("Nf6"); err != nil {
		t.Fatalf("ApplyPGNMove: %v", err)
	}
}

func TestApplyMoveListStopsAtTheFirstIllegalMove(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())

	if err := e.ApplyMoveList("e2e4 e7e5 g1f3"); err != nil {
		t.Fatalf("ApplyMoveList: %v", err)
	}
	if err := e.ApplyMoveList("e2e4"); err == nil {
		t.Error("expected an illegal continuation to fail")
	}
}

func TestBestMoveUnavailableBeforeAnySearch(t *testing.T) {
	e := engine.New(nil, engine.DefaultOptions())
	if _, err := e.GetBestMove(); err == nil {
		t.Error("expected GetBestMove to fail before any search has run")
	}
}
