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

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/engine"
)

func newEngineAt(t *testing.T, fen string) *engine.Engine {
	t.Helper()
	e := engine.New(nil, engine.DefaultOptions())
	if err := e.SetPosition(fen); err != nil {
		t.Fatalf("SetPosition(%q): %v", fen, err)
	}
	return e
}

func TestStatusOngoing(t *testing.T) {
	e := newEngineAt(t, board.StartFEN)
	if status := e.Status(); status != engine.Ongoing {
		t.Errorf("expected Ongoing at the starting position, got %v", status)
	}
}

func TestStatusCheckmate(t *testing.T) {
	// fool's mate: black's queen delivers mate on h4.
	e := newEngineAt(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")

	if status := e.Status(); status != engine.BlackWon {
		t.Errorf("expected BlackWon, got %v", status)
	}
}

func TestStatusStalemate(t *testing.T) {
	e := newEngineAt(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	if status := e.Status(); status != engine.Stalemate {
		t.Errorf("expected Stalemate, got %v", status)
	}
}

func TestStatusInsufficientMaterial(t *testing.T) {
	e := newEngineAt(t, "8/4nk2/8/8/8/2K5/8/8 w - - 0 1")

	if status := e.Status(); status != engine.Draw {
		t.Errorf("expected Draw by insufficient material, got %v", status)
	}
}

func TestStatusFiftyMoveRule(t *testing.T) {
	e := newEngineAt(t, "4k3/8/8/8/8/8/8/4K2R w K - 100 60")

	if status := e.Status(); status != engine.Draw {
		t.Errorf("expected Draw by the fifty-move rule, got %v", status)
	}
}
