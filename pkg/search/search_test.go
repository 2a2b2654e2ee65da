package search_test

import (
	"testing"
	"time"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/cache"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/eval/classical"
	"github.com/chesswise/mess/pkg/search"
	"github.com/chesswise/mess/pkg/search/tt"
)

func newContext(fen string) *search.Context {
	b := board.New(fen)
	return search.NewContext(b, classical.NewEvaluator(), cache.New(), tt.NewTable(1))
}

func TestFindsMateInOne(t *testing.T) {
	// Scholar's mate: Qh5xf7# is defended by the bishop on c4, so the
	// black king cannot recapture and has no flight square.
	ctx := newContext("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")

	pv, score := ctx.Search(search.Limits{Depth: 4}, nil)
	if pv.Len() == 0 {
		t.Fatal("expected a principal variation")
	}

	if score <= eval.WinInMaxPly {
		t.Errorf("expected a forced mate score, got %s", score)
	}

	if got := pv.Move(0).String(); got != "h5f7" {
		t.Errorf("best move = %s, want h5f7", got)
	}
}

func TestFindsMateInTwo(t *testing.T) {
	// 1.Qa6+ Kb8 (forced, the only legal reply) 2.Qb7#
	ctx := newContext("k7/8/2K5/8/8/8/4Q3/8 w - - 0 1")

	pv, score := ctx.Search(search.Limits{Depth: 6}, nil)
	if pv.Len() == 0 {
		t.Fatal("expected a principal variation")
	}

	if score <= eval.WinInMaxPly {
		t.Errorf("expected a forced mate score, got %s", score)
	}
}

func TestOnlyLegalReplyIsPlayed(t *testing.T) {
	// the black king on g8 has exactly one square it isn't moving
	// into check by stepping to: f8.
	ctx := newContext("6k1/8/6K1/8/8/8/8/7R b - - 0 1")

	legal := ctx.Board.GenerateMoves()
	if len(legal) != 1 {
		t.Fatalf("test position should have exactly one legal move, has %d", len(legal))
	}

	pv, _ := ctx.Search(search.Limits{Depth: 2}, nil)
	if pv.Move(0) != legal[0] {
		t.Errorf("search played %s, want the only legal move %s", pv.Move(0), legal[0])
	}
}

func TestBookMoveShortCircuitsSearch(t *testing.T) {
	ctx := newContext(board.StartFEN)
	if err := ctx.Book.AddLine("e2e4"); err != nil {
		t.Fatal(err)
	}

	pv, _ := ctx.Search(search.Limits{Depth: 10}, nil)
	if got := pv.Move(0).String(); got != "e2e4" {
		t.Errorf("expected the book move e2e4, got %s", got)
	}
}

func TestStopEndsSearchPromptly(t *testing.T) {
	ctx := newContext(board.StartFEN)

	done := make(chan struct{})
	go func() {
		_, _ = ctx.Search(search.Limits{Infinite: true}, nil)
		close(done)
	}()

	// give the search a moment to start before requesting it stop,
	// since Search resets the stopped flag as part of initialization.
	time.Sleep(10 * time.Millisecond)
	ctx.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop after Stop was called")
	}
}
