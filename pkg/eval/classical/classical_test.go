package classical_test

import (
	"testing"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/eval/classical"
)

func TestBishopHasMobility(t *testing.T) {
	// the same White bishop on a1 with the same material, once with its
	// long diagonal open and once boxed in behind its own pawn on b2: if
	// bishops score zero mobility, the open one does not evaluate higher.
	open := board.New("4k3/8/8/8/8/8/6P1/B3K3 w - - 0 1")
	boxed := board.New("4k3/8/8/8/8/8/1P6/B3K3 w - - 0 1")

	e := classical.NewEvaluator()
	openEval := e.Evaluate(open)
	boxedEval := e.Evaluate(boxed)

	if openEval <= boxedEval {
		t.Errorf("expected the unblocked bishop to evaluate higher than the boxed-in one, got open=%d boxed=%d", openEval, boxedEval)
	}
}

func TestPassedPawnScoresHigherThanBlocked(t *testing.T) {
	passed := board.New("4k3/8/8/4P3/8/8/8/4K3 w - - 0 1")
	blocked := board.New("4k3/4p3/8/4P3/8/8/8/4K3 w - - 0 1")

	e := classical.NewEvaluator()
	if e.Evaluate(passed) <= e.Evaluate(blocked) {
		t.Error("expected an unopposed passed pawn to evaluate higher than one blocked by an enemy pawn ahead of it")
	}
}

func TestRookOnOpenFileScoresHigherThanClosed(t *testing.T) {
	// a black pawn is present in both positions so neither is a lone
	// king versus a king-plus-rook ending, which would otherwise trip
	// the mate-with-major-piece technique short-circuit instead of
	// exercising the ordinary evaluation this test targets. White has
	// one pawn in both positions, on the rook's a-file only when closed.
	open := board.New("4k3/7p/8/8/8/8/1P6/R3K3 w - - 0 1")
	closed := board.New("4k3/7p/8/8/8/8/P7/R3K3 w - - 0 1")

	e := classical.NewEvaluator()
	if e.Evaluate(open) <= e.Evaluate(closed) {
		t.Error("expected a rook on a fully open file to evaluate higher than a rook with a pawn in front of it")
	}
}

func TestHangingPiecePenalty(t *testing.T) {
	// White's knight on e5 is undefended and attacked by the black rook.
	hanging := board.New("4k3/8/8/4N2r/8/8/8/4K3 w - - 0 1")
	// the same position with a White pawn on d4 added, defending the knight.
	defended := board.New("4k3/8/8/4N2r/3P4/8/8/4K3 w - - 0 1")

	e := classical.NewEvaluator()
	if e.Evaluate(hanging) >= e.Evaluate(defended) {
		t.Error("expected the undefended hanging knight to evaluate lower than the defended one")
	}
}
