package book_test

import (
	"testing"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/book"
)

func TestAddLineRecordsEveryPly(t *testing.T) {
	bk := book.New()
	if err := bk.AddLine("e2e4 c7c5 g1f3 d7d6"); err != nil {
		t.Fatal(err)
	}

	start := board.New(board.StartFEN)
	if _, ok := bk.Probe(start.Hash); !ok {
		t.Error("expected a book move for the starting position")
	}

	if bk.Len() != 4 {
		t.Errorf("expected 4 distinct positions recorded, got %d", bk.Len())
	}
}

func TestAddSingleMove(t *testing.T) {
	bk := book.New()
	fen := "rnbqkbnr/pppp2pp/5p2/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 3"
	if err := bk.AddSingleMove(fen, "f3e5"); err != nil {
		t.Fatal(err)
	}

	b := board.New(fen)
	mv, ok := bk.Probe(b.Hash)
	if !ok {
		t.Fatal("expected a recorded move for the trap position")
	}
	if mv.String() != "f3e5" {
		t.Errorf("got move %s, want f3e5", mv)
	}
}

func TestAddPGN(t *testing.T) {
	bk := book.New()
	pgn := "1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6"
	if err := bk.AddPGN(pgn); err != nil {
		t.Fatal(err)
	}

	start := board.New(board.StartFEN)
	if _, ok := bk.Probe(start.Hash); !ok {
		t.Error("expected the Ruy Lopez's first move to be recorded")
	}
}

func TestProbeUnknownPositionMisses(t *testing.T) {
	bk := book.New()
	if err := bk.AddLine("e2e4"); err != nil {
		t.Fatal(err)
	}

	unrelated := board.New("r4b1r/ppkbpppp/1qnp1n2/1B2N3/P2pP3/3K4/1PPB1PPP/RN1Q3R w - - 5 10")
	if _, ok := bk.Probe(unrelated.Hash); ok {
		t.Error("expected no book move for an unrelated position")
	}
}
