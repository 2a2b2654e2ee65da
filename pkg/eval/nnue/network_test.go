package nnue_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/eval/nnue"
)

func TestForwardIsBounded(t *testing.T) {
	net := nnue.New(constantRNG(0.01))
	b := board.New(board.StartFEN)

	e := net.Forward(nnue.Features(b))
	if math.Abs(float64(e)) > 512 {
		t.Errorf("forward output %d outside of the tanh*scale range", e)
	}
}

func TestFeaturesCountsThirtyTwoPieces(t *testing.T) {
	b := board.New(board.StartFEN)
	features := nnue.Features(b)

	set := 0
	for _, f := range features {
		if f == 1 {
			set++
		}
	}

	if set != 32 {
		t.Errorf("expected 32 set features for the starting position, got %d", set)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	net := nnue.New(constantRNG(0.05))

	path := filepath.Join(t.TempDir(), "weights.nnue")
	if err := nnue.Save(net, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := nnue.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	b := board.New(board.StartFEN)
	input := nnue.Features(b)

	want := net.Forward(input)
	got := loaded.Forward(input)
	if want != got {
		t.Errorf("round-tripped network diverged: want %d, got %d", want, got)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.nnue")
	if err := os.WriteFile(path, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := nnue.Load(path); err == nil {
		t.Error("expected an error loading a file with the wrong magic bytes")
	}
}

func TestTrainerStepReducesLoss(t *testing.T) {
	net := nnue.New(constantRNG(0.02))
	trainer := nnue.NewTrainer(net, nnue.DefaultHyperparameters())

	b := board.New(board.StartFEN)
	input := nnue.Features(b)
	batch := []nnue.Sample{{Input: input, Target: 1}}

	first := trainer.Step(batch)
	var last float32
	for i := 0; i < 50; i++ {
		last = trainer.Step(batch)
	}

	if last >= first {
		t.Errorf("loss did not decrease over training steps: first %f, last %f", first, last)
	}
}

func constantRNG(v float32) func() float32 {
	i := 0
	return func() float32 {
		i++
		if i%2 == 0 {
			return v
		}
		return -v
	}
}
