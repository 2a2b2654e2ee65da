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

// Package tuner implements Texel tuning of the classical evaluator's
// material and piece-square terms: gradient descent against a dataset
// of (fen, game result) pairs that minimizes the squared error between
// the static evaluation, passed through a sigmoid, and the eventual
// result of the game the position was drawn from.
// https://www.chessprogramming.org/Texel%27s_Tuning_Method
package tuner

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/eval/classical"
)

// Entry is a single labeled training position: the tunable terms it
// exercises, its tapering phase, and the eventual game result.
type Entry struct {
	coeffs []classical.Coefficient

	// phase is this position's middle-game weight: 1 at the starting
	// material count, 0 with none of the phase-bearing pieces left.
	phase float64

	// baseMG/baseEG are this position's evaluation under the terms'
	// values at dataset load time, before any tuning delta is applied.
	baseMG, baseEG float64

	result float64
}

// LinearEval recomputes the position's static evaluation with delta
// added to the terms' loaded values, without replaying the board.
func (e *Entry) LinearEval(delta Vector) float64 {
	mg, eg := e.baseMG, e.baseEG
	for _, c := range e.coeffs {
		mg += float64(c.Count) * delta[c.Index][MG]
		eg += float64(c.Count) * delta[c.Index][EG]
	}
	return eg + (mg-eg)*e.phase
}

// Dataset is the training data the Tuner minimizes error over.
type Dataset []Entry

// NewDataset reads a dataset file of lines "[result] fen", where result
// is one of [1.0], [0.5], or [0.0] naming the game's outcome for White.
func NewDataset(filename string) (Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var dataset Dataset

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, fenString, found := strings.Cut(line, " ")
		if !found {
			return nil, errors.New("tuner: invalid dataset entry: " + line)
		}

		var wdl float64
		switch result {
		case "[1.0]":
			wdl = 1.0
		case "[0.5]":
			wdl = 0.5
		case "[0.0]":
			wdl = 0.0
		default:
			return nil, fmt.Errorf("tuner: invalid result marker %q", result)
		}

		b := board.New(fenString)
		dataset = append(dataset, newEntry(b, wdl))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return dataset, nil
}

func newEntry(b *board.Board, result float64) Entry {
	coeffs := classical.Coefficients(b)

	var baseMG, baseEG float64
	for _, c := range coeffs {
		mg, eg := classical.Param(c.Index)
		baseMG += float64(c.Count) * float64(mg)
		baseEG += float64(c.Count) * float64(eg)
	}

	return Entry{
		coeffs: coeffs,
		phase:  classical.Phase(b),
		baseMG: baseMG,
		baseEG: baseEG,
		result: result,
	}
}

// ComputeE computes the mean squared error between the dataset's
// recorded results and the sigmoid-scaled static evaluation of every
// entry under delta, with sigmoid scaling factor K.
func (d Dataset) ComputeE(delta Vector, K float64) float64 {
	var total float64
	for i := range d {
		total += math.Pow(d[i].result-Sigmoid(K, d[i].LinearEval(delta)), 2)
	}
	return total / float64(len(d))
}

// ComputeK finds the sigmoid scaling factor that minimizes ComputeE
// over the dataset at delta, searching by decreasing step size to the
// given precision.
func (d Dataset) ComputeK(delta Vector, precision int) float64 {
	start, end, step := 0.0, 10.0, 1.0
	best := d.ComputeE(delta, start)

	for i := 0; i <= precision; i++ {
		current := start - step
		for current < end {
			current += step
			if err := d.ComputeE(delta, current); err <= best {
				best, start = err, current
			}
		}

		end = start + step
		start = start - step
		step /= 10.0
	}

	return start
}

// Sigmoid maps a static evaluation to a win-probability estimate in
// [0, 1], scaled by K.
func Sigmoid(K, static float64) float64 {
	return 1.0 / (1.0 + math.Exp(-K*static/400.0))
}
