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

// Package nnue implements a small fixed-topology feed-forward network
// used as the engine's alternative static evaluator: an input layer of
// 768 side-relative piece/square features, two clipped-ReLU hidden
// layers, and a single tanh output scaled to centipawns.
package nnue

import (
	"math"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// Feature layout: 64 squares * 6 piece types * 2 "relative colors"
// (side-to-move's pieces first, then the opponent's), following the
// standard NNUE convention of orienting every input to the side whose
// turn it is to move.
const (
	InputSize   = square.N * 6 * 2
	HiddenSize  = 64
	Hidden2Size = 8
	OutputSize  = 1
)

// scale converts the network's [-1, 1] tanh output into a centipawn
// evaluation comparable to the classical evaluator's.
const scale = 512.0

// Activation identifies the non-linearity applied to a layer's
// pre-activations.
type Activation uint8

const (
	ActivationNone Activation = iota
	ActivationClippedReLU
	ActivationTanh
)

func (a Activation) apply(x float32) float32 {
	switch a {
	case ActivationClippedReLU:
		return clippedReLU(x)
	case ActivationTanh:
		return float32(math.Tanh(float64(x)))
	default:
		return x
	}
}

func (a Activation) derivative(z float32) float32 {
	switch a {
	case ActivationClippedReLU:
		if z <= 0 || z >= 1 {
			return 0
		}
		return 1
	case ActivationTanh:
		t := float32(math.Tanh(float64(z)))
		return 1 - t*t
	default:
		return 1
	}
}

func clippedReLU(x float32) float32 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// Layer holds the weights, bias, and activation of one dense layer of
// the network, plus the Adam optimizer moments used while training.
type Layer struct {
	Nodes        int
	PrevNodes    int
	Activation   Activation
	Weights      []float32 // row-major, Nodes x PrevNodes
	Bias         float32
	momentumW    []float32
	momentumSqW  []float32
	momentumB    float32
	momentumSqB  float32
	preactivated []float32
	activated    []float32
	gradW        []float32
	gradB        float32
}

func newLayer(nodes, prevNodes int, a Activation) *Layer {
	return &Layer{
		Nodes:        nodes,
		PrevNodes:    prevNodes,
		Activation:   a,
		Weights:      make([]float32, nodes*prevNodes),
		momentumW:    make([]float32, nodes*prevNodes),
		momentumSqW:  make([]float32, nodes*prevNodes),
		preactivated: make([]float32, nodes),
		activated:    make([]float32, nodes),
		gradW:        make([]float32, nodes*prevNodes),
	}
}

// Network is the full feed-forward evaluator: an implicit input layer
// of InputSize features followed by Layers.
type Network struct {
	Layers     []*Layer
	iterations int
}

// New builds a Network with the standard 768-64-8-1 topology and
// weights drawn from a small uniform spread, broken out of symmetry
// the way the hidden layers need to train at all.
func New(rng func() float32) *Network {
	n := &Network{}
	n.addLayer(HiddenSize, InputSize, ActivationClippedReLU, rng)
	n.addLayer(Hidden2Size, HiddenSize, ActivationClippedReLU, rng)
	n.addLayer(OutputSize, Hidden2Size, ActivationTanh, rng)
	return n
}

func (n *Network) addLayer(nodes, prevNodes int, a Activation, rng func() float32) {
	l := newLayer(nodes, prevNodes, a)
	if rng != nil {
		for i := range l.Weights {
			l.Weights[i] = rng()
		}
	}
	n.Layers = append(n.Layers, l)
}

// Forward runs the input feature vector through every layer and
// returns the scaled centipawn evaluation.
func (n *Network) Forward(input []float32) eval.Eval {
	prev := input
	for _, l := range n.Layers {
		prev = l.forward(prev)
	}
	return eval.Eval(prev[0] * scale)
}

func (l *Layer) forward(prev []float32) []float32 {
	for i := 0; i < l.Nodes; i++ {
		var sum float32
		row := l.Weights[i*l.PrevNodes : (i+1)*l.PrevNodes]
		for j, v := range prev {
			sum += row[j] * v
		}
		sum += l.Bias
		l.preactivated[i] = sum
		l.activated[i] = l.Activation.apply(sum)
	}
	return l.activated
}

// Features fills a zeroed InputSize-length slice with the 0/1 feature
// encoding of b, oriented to the side to move: b's own pieces occupy
// the first 384 features, the opponent's the next 384, with squares
// mirrored vertically for Black so the network always "sees" its own
// king on the lower half of the board, matching White's perspective.
func Features(b *board.Board) []float32 {
	features := make([]float32, InputSize)

	stm := b.SideToMove
	opp := stm.Other()

	for t := piece.Pawn; t <= piece.King; t++ {
		typeIdx := int(t) - 1

		own := b.PieceBBs[t] & b.ColorBBs[stm]
		for own != 0 {
			s := own.Pop()
			features[featureIndex(0, typeIdx, orient(s, stm))] = 1
		}

		theirs := b.PieceBBs[t] & b.ColorBBs[opp]
		for theirs != 0 {
			s := theirs.Pop()
			features[featureIndex(1, typeIdx, orient(s, stm))] = 1
		}
	}

	return features
}

func featureIndex(relativeColor, pieceType int, s square.Square) int {
	return (relativeColor*6+pieceType)*square.N + int(s)
}

// orient mirrors s vertically when c is Black, so every position is
// fed to the network as if it were White's perspective.
func orient(s square.Square, c piece.Color) square.Square {
	if c == piece.Black {
		return square.Square(int(s) ^ 56)
	}
	return s
}
