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

package nnue

import (
	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/eval"
)

// Evaluator wraps a trained Network so it satisfies eval.Evaluator and
// can be selected by the search package the same way the classical
// evaluator is.
type Evaluator struct {
	net *Network
}

// NewEvaluator wraps net for use as a static evaluation function.
func NewEvaluator(net *Network) *Evaluator {
	return &Evaluator{net: net}
}

// Evaluate re-derives the input feature vector from b on every call
// and runs it through the network, rather than maintaining an
// incrementally updated accumulator across make/unmake.
func (e *Evaluator) Evaluate(b *board.Board) eval.Eval {
	return e.net.Forward(Features(b))
}
