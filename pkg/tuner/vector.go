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

package tuner

import (
	"math"

	"github.com/chesswise/mess/pkg/eval"
	"github.com/chesswise/mess/pkg/eval/classical"
)

// Vector holds one middle-game/end-game delta per tunable term, in the
// index space classical.Coefficients reports.
type Vector [][2]float64

// indices of the middle-game and end-game value within a Vector entry.
const (
	MG = 0
	EG = 1
)

// NewVector allocates a zeroed Vector sized for every tunable term.
func NewVector() Vector {
	return make(Vector, classical.TermsN)
}

// Commit writes delta into the classical package's live terms, rounding
// each value to the nearest integer centipawn.
func (delta Vector) Commit() {
	for i := 0; i < classical.TermsN; i++ {
		mg, eg := classical.Param(i)
		classical.SetParam(i,
			mg+eval.Eval(math.Round(delta[i][MG])),
			eg+eval.Eval(math.Round(delta[i][EG])),
		)
	}
}
