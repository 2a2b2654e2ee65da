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

import "github.com/chesswise/mess/internal/util"

// ComputeGradient accumulates tuner.Gradient over the current batch of
// the dataset, to be scaled and applied by Tune.
func (tuner *Tuner) ComputeGradient() {
	end := util.Min((tuner.Batch+1)*tuner.Config.BatchSize, len(tuner.Dataset))
	for i := tuner.Batch * tuner.Config.BatchSize; i < end; i++ {
		tuner.updateSingleGradient(&tuner.Dataset[i])
	}
}

func (tuner *Tuner) updateSingleGradient(entry *Entry) {
	E := entry.LinearEval(tuner.Delta)
	S := Sigmoid(tuner.K, E)
	X := (entry.result - S) * S * (1 - S)

	mgBase := X * entry.phase
	egBase := X * (1 - entry.phase)

	for _, c := range entry.coeffs {
		tuner.Gradient[c.Index][MG] += mgBase * float64(c.Count)
		tuner.Gradient[c.Index][EG] += egBase * float64(c.Count)
	}
}
