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

package classical

import "github.com/chesswise/mess/pkg/eval"

// S packs a middle-game and end-game evaluation into a single Score.
func S(mg, eg eval.Eval) Score {
	return Score(uint64(eg)<<32) + Score(mg)
}

// Score packs a tapered (middle-game, end-game) evaluation pair into a
// single int64, so every term is computed and summed once instead of
// twice. https://www.chessprogramming.org/Tapered_Eval
type Score int64

// MG returns the middle-game half of the score.
func (s Score) MG() eval.Eval {
	return eval.Eval(int32(uint32(uint64(s))))
}

// EG returns the end-game half of the score.
func (s Score) EG() eval.Eval {
	return eval.Eval(int32(uint32(uint64(s+(1<<31)) >> 32)))
}
