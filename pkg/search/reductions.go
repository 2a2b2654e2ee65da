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

package search

import "math/bits"

// reductions[depth][moveNumber] is the late-move-reduction amount
// applied to a quiet move searched that far into a node's move list,
// computed once at startup rather than with a log call per node.
var reductions [MaxDepth + 1][128]int

func init() {
	log := func(n int) int {
		return 63 - bits.LeadingZeros64(uint64(n))
	}

	for depth := 1; depth <= MaxDepth; depth++ {
		for moveNumber := 1; moveNumber < 128; moveNumber++ {
			reductions[depth][moveNumber] = 1 + log(depth)*log(moveNumber)/2
		}
	}
}
