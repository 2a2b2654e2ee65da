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

package square

// File represents a file on the chessboard.
type File int8

// constants representing every file on the chessboard.
const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

// FileN is the number of files.
const FileN = 8

// String converts a File into its string representation.
func (f File) String() string {
	const fileToStr = "abcdefgh"
	return string(fileToStr[f])
}

// fileFrom creates a File from the given single-character file id.
func fileFrom(id string) File {
	switch id {
	case "a":
		return FileA
	case "b":
		return FileB
	case "c":
		return FileC
	case "d":
		return FileD
	case "e":
		return FileE
	case "f":
		return FileF
	case "g":
		return FileG
	case "h":
		return FileH
	default:
		panic("square: invalid file identifier " + id)
	}
}

// Rank represents a rank on the chessboard.
type Rank int8

// constants representing every rank on the chessboard.
const (
	Rank8 Rank = iota
	Rank7
	Rank6
	Rank5
	Rank4
	Rank3
	Rank2
	Rank1
)

// RankN is the number of ranks.
const RankN = 8

// String converts a Rank into its string representation.
func (r Rank) String() string {
	const rankToStr = "87654321"
	return string(rankToStr[r])
}

// RankFrom creates a Rank from the given single-character rank id.
func RankFrom(id string) Rank {
	return Rank1 - Rank(id[0]-'1')
}
