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

// Package zobrist implements Zobrist hashing of chess positions, used to
// incrementally maintain a 64-bit hash key for each Board that changes
// cheaply with MakeMove/UnmakeMove and serves as the key into the
// transposition and evaluation caches.
// https://www.chessprogramming.org/Zobrist_Hashing
package zobrist

import (
	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/castling"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// Key is a Zobrist hash key.
type Key uint64

// PieceSquare holds one random key per piece-square combination.
var PieceSquare [piece.N][square.N]Key

// EnPassant holds one random key per en passant target file.
var EnPassant [square.FileN]Key

// Castling holds one random key per castling-rights combination.
var Castling [castling.N]Key

// SideToMove is xor'd into the hash whenever it is black to move.
var SideToMove Key

func init() {
	var rng util.PRNG
	rng.Seed(1070372) // seed used by Stockfish for its own zobrist keys

	for p := 0; p < piece.N; p++ {
		for s := square.A8; s <= square.H1; s++ {
			PieceSquare[p][s] = Key(rng.Uint64())
		}
	}

	for f := square.FileA; f <= square.FileH; f++ {
		EnPassant[f] = Key(rng.Uint64())
	}

	for r := castling.NoCasl; r <= castling.All; r++ {
		Castling[r] = Key(rng.Uint64())
	}

	SideToMove = Key(rng.Uint64())
}
