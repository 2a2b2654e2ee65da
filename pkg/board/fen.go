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

package board

import (
	"strconv"
	"strings"

	"github.com/chesswise/mess/pkg/castling"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
	"github.com/chesswise/mess/pkg/zobrist"
)

// StartFEN is the FEN of the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// New creates a *Board from the given FEN string, with every utility
// bitboard initialized and ready for move generation.
// https://www.chessprogramming.org/Forsyth-Edwards_Notation
func New(fen string) *Board {
	var b Board

	parts := strings.Fields(fen)

	b.SideToMove = piece.NewColor(parts[1])
	if b.SideToMove == piece.Black {
		b.Hash ^= zobrist.SideToMove
	}

	ranks := strings.Split(parts[0], "/")
	for rankID, rankData := range ranks {
		fileID := square.FileA
		for _, id := range rankData {
			s := square.New(fileID, square.Rank(rankID))

			if id >= '1' && id <= '8' {
				fileID += square.File(id - '0')
				continue
			}

			p := piece.NewFromString(string(id))
			b.FillSquare(s, p)
			fileID++
		}
	}

	b.CastlingRights = castling.NewRights(parts[2])
	b.Hash ^= zobrist.Castling[b.CastlingRights]

	b.EnPassantTarget = square.NewFromString(parts[3])
	if b.EnPassantTarget != square.None {
		b.Hash ^= zobrist.EnPassant[b.EnPassantTarget.File()]
	}

	if len(parts) > 4 {
		b.DrawClock, _ = strconv.Atoi(parts[4])
	}

	if len(parts) > 5 {
		b.FullMoves, _ = strconv.Atoi(parts[5])
	} else {
		b.FullMoves = 1
	}

	b.InitBitboards()

	return &b
}

// FEN returns the FEN string of the current position.
func (b *Board) FEN() string {
	var s string
	s += b.Position.FEN() + " "
	s += b.SideToMove.String() + " "
	s += b.CastlingRights.String() + " "
	s += b.EnPassantTarget.String() + " "
	s += strconv.Itoa(b.DrawClock) + " "
	s += strconv.Itoa(b.FullMoves)
	return s
}
