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

// Command datagen walks a directory of PGN game archives, replaying
// every game and running a shallow, quiet-position search at each ply
// to produce a tuner dataset: one "[result] fen" line per quiet,
// non-capturing, non-checking position, labeled with the game's
// eventual result.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notnil/chess"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/cache"
	"github.com/chesswise/mess/pkg/eval/classical"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/search"
	"github.com/chesswise/mess/pkg/search/tt"
	"github.com/chesswise/mess/pkg/square"
)

func main() {
	root := "./data"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	c := cache.New()
	table := tt.NewTable(256)
	ctx := search.NewContext(board.New(board.StartFEN), classical.NewEvaluator(), c, table)

	limits := search.Limits{Depth: 7}

	fenCount := 0
	start := time.Now()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".pgn") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		scanner := chess.NewScanner(f)
		for scanner.Scan() {
			game := scanner.Next()

			var result string
			switch game.GetTagPair("Result").Value {
			case "1-0":
				result = "[1.0]"
			case "0-1":
				result = "[0.0]"
			case "1/2-1/2":
				result = "[0.5]"
			default:
				continue
			}

			moves := game.Moves()
			chessboard := board.New(board.StartFEN)

			for i, gameMove := range moves {
				if i == len(moves)-1 {
					// the last move of a recorded game is often the one
					// that actually delivers mate or is answered by a
					// resignation; neither position is representative
					// of a quiet evaluation, so it's dropped.
					break
				}

				boardMove := toBoardMove(chessboard, gameMove)
				chessboard.MakeMove(boardMove)

				if chessboard.IsInCheck(chessboard.SideToMove) {
					continue
				}

				ctx.Board = chessboard
				pv, _ := ctx.Search(limits, nil)

				bestMove := pv.Move(0)
				if bestMove == move.Null || bestMove.IsCapture() || bestMove.IsPromotion() {
					// the position isn't quiet: skip it rather than train
					// the evaluator on a tactical position it was never
					// meant to statically judge.
					continue
				}

				fmt.Fprintln(out, result, chessboard.FEN())
				fenCount++
			}

			fmt.Fprintf(os.Stderr, "datagen: %d fens generated (%d fens/s)\n",
				fenCount, fenCount/(int(time.Since(start).Seconds())+1))
		}

		return nil
	})

	if err != nil {
		fmt.Fprintln(os.Stderr, "datagen:", err)
		os.Exit(1)
	}
}

// toBoardMove translates a notnil/chess move, whose squares are
// indexed a1=0..h8=63 rank-major from White's first rank, into this
// engine's own square numbering and move representation.
func toBoardMove(b *board.Board, m *chess.Move) move.Move {
	source := convertSquare(m.S1())
	target := convertSquare(m.S2())

	boardMove := b.NewMove(source, target)

	switch m.Promo() {
	case chess.Knight:
		boardMove = boardMove.SetPromotion(piece.New(piece.Knight, b.SideToMove))
	case chess.Bishop:
		boardMove = boardMove.SetPromotion(piece.New(piece.Bishop, b.SideToMove))
	case chess.Rook:
		boardMove = boardMove.SetPromotion(piece.New(piece.Rook, b.SideToMove))
	case chess.Queen:
		boardMove = boardMove.SetPromotion(piece.New(piece.Queen, b.SideToMove))
	}

	return boardMove
}

func convertSquare(s chess.Square) square.Square {
	return square.New(square.File(int(s)%8), 7-square.Rank(int(s)/8))
}
