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

package book

import (
	"fmt"
	"regexp"
	"strings"

	pgn "gopkg.in/freeeve/pgn.v1"

	"github.com/chesswise/mess/pkg/board"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
)

// AddPGN records every position reached by replaying the moves of
// every game in pgnText, starting from the standard starting position.
func (bk *Book) AddPGN(pgnText string) error {
	return bk.addPGNFromPosition(board.StartFEN, pgnText)
}

// AddPGNFromPosition is AddPGN starting from fen instead of the
// standard starting position, for book lines spliced onto a known
// theoretical branch.
func (bk *Book) AddPGNFromPosition(fen, pgnText string) error {
	return bk.addPGNFromPosition(fen, pgnText)
}

func (bk *Book) addPGNFromPosition(fen, pgnText string) error {
	scanner := pgn.NewPGNScanner(strings.NewReader(pgnText))

	found := false
	for scanner.Next() {
		found = true

		game, err := scanner.Scan()
		if err != nil {
			return fmt.Errorf("book: parsing pgn: %w", err)
		}

		if err := bk.addSANMoves(fen, game.Moves); err != nil {
			return err
		}
	}

	if !found {
		// Some PGN snippets in opening books are a bare movetext
		// fragment with no game-header tags; fall back to extracting
		// SAN tokens with the same pattern the game scanner itself
		// matches against, since PGNScanner expects a full game.
		return bk.addSANMoves(fen, extractSANTokens(pgnText))
	}

	return nil
}

// sanToken matches a single SAN move, optionally prefixed by its move
// number ("12." or "12...") and suffixed by check/mate/annotation marks.
var sanToken = regexp.MustCompile(`(?:\d+\.+\s*)?([KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](?:=[QRBN])?|O-O-O|O-O)[+#]?[!?]*`)

func extractSANTokens(pgnText string) []string {
	matches := sanToken.FindAllStringSubmatch(pgnText, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}

func (bk *Book) addSANMoves(fen string, sanMoves []string) error {
	b := board.New(fen)

	for _, san := range sanMoves {
		m, err := ResolveSAN(b, san)
		if err != nil {
			return err
		}

		bk.record(b.Hash, m)
		b.MakeMove(m)
	}

	return nil
}

// ResolveSAN finds the legal move in b matching the standard algebraic
// notation token san.
func ResolveSAN(b *board.Board, san string) (move.Move, error) {
	san = strings.TrimRight(san, "+#!?")

	us := b.SideToMove
	if san == "O-O" || san == "O-O-O" {
		return resolveCastle(b, us, san == "O-O-O")
	}

	groups := sanPattern.FindStringSubmatch(san)
	if groups == nil {
		return move.Null, fmt.Errorf("book: cannot parse SAN move %q", san)
	}

	pieceLetter, disambigFile, disambigRank, dest, promo := groups[1], groups[2], groups[3], groups[4], groups[6]

	pieceType := pieceTypeOf(pieceLetter)
	target := square.NewFromString(dest)

	for _, m := range b.GenerateMoves() {
		if m.FromPiece().Type() != pieceType {
			continue
		}
		if m.Target() != target {
			continue
		}
		if disambigFile != "" && m.Source().File() != square.File(disambigFile[0]-'a') {
			continue
		}
		if disambigRank != "" && m.Source().Rank() != square.RankFrom(disambigRank) {
			continue
		}
		if promo != "" && (!m.IsPromotion() || m.ToPiece().Type() != pieceTypeOf(promo)) {
			continue
		}
		if promo == "" && m.IsPromotion() && m.ToPiece().Type() != piece.Queen {
			// SAN promotions always specify the piece; a bare pawn move
			// to the back rank without "=X" is malformed, but default to
			// matching a queen promotion rather than rejecting the line.
			continue
		}

		return m, nil
	}

	return move.Null, fmt.Errorf("book: no legal move matches SAN %q in position %s", san, b.FEN())
}

var sanPattern = regexp.MustCompile(`^([KQRBN]?)([a-h]?)([1-8]?)x?([a-h][1-8])(=([QRBN]))?$`)

func pieceTypeOf(letter string) piece.Type {
	switch letter {
	case "K":
		return piece.King
	case "Q":
		return piece.Queen
	case "R":
		return piece.Rook
	case "B":
		return piece.Bishop
	case "N":
		return piece.Knight
	default:
		return piece.Pawn
	}
}

func resolveCastle(b *board.Board, us piece.Color, queenside bool) (move.Move, error) {
	for _, m := range b.GenerateMoves() {
		if m.FromPiece().Type() != piece.King {
			continue
		}

		fromFile := m.Source().File()
		toFile := m.Target().File()
		if fromFile != square.FileE {
			continue
		}

		if queenside && toFile == square.FileC {
			return m, nil
		}
		if !queenside && toFile == square.FileG {
			return m, nil
		}
	}

	return move.Null, fmt.Errorf("book: no legal castling move for side %s", us)
}
