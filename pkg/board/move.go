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
	"github.com/chesswise/mess/internal/util"
	"github.com/chesswise/mess/pkg/attacks"
	"github.com/chesswise/mess/pkg/bitboard"
	"github.com/chesswise/mess/pkg/castling"
	"github.com/chesswise/mess/pkg/move"
	"github.com/chesswise/mess/pkg/piece"
	"github.com/chesswise/mess/pkg/square"
	"github.com/chesswise/mess/pkg/zobrist"
)

// MakeMove plays a pseudo-legal move m on the board, recording whatever
// state UnmakeMove will need to reverse it.
func (b *Board) MakeMove(m move.Move) {
	b.History[b.Plys] = BoardState{
		Move:            m,
		CapturedPiece:   piece.NoPiece,
		CastlingRights:  b.CastlingRights,
		EnPassantTarget: b.EnPassantTarget,
		DrawClock:       b.DrawClock,
		Hash:            b.Hash,
	}

	b.DrawClock++

	sourceSq := m.Source()
	targetSq := m.Target()
	captureSq := targetSq
	fromPiece := m.FromPiece()
	pieceType := fromPiece.Type()
	toPiece := m.ToPiece()

	isDoublePush := pieceType == piece.Pawn && util.Abs(int(targetSq)-int(sourceSq)) == 16
	isCastling := pieceType == piece.King && util.Abs(int(targetSq)-int(sourceSq)) == 2
	isEnPassant := pieceType == piece.Pawn && targetSq == b.EnPassantTarget
	isCapture := m.IsCapture()

	if pieceType == piece.Pawn {
		b.DrawClock = 0
	}

	if b.EnPassantTarget != square.None {
		b.Hash ^= zobrist.EnPassant[b.EnPassantTarget.File()]
	}
	b.EnPassantTarget = square.None

	switch {
	case isDoublePush:
		target := sourceSq
		if b.SideToMove == piece.White {
			target -= 8
		} else {
			target += 8
		}

		if b.Pawns(b.SideToMove.Other())&attacks.Pawn[b.SideToMove][target] != bitboard.Empty {
			b.EnPassantTarget = target
			b.Hash ^= zobrist.EnPassant[b.EnPassantTarget.File()]
		}

	case isCastling:
		rookInfo := castling.Rooks[targetSq]
		b.ClearSquare(rookInfo.From)
		b.FillSquare(rookInfo.To, rookInfo.RookType)

	case isEnPassant:
		if b.SideToMove == piece.White {
			captureSq += 8
		} else {
			captureSq -= 8
		}
		fallthrough

	case isCapture:
		b.DrawClock = 0
		b.History[b.Plys].CapturedPiece = b.Position[captureSq]
		b.ClearSquare(captureSq)
	}

	b.ClearSquare(sourceSq)
	b.FillSquare(targetSq, toPiece)

	b.Hash ^= zobrist.Castling[b.CastlingRights]
	b.CastlingRights &^= castling.RightUpdates[sourceSq]
	b.CastlingRights &^= castling.RightUpdates[targetSq]
	b.Hash ^= zobrist.Castling[b.CastlingRights]

	b.Plys++

	if b.SideToMove = b.SideToMove.Other(); b.SideToMove == piece.White {
		b.FullMoves++
	}
	b.Hash ^= zobrist.SideToMove

	b.InitBitboards()
}

// UnmakeMove reverses the most recent MakeMove call.
func (b *Board) UnmakeMove() {
	if b.SideToMove = b.SideToMove.Other(); b.SideToMove == piece.Black {
		b.FullMoves--
	}

	b.Plys--

	state := b.History[b.Plys]
	b.EnPassantTarget = state.EnPassantTarget
	b.DrawClock = state.DrawClock
	b.CastlingRights = state.CastlingRights

	m := state.Move

	sourceSq := m.Source()
	targetSq := m.Target()
	captureSq := targetSq
	fromPiece := m.FromPiece()
	pieceType := fromPiece.Type()
	capturedPiece := state.CapturedPiece

	isCastling := pieceType == piece.King && util.Abs(int(targetSq)-int(sourceSq)) == 2
	isEnPassant := pieceType == piece.Pawn && targetSq == b.EnPassantTarget
	isCapture := m.IsCapture()

	b.ClearSquare(targetSq)
	b.FillSquare(sourceSq, fromPiece)

	switch {
	case isCastling:
		rookInfo := castling.Rooks[targetSq]
		b.ClearSquare(rookInfo.To)
		b.FillSquare(rookInfo.From, rookInfo.RookType)

	case isEnPassant:
		if b.SideToMove == piece.White {
			captureSq += 8
		} else {
			captureSq -= 8
		}
		fallthrough

	case isCapture:
		b.FillSquare(captureSq, capturedPiece)
	}

	b.Hash = state.Hash

	b.InitBitboards()
}

// GenerateMoves returns every pseudo-legal move available to the side
// to move in the current position. King moves, en passant captures, and
// castling are fully legal as generated; other moves are legal modulo
// the pin-masks already applied by movesOf/genPawnMoves.
func (b *Board) GenerateMoves() []move.Move {
	moves := make([]move.Move, 0, 48)

	us := b.SideToMove
	friends := b.Friends

	{
		kingSq := b.Kings[us]
		king := piece.New(piece.King, us)
		for toBB := attacks.King[kingSq] &^ friends &^ b.SeenByEnemy; toBB != bitboard.Empty; {
			to := toBB.Pop()
			moves = append(moves, move.New(kingSq, to, king, b.Occupied.IsSet(to)))
		}
	}

	switch b.CheckN {
	case 0:
		b.genCastlingMoves(&moves)
	case 2:
		return moves
	}

	for pType := piece.Knight; pType <= piece.Queen; pType++ {
		p := piece.New(pType, us)
		for fromBB := b.PieceBBs[pType] & friends; fromBB != bitboard.Empty; {
			from := fromBB.Pop()

			for toBB := b.movesOf(pType, from) & b.Target; toBB != bitboard.Empty; {
				to := toBB.Pop()
				moves = append(moves, move.New(from, to, p, b.Occupied.IsSet(to)))
			}
		}
	}

	b.genPawnMoves(&moves)

	return moves
}

func (b *Board) genPawnMoves(moveList *[]move.Move) {
	us := b.SideToMove
	them := us.Other()

	enemies := b.Enemies

	var down, left, right square.Square
	var promotionRank bitboard.Board
	var enPassantRank bitboard.Board
	var doublePushRank bitboard.Board
	var p piece.Piece

	left = -1
	right = 1

	switch us {
	case piece.White:
		down = 8
		promotionRank = bitboard.Rank8
		enPassantRank = bitboard.Rank5
		doublePushRank = bitboard.Rank3
		p = piece.WhitePawn

	case piece.Black:
		down = -8
		promotionRank = bitboard.Rank1
		enPassantRank = bitboard.Rank4
		doublePushRank = bitboard.Rank6
		p = piece.BlackPawn
	}

	pushTarget := b.CheckMask &^ b.Occupied
	captureTarget := enemies & b.CheckMask

	pawns := b.Pawns(us)

	pawnsThatAttack := pawns &^ b.PinnedHV

	unpinnedPawnsThatAttack := pawnsThatAttack &^ b.PinnedD
	pinnedPawnsThatAttack := pawnsThatAttack & b.PinnedD

	pawnAttacksL := attacks.PawnsLeft(unpinnedPawnsThatAttack, us) & captureTarget
	pawnAttacksL |= attacks.PawnsLeft(pinnedPawnsThatAttack, us) & captureTarget & b.PinnedD

	pawnAttacksR := attacks.PawnsRight(unpinnedPawnsThatAttack, us) & captureTarget
	pawnAttacksR |= attacks.PawnsRight(pinnedPawnsThatAttack, us) & captureTarget & b.PinnedD

	simplePawnAttacksL := pawnAttacksL &^ promotionRank
	simplePawnAttacksR := pawnAttacksR &^ promotionRank

	for simplePawnAttacksL != bitboard.Empty {
		to := simplePawnAttacksL.Pop()
		from := to + down + right
		*moveList = append(*moveList, move.New(from, to, p, true))
	}

	for simplePawnAttacksR != bitboard.Empty {
		to := simplePawnAttacksR.Pop()
		from := to + down + left
		*moveList = append(*moveList, move.New(from, to, p, true))
	}

	promotionPawnAttacksL := pawnAttacksL & promotionRank
	promotionPawnAttacksR := pawnAttacksR & promotionRank

	for promotionPawnAttacksL != bitboard.Empty {
		to := promotionPawnAttacksL.Pop()
		from := to + down + right
		addPromotions(moveList, move.New(from, to, p, true), us)
	}

	for promotionPawnAttacksR != bitboard.Empty {
		to := promotionPawnAttacksR.Pop()
		from := to + down + left
		addPromotions(moveList, move.New(from, to, p, true), us)
	}

	pawnsThatPush := pawns &^ b.PinnedD

	unpinnedPawnsThatPush := pawnsThatPush &^ b.PinnedHV
	pinnedPawnsThatPush := pawnsThatPush & b.PinnedHV

	pawnPushesSingleUnpinned := attacks.PawnPush(unpinnedPawnsThatPush, us)
	pawnPushesSinglePinned := attacks.PawnPush(pinnedPawnsThatPush, us) & b.PinnedHV

	pawnPushesSingle := (pawnPushesSinglePinned | pawnPushesSingleUnpinned) &^ b.Occupied

	pawnPushesDouble := attacks.PawnPush(pawnPushesSingle&doublePushRank, us) & pushTarget

	pawnPushesSingle &= pushTarget

	simplePawnPushes := pawnPushesSingle &^ promotionRank

	for simplePawnPushes != bitboard.Empty {
		to := simplePawnPushes.Pop()
		from := to + down
		*moveList = append(*moveList, move.New(from, to, p, false))
	}

	for pawnPushesDouble != bitboard.Empty {
		to := pawnPushesDouble.Pop()
		from := to + down + down
		*moveList = append(*moveList, move.New(from, to, p, false))
	}

	promotionPawnPushes := pawnPushesSingle & promotionRank

	for promotionPawnPushes != bitboard.Empty {
		to := promotionPawnPushes.Pop()
		from := to + down
		addPromotions(moveList, move.New(from, to, p, false), us)
	}

	if b.EnPassantTarget != square.None {
		epPawn := b.EnPassantTarget + down

		epMask := bitboard.Squares[b.EnPassantTarget] | bitboard.Squares[epPawn]
		if b.CheckMask&epMask == bitboard.Empty {
			return
		}

		kingSq := b.Kings[us]
		kingMask := bitboard.Squares[kingSq] & enPassantRank

		enemyRooksQueens := (b.Rooks(them) | b.Queens(them)) & enPassantRank

		isPossiblePin := kingMask != bitboard.Empty && enemyRooksQueens != bitboard.Empty

		for fromBB := attacks.Pawn[them][b.EnPassantTarget] & pawnsThatAttack; fromBB != bitboard.Empty; {
			from := fromBB.Pop()

			if b.PinnedD.IsSet(from) && !b.PinnedD.IsSet(b.EnPassantTarget) {
				continue
			}

			pawnsMask := bitboard.Squares[from] | bitboard.Squares[epPawn]
			if isPossiblePin && attacks.Rook(kingSq, b.Occupied&^pawnsMask)&enemyRooksQueens != bitboard.Empty {
				break
			}

			*moveList = append(*moveList, move.New(from, b.EnPassantTarget, p, true))
		}
	}
}

func (b *Board) genCastlingMoves(moveList *[]move.Move) {
	switch b.SideToMove {
	case piece.White:
		if b.CastlingRights&castling.WhiteA == castling.NoCasl ||
			b.IsAttacked(square.E1, piece.Black) {
			break
		}

		if b.CastlingRights&castling.WhiteK != 0 &&
			(b.Occupied|b.SeenByEnemy)&bitboard.F1G1 == bitboard.Empty {
			*moveList = append(*moveList, move.New(square.E1, square.G1, piece.WhiteKing, false))
		}

		if b.CastlingRights&castling.WhiteQ != 0 &&
			b.Occupied&bitboard.B1C1D1 == bitboard.Empty &&
			b.SeenByEnemy&bitboard.C1D1 == bitboard.Empty {
			*moveList = append(*moveList, move.New(square.E1, square.C1, piece.WhiteKing, false))
		}

	case piece.Black:
		if b.CastlingRights&castling.BlackA == castling.NoCasl ||
			b.IsAttacked(square.E8, piece.White) {
			break
		}

		if b.CastlingRights&castling.BlackK != 0 &&
			(b.Occupied|b.SeenByEnemy)&bitboard.F8G8 == bitboard.Empty {
			*moveList = append(*moveList, move.New(square.E8, square.G8, piece.BlackKing, false))
		}

		if b.CastlingRights&castling.BlackQ != 0 &&
			b.Occupied&bitboard.B8C8D8 == bitboard.Empty &&
			b.SeenByEnemy&bitboard.C8D8 == bitboard.Empty {
			*moveList = append(*moveList, move.New(square.E8, square.C8, piece.BlackKing, false))
		}
	}
}

// movesOf returns the destination squares of the piece of type p on s,
// restricted by any pin it is subject to.
func (b *Board) movesOf(p piece.Type, s square.Square) bitboard.Board {
	switch p {
	case piece.Knight:
		return b.knightMoves(s)
	case piece.Bishop:
		return b.bishopMoves(s)
	case piece.Rook:
		return b.rookMoves(s)
	case piece.Queen:
		return b.bishopMoves(s) | b.rookMoves(s)
	default:
		panic("board: bad piece type")
	}
}

func (b *Board) knightMoves(s square.Square) bitboard.Board {
	if b.PinnedD.IsSet(s) || b.PinnedHV.IsSet(s) {
		return bitboard.Empty
	}

	return attacks.Knight[s]
}

func (b *Board) bishopMoves(s square.Square) bitboard.Board {
	switch {
	case b.PinnedHV.IsSet(s):
		return bitboard.Empty
	case b.PinnedD.IsSet(s):
		return attacks.Bishop(s, b.Occupied) & b.PinnedD
	default:
		return attacks.Bishop(s, b.Occupied)
	}
}

func (b *Board) rookMoves(s square.Square) bitboard.Board {
	switch {
	case b.PinnedD.IsSet(s):
		return bitboard.Empty
	case b.PinnedHV.IsSet(s):
		return attacks.Rook(s, b.Occupied) & b.PinnedHV
	default:
		return attacks.Rook(s, b.Occupied)
	}
}

func addPromotions(moveList *[]move.Move, m move.Move, c piece.Color) {
	*moveList = append(*moveList,
		m.SetPromotion(piece.New(piece.Queen, c)),
		m.SetPromotion(piece.New(piece.Rook, c)),
		m.SetPromotion(piece.New(piece.Bishop, c)),
		m.SetPromotion(piece.New(piece.Knight, c)),
	)
}

// NewMove builds the Move that plays the piece on from to to, inferring
// whether it is a capture from the current position. It does not infer
// promotions; callers promoting a pawn must call SetPromotion.
func (b *Board) NewMove(from, to square.Square) move.Move {
	p := b.Position[from]
	return move.New(from, to, p, b.Position[to] != piece.NoPiece)
}
