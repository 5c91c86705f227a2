package model

import "fmt"

// Apply plays from -> to on b, promoting to b.PromotionChoice. The move must
// come from LegalMoves for the side to move; nothing is re-validated here.
func (b *Board) Apply(from, to Position) Ply {
	return applyMove(b, from, to, b.PromotionChoice)
}

func applyMove(b *Board, from, to Position, promotion PieceType) Ply {
	piece := b.PieceAt(from)
	if piece == nil {
		panic(fmt.Sprintf("model: no piece to move on %s", SquareName(from)))
	}
	captured := b.PieceAt(to)
	if captured != nil && captured.Type == King {
		panic(fmt.Sprintf("model: %s king captured on %s\n%s", captured.Color, SquareName(to), b))
	}
	if isEnPassantCapture(b, piece, from, to) {
		victim := b.PieceAt(Position{X: to.X, Y: from.Y})
		if victim == nil || victim.Type != Pawn || victim.Color == piece.Color {
			panic(fmt.Sprintf("model: en passant on %s does not take an enemy pawn\n%s", SquareName(to), b))
		}
	}
	ply := Ply{
		Piece:         *piece,
		From:          from,
		To:            to,
		CapturedPiece: captured,
	}

	// castling rights only ever go away
	if piece.Type == King {
		b.Castling.clear(piece.Color)
	}
	if piece.Type == Rook {
		b.Castling.clearCorner(from)
	}
	b.Castling.clearCorner(to)

	// pawn specials; every other move clears the en passant target
	ep := b.EnPassantTarget
	b.EnPassantTarget = nil
	if piece.Type == Pawn {
		ply = handleEnPassant(b, from, to, ep, ply)
	}

	b.set(to, piece)
	b.set(from, nil)

	if piece.Type == Pawn && to.Y == piece.Color.Opponent().homeRow() {
		if !IsPromotionPiece(promotion) {
			promotion = Queen
		}
		b.set(to, &Piece{Type: promotion, Color: piece.Color})
		ply.Promotion = promotion
	}

	if ply.CapturedPiece != nil || piece.Type == Pawn {
		b.HalfmoveClock = 0
	} else {
		b.HalfmoveClock++
	}

	if isCastle(piece, from, to) {
		ply = handleCastle(b, from, to, ply)
	}

	if piece.Color == Black {
		b.FullmoveNumber++
	}
	b.ActiveColor = piece.Color.Opponent()
	return ply
}

// handleEnPassant marks the skipped square after a double push and removes
// the bypassed pawn on an en passant capture. It runs before the pawn lands.
func handleEnPassant(b *Board, from, to Position, ep *Position, ply Ply) Ply {
	switch to.Y - from.Y {
	case 2, -2:
		b.EnPassantTarget = &Position{X: from.X, Y: (from.Y + to.Y) / 2}
		return ply
	}
	if ep != nil && *ep == to && from.X != to.X && b.PieceAt(to) == nil {
		// the captured pawn sits beside the capturer, not on the target
		victim := Position{X: to.X, Y: from.Y}
		ply.CapturedPiece = b.PieceAt(victim)
		ply.EnPassant = true
		b.set(victim, nil)
	}
	return ply
}

func isEnPassantCapture(b *Board, piece *Piece, from, to Position) bool {
	ep := b.EnPassantTarget
	return piece.Type == Pawn && ep != nil && *ep == to && from.X != to.X && b.PieceAt(to) == nil
}

// handleCastle moves the rook next to the king's new square. The king itself
// has already been placed.
func handleCastle(b *Board, from, to Position, ply Ply) Ply {
	rookFrom := Position{X: 7, Y: from.Y}
	rookTo := Position{X: 5, Y: from.Y}
	if to.X < from.X {
		rookFrom = Position{X: 0, Y: from.Y}
		rookTo = Position{X: 3, Y: from.Y}
	}
	rook := b.PieceAt(rookFrom)
	b.set(rookFrom, nil)
	b.set(rookTo, rook)
	ply.CastleRookMove = &CastleRookMove{From: rookFrom, To: rookTo}
	return ply
}
