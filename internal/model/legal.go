package model

import (
	"slices"

	"golang.org/x/exp/maps"
)

// LegalMoves maps each square holding one of color's pieces to the
// destinations that do not leave color's king in check. Every candidate is
// tried on a clone, so b is never touched. Squares without a legal move are
// left out.
func LegalMoves(b *Board, color Color) map[Position][]Position {
	inCheck := IsInCheck(b, color)
	legal := make(map[Position][]Position)
	for _, from := range b.piecesOf(color) {
		piece := b.PieceAt(from)
		var targets []Position
		for _, to := range PseudoLegalMoves(b, from) {
			// castling out of check is never allowed
			if inCheck && isCastle(piece, from, to) {
				continue
			}
			// only reachable when asking about the side not to move while
			// the other king is in check
			if target := b.PieceAt(to); target != nil && target.Type == King {
				continue
			}
			probe := b.Clone()
			applyMove(probe, from, to, b.PromotionChoice)
			if IsInCheck(probe, color) {
				continue
			}
			targets = append(targets, to)
		}
		if len(targets) > 0 {
			legal[from] = targets
		}
	}
	return legal
}

// HasLegalMoves reports whether color has at least one legal move.
func HasLegalMoves(b *Board, color Color) bool {
	return len(LegalMoves(b, color)) > 0
}

// IsLegal reports whether from -> to is a legal move for the side to move.
func IsLegal(b *Board, from, to Position) bool {
	return slices.Contains(LegalMoves(b, b.ActiveColor)[from], to)
}

// SortedMoves flattens a legal-move map, ordered by source then target square
// in reading order from a8.
func SortedMoves(legal map[Position][]Position) []Move {
	sources := maps.Keys(legal)
	slices.SortFunc(sources, comparePositions)
	moves := make([]Move, 0, len(legal)*4)
	for _, from := range sources {
		targets := slices.Clone(legal[from])
		slices.SortFunc(targets, comparePositions)
		for _, to := range targets {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func comparePositions(a, b Position) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
