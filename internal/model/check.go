package model

import "fmt"

// IsInCheck reports whether any opposing piece could move onto color's king
// using the raw generator.
func IsInCheck(b *Board, color Color) bool {
	if _, ok := b.findKing(color); !ok {
		panic(fmt.Sprintf("model: no %s king on the board\n%s", color, b))
	}
	for _, from := range b.piecesOf(color.Opponent()) {
		for _, to := range PseudoLegalMoves(b, from) {
			target := b.PieceAt(to)
			if target != nil && target.Type == King && target.Color == color {
				return true
			}
		}
	}
	return false
}
