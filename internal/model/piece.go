package model

import (
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side. Any value other than White or Black means
// the board has been corrupted, so it panics instead of guessing.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	panic(fmt.Sprintf("model: invalid color %q", string(c)))
}

// homeRow is the stored row of the color's back rank.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// pawnDir is the row delta of a forward pawn step.
func (c Color) pawnDir() int {
	if c == White {
		return -1
	}
	return 1
}

// Piece is never mutated once it sits on a board; promotion replaces it.
// A nil *Piece marks an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var fenLetters = map[PieceType]byte{
	King:   'k',
	Queen:  'q',
	Rook:   'r',
	Bishop: 'b',
	Knight: 'n',
	Pawn:   'p',
}

// fenLetter returns the FEN character: uppercase for white, lowercase for black.
func (p *Piece) fenLetter() byte {
	c := fenLetters[p.Type]
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

func pieceFromFEN(c byte) (*Piece, bool) {
	color := Black
	lower := c
	if c >= 'A' && c <= 'Z' {
		color = White
		lower = c + ('a' - 'A')
	}
	for t, l := range fenLetters {
		if l == lower {
			return &Piece{Type: t, Color: color}, true
		}
	}
	return nil, false
}

// IsPromotionPiece reports whether a pawn may become t.
func IsPromotionPiece(t PieceType) bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// ParsePromotion reads a promotion piece by name ("queen") or letter ("q").
func ParsePromotion(s string) (PieceType, error) {
	switch strings.ToLower(s) {
	case "q", "queen":
		return Queen, nil
	case "r", "rook":
		return Rook, nil
	case "b", "bishop":
		return Bishop, nil
	case "n", "knight":
		return Knight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPromotion, s)
}
