package model

import (
	"strings"
)

type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func (c CastlingRights) kingside(color Color) bool {
	if color == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

func (c CastlingRights) queenside(color Color) bool {
	if color == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

func (c *CastlingRights) clear(color Color) {
	if color == White {
		c.WhiteKingside, c.WhiteQueenside = false, false
		return
	}
	c.BlackKingside, c.BlackQueenside = false, false
}

// clearCorner drops the right tied to the rook that starts on pos, if any.
func (c *CastlingRights) clearCorner(pos Position) {
	switch pos {
	case Position{X: 7, Y: 7}:
		c.WhiteKingside = false
	case Position{X: 0, Y: 7}:
		c.WhiteQueenside = false
	case Position{X: 7, Y: 0}:
		c.BlackKingside = false
	case Position{X: 0, Y: 0}:
		c.BlackQueenside = false
	}
}

// Board is the full position: grid plus the state FEN carries, and the piece
// a pawn turns into when it reaches the last rank.
type Board struct {
	Squares         [8][8]*Piece   `json:"squares"`
	ActiveColor     Color          `json:"activeColor"`
	Castling        CastlingRights `json:"castling"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
	HalfmoveClock   int            `json:"halfmoveClock"`
	FullmoveNumber  int            `json:"fullmoveNumber"`
	PromotionChoice PieceType      `json:"promotionChoice"`
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	board := &Board{
		ActiveColor: White,
		Castling: CastlingRights{
			WhiteKingside:  true,
			WhiteQueenside: true,
			BlackKingside:  true,
			BlackQueenside: true,
		},
		FullmoveNumber:  1,
		PromotionChoice: Queen,
	}
	for x := 0; x < 8; x++ {
		board.Squares[0][x] = &Piece{Type: backRank[x], Color: Black}
		board.Squares[1][x] = &Piece{Type: Pawn, Color: Black}
		board.Squares[6][x] = &Piece{Type: Pawn, Color: White}
		board.Squares[7][x] = &Piece{Type: backRank[x], Color: White}
	}
	return board
}

// Clone returns an independent copy. Pieces are shared because they are
// never modified in place.
func (b *Board) Clone() *Board {
	c := *b
	if b.EnPassantTarget != nil {
		ep := *b.EnPassantTarget
		c.EnPassantTarget = &ep
	}
	return &c
}

func (b *Board) PieceAt(pos Position) *Piece {
	return b.Squares[pos.Y][pos.X]
}

func (b *Board) set(pos Position, piece *Piece) {
	b.Squares[pos.Y][pos.X] = piece
}

func (b *Board) findKing(color Color) (Position, bool) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := b.Squares[y][x]
			if p != nil && p.Type == King && p.Color == color {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

// piecesOf lists the squares holding pieces of color, top row first.
func (b *Board) piecesOf(color Color) []Position {
	positions := []Position{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b.Squares[y][x] != nil && b.Squares[y][x].Color == color {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

// String draws the board with rank 8 on top, for logs and test failures.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		sb.WriteByte(byte('8' - y))
		sb.WriteByte(' ')
		for x := 0; x < 8; x++ {
			if p := b.Squares[y][x]; p != nil {
				sb.WriteByte(p.fenLetter())
			} else {
				sb.WriteByte('.')
			}
			if x < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
