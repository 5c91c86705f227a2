package model

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusInProgress         Status = "in_progress"
	StatusCheckmateWhiteWins Status = "checkmate_white_wins"
	StatusCheckmateBlackWins Status = "checkmate_black_wins"
	StatusStalemate          Status = "stalemate"
	StatusDrawFiftyMove      Status = "draw_fifty_move"
)

// FiftyMoveLimit is the halfmove clock value at which the game is drawn.
const FiftyMoveLimit = 100

func (s Status) IsOver() bool {
	return s != StatusInProgress
}

// Game is a single game driven only through MakeMove. A rejected move leaves
// it exactly as it was. Game is not safe for concurrent use.
type Game struct {
	board       *Board
	whiteCheck  bool
	blackCheck  bool
	status      Status
	moveHistory []Ply
}

// NewGame starts from the standard position.
func NewGame() *Game {
	return newGame(NewBoard())
}

// NewGameFromFEN starts from an arbitrary position, which may already be over.
func NewGameFromFEN(fen string) (*Game, error) {
	board, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(board), nil
}

func newGame(board *Board) *Game {
	g := &Game{
		board:       board,
		moveHistory: make([]Ply, 0),
	}
	g.refresh()
	return g
}

// refresh recomputes both check flags and the status.
func (g *Game) refresh() {
	g.whiteCheck = IsInCheck(g.board, White)
	g.blackCheck = IsInCheck(g.board, Black)
	g.status = g.evaluateStatus()
}

func (g *Game) evaluateStatus() Status {
	if g.board.HalfmoveClock >= FiftyMoveLimit {
		return StatusDrawFiftyMove
	}
	if !HasLegalMoves(g.board, White) {
		if g.whiteCheck {
			return StatusCheckmateBlackWins
		}
		return StatusStalemate
	}
	if !HasLegalMoves(g.board, Black) {
		if g.blackCheck {
			return StatusCheckmateWhiteWins
		}
		return StatusStalemate
	}
	return StatusInProgress
}

// MakeMove plays from -> to for the side to move. It reports false, leaving
// the game untouched, when the move is not legal or the game is over.
func (g *Game) MakeMove(from, to Position) bool {
	return g.makeMove(from, to, g.board.PromotionChoice)
}

// MakeMoveWithPromotion is MakeMove with the promotion piece chosen for this
// move only; the configured default is left as it is.
func (g *Game) MakeMoveWithPromotion(from, to Position, promotion PieceType) (bool, error) {
	if !IsPromotionPiece(promotion) {
		return false, fmt.Errorf("%w: %q", ErrInvalidPromotion, promotion)
	}
	return g.makeMove(from, to, promotion), nil
}

// MakeMoveAlgebraic is MakeMove for square names such as "e2" and "e4".
// Unreadable names are errors; illegal moves are a false result.
func (g *Game) MakeMoveAlgebraic(from, to string) (bool, error) {
	src, err := ParseSquare(from)
	if err != nil {
		return false, err
	}
	dst, err := ParseSquare(to)
	if err != nil {
		return false, err
	}
	return g.MakeMove(src, dst), nil
}

func (g *Game) makeMove(from, to Position, promotion PieceType) bool {
	if g.status.IsOver() || !boundaryCheck(from) || !boundaryCheck(to) {
		return false
	}
	legal := LegalMoves(g.board, g.board.ActiveColor)
	if !slices.Contains(legal[from], to) {
		return false
	}
	next := g.board.Clone()
	ply := applyMove(next, from, to, promotion)
	g.board = next
	g.moveHistory = append(g.moveHistory, ply)
	g.refresh()
	return true
}

// SetPromotion changes the piece pawns promote to. Anything other than a
// bishop, knight, rook or queen is refused and the old choice kept.
func (g *Game) SetPromotion(t PieceType) bool {
	if !IsPromotionPiece(t) {
		return false
	}
	g.board.PromotionChoice = t
	return true
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) InCheck(color Color) bool {
	if color == White {
		return g.whiteCheck
	}
	return g.blackCheck
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

func (g *Game) ActiveColor() Color {
	return g.board.ActiveColor
}

func (g *Game) FEN() string {
	return g.board.FEN()
}

// LegalMoves returns the legal moves of the side to move, or none once the
// game is over.
func (g *Game) LegalMoves() map[Position][]Position {
	if g.status.IsOver() {
		return map[Position][]Position{}
	}
	return LegalMoves(g.board, g.board.ActiveColor)
}

func (g *Game) History() []Ply {
	return slices.Clone(g.moveHistory)
}
