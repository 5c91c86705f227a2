package model

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a Board from a six-field FEN string. Errors name the field
// that could not be read. Positions that cannot arise in a game the engine
// would accept (missing kings, pawns on a back rank, the side that just
// moved still in check) are rejected as well.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: need 6 fields, got %d", ErrInvalidFEN, len(parts))
	}

	board := &Board{PromotionChoice: Queen}

	if err := parsePiecePlacement(board, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		board.ActiveColor = White
	case "b":
		board.ActiveColor = Black
	default:
		return nil, fmt.Errorf("%w: active color %q is not w or b", ErrInvalidFEN, parts[1])
	}

	if err := parseCastlingRights(board, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		ep, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant field: %w", ErrInvalidFEN, err)
		}
		opp := board.ActiveColor.Opponent()
		if ep.Y != opp.homeRow()+2*opp.pawnDir() {
			return nil, fmt.Errorf("%w: en passant square %s is not on the rank a %s pawn skips",
				ErrInvalidFEN, parts[3], opp)
		}
		if err := checkEnPassantTarget(board, ep, opp); err != nil {
			return nil, err
		}
		board.EnPassantTarget = &ep
	}

	hmc, err := strconv.Atoi(parts[4])
	if err != nil || hmc < 0 {
		return nil, fmt.Errorf("%w: halfmove clock %q is not a non-negative integer", ErrInvalidFEN, parts[4])
	}
	board.HalfmoveClock = hmc

	fmn, err := strconv.Atoi(parts[5])
	if err != nil || fmn < 1 {
		return nil, fmt.Errorf("%w: fullmove number %q is not a positive integer", ErrInvalidFEN, parts[5])
	}
	board.FullmoveNumber = fmn

	if err := validatePosition(board); err != nil {
		return nil, err
	}
	return board, nil
}

func parsePiecePlacement(board *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: piece placement needs 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for y, rank := range ranks {
		x := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				x += int(c - '0')
				continue
			}
			piece, ok := pieceFromFEN(c)
			if !ok {
				return fmt.Errorf("%w: unknown piece %q on rank %d", ErrInvalidFEN, c, 8-y)
			}
			if x > 7 {
				return fmt.Errorf("%w: rank %d describes more than 8 files", ErrInvalidFEN, 8-y)
			}
			board.Squares[y][x] = piece
			x++
		}
		if x != 8 {
			return fmt.Errorf("%w: rank %d describes %d files, want 8", ErrInvalidFEN, 8-y, x)
		}
	}
	return nil
}

func parseCastlingRights(board *Board, field string) error {
	if field == "-" {
		return nil
	}
	// rights must appear in KQkq order without repeats
	const order = "KQkq"
	next := 0
	for i := 0; i < len(field); i++ {
		idx := strings.IndexByte(order[next:], field[i])
		if idx < 0 {
			return fmt.Errorf("%w: castling rights %q must be a subset of KQkq in that order, or -", ErrInvalidFEN, field)
		}
		switch order[next+idx] {
		case 'K':
			board.Castling.WhiteKingside = true
		case 'Q':
			board.Castling.WhiteQueenside = true
		case 'k':
			board.Castling.BlackKingside = true
		case 'q':
			board.Castling.BlackQueenside = true
		}
		next += idx + 1
	}
	return nil
}

// checkEnPassantTarget requires the double push that would have produced ep:
// mover's pawn just past ep, with ep and the pawn's origin square empty.
func checkEnPassantTarget(board *Board, ep Position, mover Color) error {
	pawn := board.PieceAt(Position{X: ep.X, Y: ep.Y + mover.pawnDir()})
	origin := Position{X: ep.X, Y: ep.Y - mover.pawnDir()}
	if pawn == nil || pawn.Type != Pawn || pawn.Color != mover {
		return fmt.Errorf("%w: en passant square %s has no %s pawn in front of it",
			ErrInvalidFEN, SquareName(ep), mover)
	}
	if board.PieceAt(ep) != nil || board.PieceAt(origin) != nil {
		return fmt.Errorf("%w: en passant square %s or %s is occupied",
			ErrInvalidFEN, SquareName(ep), SquareName(origin))
	}
	return nil
}

func validatePosition(board *Board) error {
	kings := map[Color]int{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := board.Squares[y][x]
			if p == nil {
				continue
			}
			if p.Type == King {
				kings[p.Color]++
			}
			if p.Type == Pawn && (y == 0 || y == 7) {
				return fmt.Errorf("%w: pawn on back rank square %s", ErrInvalidFEN, SquareName(Position{X: x, Y: y}))
			}
		}
	}
	for _, color := range []Color{White, Black} {
		if kings[color] != 1 {
			return fmt.Errorf("%w: want exactly one %s king, got %d", ErrInvalidFEN, color, kings[color])
		}
	}
	if IsInCheck(board, board.ActiveColor.Opponent()) {
		return fmt.Errorf("%w: %s is in check but it is %s to move", ErrInvalidFEN, board.ActiveColor.Opponent(), board.ActiveColor)
	}
	return nil
}

// FEN serializes b. ParseFEN(b.FEN()) reproduces b except for the promotion
// choice, which FEN does not carry.
func (b *Board) FEN() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			p := b.Squares[y][x]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.fenLetter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if b.ActiveColor == Black {
		side = "b"
	}

	castling := ""
	if b.Castling.WhiteKingside {
		castling += "K"
	}
	if b.Castling.WhiteQueenside {
		castling += "Q"
	}
	if b.Castling.BlackKingside {
		castling += "k"
	}
	if b.Castling.BlackQueenside {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}

	ep := "-"
	if b.EnPassantTarget != nil {
		ep = SquareName(*b.EnPassantTarget)
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), side, castling, ep, b.HalfmoveClock, b.FullmoveNumber)
}
