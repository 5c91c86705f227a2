package model

import "fmt"

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// PseudoLegalMoves returns every destination the piece on from can reach by
// its movement rule alone, without asking whether its own king ends up in
// check. This is the raw generator check detection is built on; it must
// never call LegalMoves.
func PseudoLegalMoves(b *Board, from Position) []Position {
	if !boundaryCheck(from) {
		panic(fmt.Sprintf("model: move generation outside the board at %v", from))
	}
	piece := b.PieceAt(from)
	if piece == nil {
		panic(fmt.Sprintf("model: move generation requested for empty square %s", SquareName(from)))
	}
	switch piece.Type {
	case Pawn:
		return pseudoPawnMoves(b, from, piece)
	case Knight:
		return stepMoves(b, from, piece, knightDirs)
	case Bishop:
		return slideMoves(b, from, piece, bishopDirs)
	case Rook:
		return slideMoves(b, from, piece, rookDirs)
	case Queen:
		return append(slideMoves(b, from, piece, bishopDirs), slideMoves(b, from, piece, rookDirs)...)
	case King:
		return append(stepMoves(b, from, piece, kingDirs), castleMoves(b, from, piece)...)
	}
	panic(fmt.Sprintf("model: unknown piece type %q at %s", piece.Type, SquareName(from)))
}

func pseudoPawnMoves(b *Board, from Position, piece *Piece) []Position {
	pawnMoves := []Position{}
	dir := piece.Color.pawnDir()
	startRow := piece.Color.homeRow() + dir
	// en passant targets sit on the row the enemy pawn skipped
	epRow := piece.Color.Opponent().homeRow() - 2*dir

	one := Position{X: from.X, Y: from.Y + dir}
	if boundaryCheck(one) && b.PieceAt(one) == nil {
		pawnMoves = append(pawnMoves, one)
		two := Position{X: from.X, Y: from.Y + 2*dir}
		if from.Y == startRow && b.PieceAt(two) == nil {
			pawnMoves = append(pawnMoves, two)
		}
	}
	for _, dx := range []int{-1, 1} {
		target := Position{X: from.X + dx, Y: from.Y + dir}
		if !boundaryCheck(target) {
			continue
		}
		if occupant := b.PieceAt(target); occupant != nil {
			if occupant.Color != piece.Color {
				pawnMoves = append(pawnMoves, target)
			}
			continue
		}
		if ep := b.EnPassantTarget; ep != nil && *ep == target && target.Y == epRow {
			pawnMoves = append(pawnMoves, target)
		}
	}
	return pawnMoves
}

// stepMoves covers the knight and the king's one-square moves: fixed offsets
// onto empty or enemy squares.
func stepMoves(b *Board, from Position, piece *Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		targetPos := from.add(dir)
		if boundaryCheck(targetPos) && (b.PieceAt(targetPos) == nil || b.PieceAt(targetPos).Color != piece.Color) {
			moves = append(moves, targetPos)
		}
	}
	return moves
}

// slideMoves walks each ray until the edge, stopping before a friendly piece
// and on an enemy one.
func slideMoves(b *Board, from Position, piece *Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		targetPos := from.add(dir)
		for boundaryCheck(targetPos) {
			occupant := b.PieceAt(targetPos)
			if occupant == nil {
				moves = append(moves, targetPos)
			} else if occupant.Color != piece.Color {
				moves = append(moves, targetPos)
				break
			} else {
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return moves
}

// castleMoves offers the two-file king move when the right is still held and
// every square between king and rook is empty. Attacks on the squares the
// king crosses are not considered here.
func castleMoves(b *Board, from Position, piece *Piece) []Position {
	row := piece.Color.homeRow()
	if from != (Position{X: 4, Y: row}) {
		return nil
	}
	moves := []Position{}
	if b.Castling.kingside(piece.Color) && isOwnRook(b, Position{X: 7, Y: row}, piece.Color) &&
		b.Squares[row][5] == nil && b.Squares[row][6] == nil {
		moves = append(moves, Position{X: 6, Y: row})
	}
	if b.Castling.queenside(piece.Color) && isOwnRook(b, Position{X: 0, Y: row}, piece.Color) &&
		b.Squares[row][1] == nil && b.Squares[row][2] == nil && b.Squares[row][3] == nil {
		moves = append(moves, Position{X: 2, Y: row})
	}
	return moves
}

func isOwnRook(b *Board, pos Position, color Color) bool {
	p := b.PieceAt(pos)
	return p != nil && p.Type == Rook && p.Color == color
}

// isCastle reports whether a king move from -> to is a castling move.
func isCastle(piece *Piece, from, to Position) bool {
	return piece.Type == King && from.Y == to.Y && abs(to.X-from.X) == 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
