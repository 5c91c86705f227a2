package model

import (
	"fmt"
)

// Position is a board coordinate. X is the file (0 = a) and Y is the row as
// stored, so Y 0 is the eighth rank and Y 7 the first.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

func (p Position) add(dir Position) Position {
	return Position{X: p.X + dir.X, Y: p.Y + dir.Y}
}

// SquareName returns the algebraic name of p, e.g. "e4".
func SquareName(p Position) string {
	return fmt.Sprintf("%c%d", p.X+'a', 8-p.Y)
}

func (p Position) String() string {
	if !boundaryCheck(p) {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return SquareName(p)
}

// ParseSquare converts an algebraic square name into a Position.
func ParseSquare(name string) (Position, error) {
	if len(name) != 2 {
		return Position{}, fmt.Errorf("%w: %q must be a file letter and a rank digit", ErrInvalidSquare, name)
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' {
		return Position{}, fmt.Errorf("%w: %q has file outside a-h", ErrInvalidSquare, name)
	}
	if rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q has rank outside 1-8", ErrInvalidSquare, name)
	}
	return Position{X: int(file - 'a'), Y: 8 - int(rank-'0')}, nil
}

func mustSquare(name string) Position {
	p, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return p
}
