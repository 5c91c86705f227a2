package model

type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) String() string {
	return SquareName(m.From) + SquareName(m.To)
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records what an applied move did, derived at execution time from the
// moving piece and the geometry of the move.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	EnPassant      bool            `json:"enPassant"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion,omitempty"`
}

func (p Ply) String() string {
	s := SquareName(p.From) + SquareName(p.To)
	if p.Promotion != "" {
		s += string(fenLetters[p.Promotion])
	}
	return s
}
