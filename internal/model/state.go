package model

// GameState is the JSON view of a game sent to clients.
type GameState struct {
	ID              string         `json:"id"`
	FEN             string         `json:"fen"`
	Squares         [8][8]*Piece   `json:"board"`
	ToMove          Color          `json:"toMove"`
	Castling        CastlingRights `json:"castling"`
	EnPassantTarget *Position      `json:"enPassantTarget"`
	HalfmoveClock   int            `json:"halfmoveClock"`
	FullmoveNumber  int            `json:"fullmoveNumber"`
	PromotionChoice PieceType      `json:"promotionChoice"`
	WhiteInCheck    bool           `json:"whiteInCheck"`
	BlackInCheck    bool           `json:"blackInCheck"`
	Status          Status         `json:"status"`
	LegalMoves      []Move         `json:"legalMoves"`
	MoveHistory     []Ply          `json:"moveHistory"`
	LastMove        *Ply           `json:"lastMove"`
}

// State snapshots g under the given id.
func (g *Game) State(id string) GameState {
	b := g.Board()
	state := GameState{
		ID:              id,
		FEN:             b.FEN(),
		Squares:         b.Squares,
		ToMove:          b.ActiveColor,
		Castling:        b.Castling,
		EnPassantTarget: b.EnPassantTarget,
		HalfmoveClock:   b.HalfmoveClock,
		FullmoveNumber:  b.FullmoveNumber,
		PromotionChoice: b.PromotionChoice,
		WhiteInCheck:    g.whiteCheck,
		BlackInCheck:    g.blackCheck,
		Status:          g.status,
		LegalMoves:      SortedMoves(g.LegalMoves()),
		MoveHistory:     g.History(),
	}
	if n := len(state.MoveHistory); n > 0 {
		last := state.MoveHistory[n-1]
		state.LastMove = &last
	}
	return state
}
