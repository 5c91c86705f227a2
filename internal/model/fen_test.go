package model

import (
	"errors"
	"strings"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 99 72",
		"r3k3/8/8/8/8/8/8/4K3 b q - 12 40",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Errorf("round trip\n got %q\nwant %q", got, fen)
		}
	}
}

func TestNewBoardMatchesStartFEN(t *testing.T) {
	if got := NewBoard().FEN(); got != StartFEN {
		t.Fatalf("NewBoard().FEN() = %q, want %q", got, StartFEN)
	}
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if b.PromotionChoice != Queen {
		t.Errorf("default promotion = %q, want queen", b.PromotionChoice)
	}
}

func TestParseFENFields(t *testing.T) {
	b, err := ParseFEN("r3k2r/8/8/8/3pP3/8/8/R3K2R b Kq e3 7 31")
	if err != nil {
		t.Fatal(err)
	}
	if b.ActiveColor != Black {
		t.Errorf("active color = %s", b.ActiveColor)
	}
	want := CastlingRights{WhiteKingside: true, BlackQueenside: true}
	if b.Castling != want {
		t.Errorf("castling = %+v, want %+v", b.Castling, want)
	}
	if b.EnPassantTarget == nil || SquareName(*b.EnPassantTarget) != "e3" {
		t.Errorf("en passant = %v, want e3", b.EnPassantTarget)
	}
	if b.HalfmoveClock != 7 || b.FullmoveNumber != 31 {
		t.Errorf("clocks = %d/%d, want 7/31", b.HalfmoveClock, b.FullmoveNumber)
	}
	if p := b.PieceAt(mustSquare("d4")); p == nil || p.Type != Pawn || p.Color != Black {
		t.Errorf("d4 = %+v, want black pawn", p)
	}
}

func TestParseFENErrors(t *testing.T) {
	cases := []struct {
		name    string
		fen     string
		mention string
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w - -", "6 fields"},
		{"seven ranks", "8/8/8/8/8/8/4K2k w - - 0 1", "8 ranks"},
		{"short rank", "4k3/8/8/8/8/8/8/4K2 w - - 0 1", "rank 1"},
		{"long rank", "4k3/8/8/8/8/8/8/4K2RR w - - 0 1", "rank 1"},
		{"bad piece", "4k3/8/8/8/8/8/8/4K2X w - - 0 1", "unknown piece"},
		{"bad color", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", "active color"},
		{"bad castling letter", "4k3/8/8/8/8/8/8/4K3 w KX - 0 1", "castling"},
		{"castling out of order", "4k3/8/8/8/8/8/8/4K3 w kK - 0 1", "castling"},
		{"castling repeated", "4k3/8/8/8/8/8/8/4K3 w KK - 0 1", "castling"},
		{"bad en passant square", "4k3/8/8/8/8/8/8/4K3 w - z9 0 1", "en passant"},
		{"en passant wrong rank", "4k3/8/8/8/8/8/8/4K3 w - e3 0 1", "en passant"},
		{"en passant beside a king", "8/8/8/3Pk3/8/8/8/4K3 w - e6 0 1", "no black pawn"},
		{"en passant beside own piece", "4k3/8/8/3PN3/8/8/8/4K3 w - e6 0 1", "no black pawn"},
		{"en passant with empty square ahead", "4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1", "no black pawn"},
		{"en passant target occupied", "4k3/8/4n3/3Pp3/8/8/8/4K3 w - e6 0 1", "occupied"},
		{"en passant origin occupied", "4k3/4n3/8/3Pp3/8/8/8/4K3 w - e6 0 1", "occupied"},
		{"negative halfmove", "4k3/8/8/8/8/8/8/4K3 w - - -1 1", "halfmove"},
		{"zero fullmove", "4k3/8/8/8/8/8/8/4K3 w - - 0 0", "fullmove"},
		{"no black king", "8/8/8/8/8/8/8/4K3 w - - 0 1", "black king"},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", "white king"},
		{"pawn on back rank", "4k2P/8/8/8/8/8/8/4K3 w - - 0 1", "back rank"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1", "in check"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tc.fen, err)
			}
			if !strings.Contains(err.Error(), tc.mention) {
				t.Errorf("error %q does not mention %q", err, tc.mention)
			}
		})
	}
}
