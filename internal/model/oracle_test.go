package model

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// Positions here avoid castling through an attacked square, where this
// engine deliberately differs from full chess rules.
var oraclePositions = []string{
	StartFEN,
	"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"4k3/8/8/8/8/8/8/r3K2R w K - 0 1",
	"8/4P3/8/8/8/8/8/k3K3 w - - 0 1",
	"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
	"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
}

func engineMoves(t *testing.T, fen string) []string {
	t.Helper()
	b := mustFEN(t, fen)
	moves := []string{}
	for _, m := range SortedMoves(LegalMoves(b, b.ActiveColor)) {
		moves = append(moves, m.String())
	}
	sort.Strings(moves)
	return moves
}

// notnilMoves lists the reference moves as from-to pairs, folding the four
// promotion choices into one.
func notnilMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("chess.FEN(%q): %v", fen, err)
	}
	game := chess.NewGame(opt)
	seen := map[string]bool{}
	moves := []string{}
	for _, m := range game.ValidMoves() {
		s := m.String()[:4]
		if !seen[s] {
			seen[s] = true
			moves = append(moves, s)
		}
	}
	sort.Strings(moves)
	return moves
}

func TestLegalMovesMatchReference(t *testing.T) {
	for _, fen := range oraclePositions {
		got := engineMoves(t, fen)
		want := notnilMoves(t, fen)
		if !slices.Equal(got, want) {
			t.Errorf("%s\n got %v\nwant %v", fen, got, want)
		}
	}
}

func perft(b *Board, depth int) int {
	if depth == 0 {
		return 1
	}
	nodes := 0
	for from, targets := range LegalMoves(b, b.ActiveColor) {
		for _, to := range targets {
			if depth == 1 {
				nodes++
				continue
			}
			child := b.Clone()
			child.Apply(from, to)
			nodes += perft(child, depth-1)
		}
	}
	return nodes
}

func referencePerft(b *dragontoothmg.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}

func TestPerft(t *testing.T) {
	cases := []struct {
		fen   string
		depth int
		want  int
	}{
		{StartFEN, 1, 20},
		{StartFEN, 2, 400},
		{StartFEN, 3, 8902},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 2, 191},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2812},
	}
	for _, tc := range cases {
		if testing.Short() && tc.depth > 2 {
			continue
		}
		got := perft(mustFEN(t, tc.fen), tc.depth)
		if got != tc.want {
			t.Errorf("perft(%q, %d) = %d, want %d", tc.fen, tc.depth, got, tc.want)
		}
		ref := dragontoothmg.ParseFen(tc.fen)
		if r := referencePerft(&ref, tc.depth); r != got {
			t.Errorf("perft(%q, %d) = %d, reference generator says %d", tc.fen, tc.depth, got, r)
		}
	}
}

// TestNoMoveLeavesOwnKingCapturable plays random games and checks every legal
// move of every visited position against the raw generator.
func TestNoMoveLeavesOwnKingCapturable(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	games := 6
	if testing.Short() {
		games = 2
	}
	for i := 0; i < games; i++ {
		g := NewGame()
		for ply := 0; ply < 80 && !g.Status().IsOver(); ply++ {
			mover := g.ActiveColor()
			moves := SortedMoves(g.LegalMoves())
			for _, m := range moves {
				probe := g.Board()
				probe.Apply(m.From, m.To)
				for _, from := range probe.piecesOf(mover.Opponent()) {
					for _, to := range PseudoLegalMoves(probe, from) {
						if p := probe.PieceAt(to); p != nil && p.Type == King && p.Color == mover {
							t.Fatalf("after %s in %s the %s king can be taken from %s", m, g.FEN(), mover, SquareName(from))
						}
					}
				}
			}
			pick := moves[rng.Intn(len(moves))]
			if !g.MakeMove(pick.From, pick.To) {
				t.Fatalf("legal move %s rejected in %s", pick, g.FEN())
			}
			if _, err := ParseFEN(g.FEN()); err != nil {
				t.Fatalf("engine produced a position it cannot read back: %v", err)
			}
		}
	}
}
