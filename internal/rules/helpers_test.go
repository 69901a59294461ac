package rules

import (
	"slices"
	"strings"
	"testing"
)

// sq converts a coordinate such as "e2" into a Square.
func sq(t testing.TB, coord string) Square {
	t.Helper()
	if len(coord) != 2 || coord[0] < 'a' || coord[0] > 'h' || coord[1] < '1' || coord[1] > '8' {
		t.Fatalf("bad coordinate %q", coord)
	}
	return Square{Row: 8 - int(coord[1]-'0'), Col: int(coord[0] - 'a')}
}

func squares(t testing.TB, coords ...string) []Square {
	t.Helper()
	out := make([]Square, 0, len(coords))
	for _, c := range coords {
		out = append(out, sq(t, c))
	}
	return out
}

var letterKinds = map[byte]Kind{'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King}

// placement builds a position from the board field of a FEN string, first rank listed is row 0.
func placement(t testing.TB, board string) Position {
	t.Helper()
	var p Position
	ranks := strings.Split(board, "/")
	if len(ranks) != 8 {
		t.Fatalf("placement %q: want 8 ranks, got %d", board, len(ranks))
	}
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			color := Black
			lower := ch
			if ch >= 'A' && ch <= 'Z' {
				color = White
				lower = ch + ('a' - 'A')
			}
			kind, ok := letterKinds[lower]
			if !ok || col > 7 {
				t.Fatalf("placement %q: bad rank %q", board, rank)
			}
			p[row][col] = Piece{Kind: kind, Color: color}
			col++
		}
		if col != 8 {
			t.Fatalf("placement %q: rank %q covers %d columns", board, rank, col)
		}
	}
	return p
}

func sortSquares(s []Square) []Square {
	out := slices.Clone(s)
	slices.SortFunc(out, func(a, b Square) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return out
}

func sameSquares(got, want []Square) bool {
	return slices.Equal(sortSquares(got), sortSquares(want))
}
