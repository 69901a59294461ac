package rules

import "fmt"

// Square addresses a cell by row and column. Row 0 is Black's back rank, column 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

func (s Square) add(d direction) Square {
	return Square{Row: s.Row + d.dr, Col: s.Col + d.dc}
}

type direction struct {
	dr, dc int
}

var (
	rookDirs    = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs  = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs   = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightJumps = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingSteps   = queenDirs
)
