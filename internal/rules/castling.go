package rules

const (
	kingHomeCol      = 4
	queensideRookCol = 0
	kingsideRookCol  = 7
)

// SideRights holds one color's castling flags. Each flag only ever goes from false to true.
type SideRights struct {
	KingMoved          bool `json:"kingMoved"`
	QueensideRookMoved bool `json:"queensideRookMoved"`
	KingsideRookMoved  bool `json:"kingsideRookMoved"`
}

type CastlingRights struct {
	White SideRights `json:"white"`
	Black SideRights `json:"black"`
}

// NoCastling returns rights with every flag spent.
func NoCastling() CastlingRights {
	spent := SideRights{KingMoved: true, QueensideRookMoved: true, KingsideRookMoved: true}
	return CastlingRights{White: spent, Black: spent}
}

func (r CastlingRights) Of(c Color) SideRights {
	if c == Black {
		return r.Black
	}
	return r.White
}

func (r *CastlingRights) of(c Color) *SideRights {
	if c == Black {
		return &r.Black
	}
	return &r.White
}

// update marks the flags spent by m. Rooks are tracked by their home square, so a move
// leaving or landing on a corner spends that corner's flag.
func (r CastlingRights) update(moved Piece, m Move) CastlingRights {
	if moved.Kind == King {
		r.of(moved.Color).KingMoved = true
	}
	for _, c := range []Color{White, Black} {
		queenside := Square{Row: c.backRank(), Col: queensideRookCol}
		kingside := Square{Row: c.backRank(), Col: kingsideRookCol}
		if m.From == queenside || m.To == queenside {
			r.of(c).QueensideRookMoved = true
		}
		if m.From == kingside || m.To == kingside {
			r.of(c).KingsideRookMoved = true
		}
	}
	return r
}

func (p Position) castlingMoves(from Square, rights CastlingRights) []Square {
	king := p.At(from)
	side := rights.Of(king.Color)
	row := king.Color.backRank()
	if side.KingMoved || from != (Square{Row: row, Col: kingHomeCol}) {
		return nil
	}
	enemy := king.Color.Opposite()
	if p.IsSquareAttacked(from, enemy) {
		return nil
	}

	var moves []Square
	if !side.KingsideRookMoved && p.hasRook(Square{Row: row, Col: kingsideRookCol}, king.Color) &&
		p.emptyCols(row, 5, 6) &&
		!p.IsSquareAttacked(Square{Row: row, Col: 5}, enemy) &&
		!p.IsSquareAttacked(Square{Row: row, Col: 6}, enemy) {
		moves = append(moves, Square{Row: row, Col: 6})
	}
	// Queenside needs b, c and d empty but only the king's path (d and c) unattacked
	if !side.QueensideRookMoved && p.hasRook(Square{Row: row, Col: queensideRookCol}, king.Color) &&
		p.emptyCols(row, 1, 2, 3) &&
		!p.IsSquareAttacked(Square{Row: row, Col: 3}, enemy) &&
		!p.IsSquareAttacked(Square{Row: row, Col: 2}, enemy) {
		moves = append(moves, Square{Row: row, Col: 2})
	}
	return moves
}

func (p Position) hasRook(s Square, c Color) bool {
	return p.At(s) == Piece{Kind: Rook, Color: c}
}

func (p Position) emptyCols(row int, cols ...int) bool {
	for _, col := range cols {
		if !p.isEmpty(Square{Row: row, Col: col}) {
			return false
		}
	}
	return true
}

// CastlingRook returns where the rook starts and lands for a two-column king move.
func CastlingRook(m Move) (from, to Square) {
	if m.To.Col > m.From.Col {
		return Square{Row: m.From.Row, Col: kingsideRookCol}, Square{Row: m.From.Row, Col: m.To.Col - 1}
	}
	return Square{Row: m.From.Row, Col: queensideRookCol}, Square{Row: m.From.Row, Col: m.To.Col + 1}
}
