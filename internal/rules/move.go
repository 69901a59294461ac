package rules

import "fmt"

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// IsCastle reports whether m moves a king two columns in p.
func (m Move) IsCastle(p Position) bool {
	if !m.From.Valid() || !m.To.Valid() {
		return false
	}
	return p.At(m.From).Kind == King && abs(m.To.Col-m.From.Col) == 2
}

// Apply plays m on a copy of p, moving the rook too when m castles, and returns the
// new position with the updated castling rights. m is not checked for legality.
func (p Position) Apply(m Move, rights CastlingRights) (Position, CastlingRights) {
	piece := p.At(m.From)
	next := p
	if m.IsCastle(p) {
		rookFrom, rookTo := CastlingRook(m)
		next.Set(rookTo, next.At(rookFrom))
		next.Set(rookFrom, Piece{})
	}
	next.Set(m.To, piece)
	next.Set(m.From, Piece{})
	return next, rights.update(piece, m)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
