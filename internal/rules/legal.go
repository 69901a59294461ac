package rules

// LegalMoves filters the pseudo-moves of the piece on from down to those that do not
// leave its own king in check.
func (p Position) LegalMoves(from Square, rights CastlingRights) []Square {
	piece := p.At(from)
	if piece.IsEmpty() {
		return nil
	}
	var legal []Square
	for _, to := range p.PseudoMoves(from, rights) {
		next, _ := p.Apply(Move{From: from, To: to}, rights)
		if !next.InCheck(piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

func (p Position) HasAnyLegalMove(c Color, rights CastlingRights) bool {
	for _, from := range p.squaresOf(c) {
		if len(p.LegalMoves(from, rights)) > 0 {
			return true
		}
	}
	return false
}

// AllLegalMoves lists every legal move of color c.
func (p Position) AllLegalMoves(c Color, rights CastlingRights) []Move {
	var moves []Move
	for _, from := range p.squaresOf(c) {
		for _, to := range p.LegalMoves(from, rights) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}
