package rules

// Perft counts the leaf nodes of the legal move tree depth plies deep.
func Perft(p Position, rights CastlingRights, toMove Color, depth int) int {
	if depth <= 0 {
		return 1
	}
	moves := p.AllLegalMoves(toMove, rights)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		next, nextRights := p.Apply(m, rights)
		nodes += Perft(next, nextRights, toMove.Opposite(), depth-1)
	}
	return nodes
}

// Divide is Perft split by root move.
func Divide(p Position, rights CastlingRights, toMove Color, depth int) map[Move]int {
	split := make(map[Move]int)
	if depth <= 0 {
		return split
	}
	for _, m := range p.AllLegalMoves(toMove, rights) {
		next, nextRights := p.Apply(m, rights)
		split[m] = Perft(next, nextRights, toMove.Opposite(), depth-1)
	}
	return split
}
