package rules

// PseudoMoves returns the destinations the piece on from can reach by movement geometry,
// without checking whether its own king is left in check. Castling is included for kings.
func (p Position) PseudoMoves(from Square, rights CastlingRights) []Square {
	piece := p.At(from)
	if piece.Kind == King {
		return append(p.pieceMoves(from, piece), p.castlingMoves(from, rights)...)
	}
	return p.pieceMoves(from, piece)
}

// attacks is the attack-mode move set: pawns cover both forward diagonals whatever
// occupies them, and castling never counts.
func (p Position) attacks(from Square) []Square {
	piece := p.At(from)
	if piece.Kind == Pawn {
		return p.pawnMoves(from, piece.Color, true)
	}
	return p.pieceMoves(from, piece)
}

func (p Position) pieceMoves(from Square, piece Piece) []Square {
	switch piece.Kind {
	case Pawn:
		return p.pawnMoves(from, piece.Color, false)
	case Knight:
		return p.stepMoves(from, piece.Color, knightJumps)
	case Bishop:
		return p.slideMoves(from, piece.Color, bishopDirs)
	case Rook:
		return p.slideMoves(from, piece.Color, rookDirs)
	case Queen:
		return p.slideMoves(from, piece.Color, queenDirs)
	case King:
		return p.stepMoves(from, piece.Color, kingSteps)
	default:
		return nil
	}
}

func (p Position) pawnMoves(from Square, c Color, attackMode bool) []Square {
	var moves []Square
	dir := c.forward()
	ahead := Square{Row: from.Row + dir, Col: from.Col}
	if !ahead.Valid() {
		return nil
	}
	// Forward moves never capture
	if !attackMode && p.isEmpty(ahead) {
		moves = append(moves, ahead)
		twoAhead := Square{Row: from.Row + 2*dir, Col: from.Col}
		if from.Row == c.pawnRank() && p.isEmpty(twoAhead) {
			moves = append(moves, twoAhead)
		}
	}
	for _, dc := range []int{-1, 1} {
		target := Square{Row: ahead.Row, Col: from.Col + dc}
		if !target.Valid() {
			continue
		}
		if attackMode || p.isOpponent(target, c) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (p Position) stepMoves(from Square, c Color, steps []direction) []Square {
	var moves []Square
	for _, d := range steps {
		target := from.add(d)
		if target.Valid() && (p.isEmpty(target) || p.isOpponent(target, c)) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (p Position) slideMoves(from Square, c Color, dirs []direction) []Square {
	var moves []Square
	for _, d := range dirs {
		for target := from.add(d); target.Valid(); target = target.add(d) {
			if p.isEmpty(target) {
				moves = append(moves, target)
				continue
			}
			if p.isOpponent(target, c) {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}
