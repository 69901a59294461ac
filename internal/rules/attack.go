package rules

// IsSquareAttacked reports whether any piece of color by covers target in attack mode.
func (p Position) IsSquareAttacked(target Square, by Color) bool {
	for _, from := range p.squaresOf(by) {
		for _, s := range p.attacks(from) {
			if s == target {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether c's king is attacked. A position without that king is never in check.
func (p Position) InCheck(c Color) bool {
	king, ok := p.KingSquare(c)
	if !ok {
		return false
	}
	return p.IsSquareAttacked(king, c.Opposite())
}
