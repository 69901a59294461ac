package rules

import "fmt"

// Status is derived from a position and the side to move; it is never stored.
type Status uint8

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

var statusNames = [...]string{
	Ongoing:   "ongoing",
	Check:     "check",
	Checkmate: "checkmate",
	Stalemate: "stalemate",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) IsOver() bool {
	return s == Checkmate || s == Stalemate
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Classify evaluates the position for c, the side about to move.
func (p Position) Classify(c Color, rights CastlingRights) Status {
	inCheck := p.InCheck(c)
	if !p.HasAnyLegalMove(c, rights) {
		if inCheck {
			return Checkmate
		}
		return Stalemate
	}
	if inCheck {
		return Check
	}
	return Ongoing
}
