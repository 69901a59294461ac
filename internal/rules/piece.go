package rules

import "fmt"

type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return ""
	}
}

func (c Color) Opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "":
		*c = NoColor
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// backRank is the row holding the color's king and rooks at the start.
func (c Color) backRank() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) pawnRank() int {
	if c == White {
		return 6
	}
	return 1
}

// forward is the row delta of a pawn step. White starts on row 6 and moves up the grid.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = map[Kind]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

func (k Kind) String() string {
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = NoKind
		return nil
	}
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

// Piece is an immutable kind and color pair. The zero value is an empty cell.
type Piece struct {
	Kind  Kind
	Color Color
}

func NewPiece(kind Kind, color Color) Piece {
	return Piece{Kind: kind, Color: color}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Letter returns the diagram letter of the piece, upper case for white and '.' for an empty cell.
func (p Piece) Letter() byte {
	var l byte
	switch p.Kind {
	case Pawn:
		l = 'p'
	case Knight:
		l = 'n'
	case Bishop:
		l = 'b'
	case Rook:
		l = 'r'
	case Queen:
		l = 'q'
	case King:
		l = 'k'
	default:
		return '.'
	}
	if p.Color == White {
		l -= 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}
