package rules

import "strings"

// Position is the 8x8 grid. It is a value type: assigning it copies the board.
type Position [8][8]Piece

var backRankOrder = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func StartingPosition() Position {
	var p Position
	for col := 0; col < 8; col++ {
		p[Black.backRank()][col] = Piece{Kind: backRankOrder[col], Color: Black}
		p[Black.pawnRank()][col] = Piece{Kind: Pawn, Color: Black}
		p[White.pawnRank()][col] = Piece{Kind: Pawn, Color: White}
		p[White.backRank()][col] = Piece{Kind: backRankOrder[col], Color: White}
	}
	return p
}

func (p Position) At(s Square) Piece {
	return p[s.Row][s.Col]
}

func (p *Position) Set(s Square, piece Piece) {
	p[s.Row][s.Col] = piece
}

func (p Position) KingSquare(c Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p[row][col] == (Piece{Kind: King, Color: c}) {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// squaresOf lists the squares holding pieces of color c, row by row.
func (p Position) squaresOf(c Color) []Square {
	var squares []Square
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if !p[row][col].IsEmpty() && p[row][col].Color == c {
				squares = append(squares, Square{Row: row, Col: col})
			}
		}
	}
	return squares
}

func (p Position) isEmpty(s Square) bool {
	return p.At(s).IsEmpty()
}

func (p Position) isOpponent(s Square, c Color) bool {
	piece := p.At(s)
	return !piece.IsEmpty() && piece.Color != c
}

// String draws the board with row 0 on top.
func (p Position) String() string {
	var b strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(p[row][col].Letter())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
