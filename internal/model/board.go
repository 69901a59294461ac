package model

import "github.com/benbeisheim/chessrules/internal/rules"

type Piece struct {
	Type  rules.Kind  `json:"type"`
	Color rules.Color `json:"color"`
}

// BoardState is the read-only view of a position sent to clients. Empty squares are null.
type BoardState struct {
	Board             [][]*Piece    `json:"board"`
	WhiteKingPosition *rules.Square `json:"whiteKingPosition"`
	BlackKingPosition *rules.Square `json:"blackKingPosition"`
}

func newBoardState(position rules.Position) *BoardState {
	board := &BoardState{}
	for row := 0; row < 8; row++ {
		cells := make([]*Piece, 8)
		for col := 0; col < 8; col++ {
			piece := position.At(rules.Square{Row: row, Col: col})
			if piece.IsEmpty() {
				continue
			}
			cells[col] = &Piece{Type: piece.Kind, Color: piece.Color}
		}
		board.Board = append(board.Board, cells)
	}
	if sq, ok := position.KingSquare(rules.White); ok {
		board.WhiteKingPosition = &sq
	}
	if sq, ok := position.KingSquare(rules.Black); ok {
		board.BlackKingPosition = &sq
	}
	return board
}

// position rebuilds the engine position from the view.
func (b *BoardState) position() rules.Position {
	var position rules.Position
	for row, cells := range b.Board {
		for col, piece := range cells {
			if piece == nil || row > 7 || col > 7 {
				continue
			}
			position.Set(rules.Square{Row: row, Col: col}, rules.NewPiece(piece.Type, piece.Color))
		}
	}
	return position
}
