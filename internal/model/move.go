package model

import "github.com/benbeisheim/chessrules/internal/rules"

// MoveRequest is a move selected by a client, over REST or the websocket.
type MoveRequest struct {
	From rules.Square `json:"from"`
	To   rules.Square `json:"to"`
}

func (m MoveRequest) Move() rules.Move {
	return rules.Move{From: m.From, To: m.To}
}

// LastMove is echoed to clients for highlighting; Castle carries the rook's hop.
type LastMove struct {
	From   rules.Square `json:"from"`
	To     rules.Square `json:"to"`
	Castle *rules.Move  `json:"castle"`
}
