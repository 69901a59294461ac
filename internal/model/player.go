package model

import "github.com/benbeisheim/chessrules/internal/rules"

type Player struct {
	ID    string
	Color PlayerColor
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Side() rules.Color {
	switch c {
	case PlayerColorWhite:
		return rules.White
	case PlayerColorBlack:
		return rules.Black
	default:
		return rules.NoColor
	}
}

// MatchFoundEvent tells a queued player which game and seat they were paired into.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Name   string      `json:"name"`
	Color  PlayerColor `json:"color"`
}
