package model

import "errors"

var (
	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrAlreadyQueued = errors.New("player already in queue")
	ErrNotAuthorized = errors.New("not authorized to join this game")
)
