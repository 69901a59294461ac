package rules

import (
	"fmt"
	"slices"
)

// Engine owns one game's position, castling rights and side to move.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	position Position
	rights   CastlingRights
	toMove   Color
}

func NewEngine() *Engine {
	e := &Engine{}
	e.Reset()
	return e
}

// NewEngineFrom starts an engine from an arbitrary position.
func NewEngineFrom(position Position, toMove Color, rights CastlingRights) *Engine {
	return &Engine{position: position, rights: rights, toMove: toMove}
}

// Reset restores the starting layout, fresh castling rights and white to move.
func (e *Engine) Reset() {
	e.position = StartingPosition()
	e.rights = CastlingRights{}
	e.toMove = White
}

// Position returns a copy of the current board.
func (e *Engine) Position() Position {
	return e.position
}

func (e *Engine) Rights() CastlingRights {
	return e.rights
}

func (e *Engine) SideToMove() Color {
	return e.toMove
}

func (e *Engine) Status() Status {
	return e.position.Classify(e.toMove, e.rights)
}

// LegalMoves returns the destinations of the piece on sq. Only pieces of the side
// to move have moves.
func (e *Engine) LegalMoves(sq Square) ([]Square, error) {
	if !sq.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSquare, sq)
	}
	if e.position.At(sq).Color != e.toMove {
		return nil, nil
	}
	return e.position.LegalMoves(sq, e.rights), nil
}

// Move plays from->to for the side to move and returns the status of the side that
// moves next. The engine is unchanged when an error is returned.
func (e *Engine) Move(from, to Square) (Status, error) {
	if !from.Valid() || !to.Valid() {
		return Ongoing, fmt.Errorf("%w: %v -> %v", ErrInvalidSquare, from, to)
	}
	moves, _ := e.LegalMoves(from)
	if !slices.Contains(moves, to) {
		return Ongoing, fmt.Errorf("%w: %v -> %v", ErrIllegalMove, from, to)
	}
	e.position, e.rights = e.position.Apply(Move{From: from, To: to}, e.rights)
	e.toMove = e.toMove.Opposite()
	return e.Status(), nil
}
