package model

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Subscriber is the write side of a client connection. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v interface{}) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Subscriber // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Subscriber),
	}
}

// Game is one session: the rules engine plus the seats and observers around it.
type Game struct {
	ID          string
	Name        string
	mu          sync.Mutex
	engine      *rules.Engine
	players     Players
	lastMove    *LastMove
	connections *GameConnections
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type GameState struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Board    *BoardState          `json:"boardState"`
	ToMove   rules.Color          `json:"toMove"`
	Status   rules.Status         `json:"status"`
	IsCheck  bool                 `json:"isCheck"`
	Winner   *rules.Color         `json:"winner"`
	Castling rules.CastlingRights `json:"castling"`
	LastMove *LastMove            `json:"lastMove"`
	Players  Players              `json:"players"`
}

func NewGame(id, name string) *Game {
	return &Game{
		ID:          id,
		Name:        name,
		engine:      rules.NewEngine(),
		connections: NewGameConnections(),
	}
}

// newGameFrom starts a session from an arbitrary position.
func newGameFrom(id, name string, engine *rules.Engine) *Game {
	g := NewGame(id, name)
	g.engine = engine
	return g
}

// AddPlayer seats the player, white first. A player already seated keeps their color.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.seatOf(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: PlayerColorWhite}
		log.Infof("game %s: %s takes white", g.ID, playerID)
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: PlayerColorBlack}
		log.Infof("game %s: %s takes black", g.ID, playerID)
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (PlayerColor, bool) {
	switch {
	case playerID == "":
		return "", false
	case g.players.White.ID == playerID:
		return PlayerColorWhite, true
	case g.players.Black.ID == playerID:
		return PlayerColorBlack, true
	}
	return "", false
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// authorize checks that playerID may act for side. A game nobody has joined is shared
// by whoever holds the board.
func (g *Game) authorize(playerID string, side rules.Color) error {
	if g.players.White.ID == "" && g.players.Black.ID == "" {
		return nil
	}
	color, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if side != rules.NoColor && color.Side() != side {
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	position := g.engine.Position()
	toMove := g.engine.SideToMove()
	status := g.engine.Status()
	state := GameState{
		ID:       g.ID,
		Name:     g.Name,
		Board:    newBoardState(position),
		ToMove:   toMove,
		Status:   status,
		IsCheck:  status == rules.Check || status == rules.Checkmate,
		Castling: g.engine.Rights(),
		LastMove: g.lastMove,
		Players:  g.players,
	}
	if status == rules.Checkmate {
		winner := toMove.Opposite()
		state.Winner = &winner
	}
	return state
}

func (g *Game) LegalMoves(sq rules.Square) ([]rules.Square, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	moves, err := g.engine.LegalMoves(sq)
	if err != nil {
		return nil, err
	}
	if moves == nil {
		moves = []rules.Square{}
	}
	return moves, nil
}

// MakeMove plays a move for playerID and pushes the new state to every subscriber.
func (g *Game) MakeMove(playerID string, move MoveRequest) (rules.Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.authorize(playerID, g.engine.SideToMove()); err != nil {
		return rules.Ongoing, err
	}

	before := g.engine.Position()
	status, err := g.engine.Move(move.From, move.To)
	if err != nil {
		return rules.Ongoing, fmt.Errorf("move %s: %w", move.Move(), err)
	}
	g.lastMove = &LastMove{From: move.From, To: move.To}
	if move.Move().IsCastle(before) {
		rookFrom, rookTo := rules.CastlingRook(move.Move())
		g.lastMove.Castle = &rules.Move{From: rookFrom, To: rookTo}
	}
	log.Infof("game %s: %s played %s, %s", g.ID, playerID, move.Move(), status)

	g.broadcastState(g.state())
	return status, nil
}

// Reset restarts the game from the standard position. Seats are kept.
func (g *Game) Reset(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.authorize(playerID, rules.NoColor); err != nil {
		return err
	}
	g.engine.Reset()
	g.lastMove = nil
	log.Infof("game %s: reset by %s", g.ID, playerID)

	g.broadcastState(g.state())
	return nil
}

func (g *Game) RegisterConnection(playerID string, conn Subscriber) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, seated := g.seatOf(playerID)
	if !seated && !g.canSpectate() {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if old, exists := g.connections.connections[playerID]; exists && old != conn {
		log.Warnf("game %s: replacing connection for %s", g.ID, playerID)
		old.Close()
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for %s", g.ID, playerID)

	g.broadcastState(g.state())
	return nil
}

// UnregisterConnection forgets conn if it is still the player's current connection.
func (g *Game) UnregisterConnection(playerID string, conn Subscriber) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Debugf("game %s: unregistered connection for %s", g.ID, playerID)
	}
}

// Send writes one message to a single subscriber.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, ok := g.connections.connections[playerID]
	if !ok {
		return ErrNotInGame
	}
	return conn.WriteJSON(msg)
}

func (g *Game) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}

	// One writer at a time per websocket
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
