package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/benbeisheim/chessrules/internal/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	closed   bool
	fail     bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) lastState(t *testing.T) GameState {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		t.Fatalf("no messages received")
	}
	msg := c.messages[len(c.messages)-1]
	if msg.Type != ws.MessageTypeGameState {
		t.Fatalf("unexpected message type %q", msg.Type)
	}
	var state GameState
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func square(row, col int) rules.Square {
	return rules.Square{Row: row, Col: col}
}

func TestAddPlayer(t *testing.T) {
	t.Parallel()
	g := NewGame("g1", "brave-otter")

	tests := []struct {
		player  string
		want    PlayerColor
		wantErr error
	}{
		{player: "alice", want: PlayerColorWhite},
		{player: "bob", want: PlayerColorBlack},
		{player: "alice", want: PlayerColorWhite},
		{player: "carol", wantErr: ErrGameFull},
	}
	for _, tt := range tests {
		got, err := g.AddPlayer(tt.player)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("AddPlayer(%s): unexpected error: got=%v want=%v", tt.player, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("AddPlayer(%s): got=%q want=%q", tt.player, got, tt.want)
		}
	}
	if g.canSpectate() {
		t.Errorf("full game should not accept spectators")
	}
	if _, ok := g.seatOf("bob"); !ok {
		t.Errorf("bob should be seated")
	}
	if _, ok := g.seatOf("carol"); ok {
		t.Errorf("carol should not be seated")
	}
}

func TestMakeMoveEnforcesSeats(t *testing.T) {
	t.Parallel()
	g := NewGame("g1", "brave-otter")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	e2e4 := MoveRequest{From: square(6, 4), To: square(4, 4)}
	if _, err := g.MakeMove("bob", e2e4); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("black moving first: got=%v want=%v", err, ErrNotYourTurn)
	}
	if _, err := g.MakeMove("mallory", e2e4); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("outsider moving: got=%v want=%v", err, ErrNotInGame)
	}
	status, err := g.MakeMove("alice", e2e4)
	if err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if status != rules.Ongoing {
		t.Errorf("unexpected status: %v", status)
	}
	if _, err := g.MakeMove("bob", MoveRequest{From: square(1, 4), To: square(4, 4)}); !errors.Is(err, rules.ErrIllegalMove) {
		t.Errorf("illegal reply: got=%v want=%v", err, rules.ErrIllegalMove)
	}
	if state := g.GetState(); state.ToMove != rules.Black {
		t.Errorf("unexpected side to move: %v", state.ToMove)
	}
}

func TestFoolsMateState(t *testing.T) {
	t.Parallel()
	g := NewGame("g1", "brave-otter")
	conn := &fakeConn{}
	if err := g.RegisterConnection("watcher", conn); err != nil {
		t.Fatalf("register: %v", err)
	}

	moves := []MoveRequest{
		{From: square(6, 5), To: square(5, 5)},
		{From: square(1, 4), To: square(3, 4)},
		{From: square(6, 6), To: square(4, 6)},
		{From: square(0, 3), To: square(4, 7)},
	}
	var status rules.Status
	for _, m := range moves {
		var err error
		if status, err = g.MakeMove("", m); err != nil {
			t.Fatalf("move %v: %v", m.Move(), err)
		}
	}
	if status != rules.Checkmate {
		t.Fatalf("unexpected status: got=%v want=%v", status, rules.Checkmate)
	}

	state := conn.lastState(t)
	if state.Status != rules.Checkmate || !state.IsCheck {
		t.Errorf("unexpected broadcast status: %v check=%v", state.Status, state.IsCheck)
	}
	if state.Winner == nil || *state.Winner != rules.Black {
		t.Errorf("black should be reported as winner, got %v", state.Winner)
	}
	if state.LastMove == nil || state.LastMove.To != square(4, 7) {
		t.Errorf("unexpected last move: %+v", state.LastMove)
	}
	if got := state.Board.position(); got != g.engine.Position() {
		t.Errorf("broadcast board differs from engine:\n%s\nwant:\n%s", got, g.engine.Position())
	}
}

func TestCastlingReportsRookMove(t *testing.T) {
	t.Parallel()
	var p rules.Position
	p.Set(square(7, 4), rules.NewPiece(rules.King, rules.White))
	p.Set(square(7, 7), rules.NewPiece(rules.Rook, rules.White))
	p.Set(square(0, 4), rules.NewPiece(rules.King, rules.Black))
	g := newGameFrom("g1", "brave-otter", rules.NewEngineFrom(p, rules.White, rules.CastlingRights{}))

	if _, err := g.MakeMove("", MoveRequest{From: square(7, 4), To: square(7, 6)}); err != nil {
		t.Fatalf("castle: %v", err)
	}
	state := g.GetState()
	want := &rules.Move{From: square(7, 7), To: square(7, 5)}
	if state.LastMove == nil || state.LastMove.Castle == nil || *state.LastMove.Castle != *want {
		t.Fatalf("unexpected castle report: %+v", state.LastMove)
	}
	if rook := state.Board.Board[7][5]; rook == nil || rook.Type != rules.Rook {
		t.Errorf("rook missing from f1: %+v", rook)
	}
	if !state.Castling.White.KingMoved {
		t.Errorf("castling rights not updated: %+v", state.Castling)
	}
}

func TestResetRestoresStart(t *testing.T) {
	t.Parallel()
	g := NewGame("g1", "brave-otter")
	g.AddPlayer("alice")
	if _, err := g.MakeMove("alice", MoveRequest{From: square(6, 4), To: square(4, 4)}); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if err := g.Reset("mallory"); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("outsider reset: got=%v want=%v", err, ErrNotInGame)
	}
	if err := g.Reset("alice"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	state := g.GetState()
	if state.Board.position() != rules.StartingPosition() {
		t.Errorf("board not restored")
	}
	if state.ToMove != rules.White || state.LastMove != nil || state.Status != rules.Ongoing {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	if state.Players.White.ID != "alice" {
		t.Errorf("seat lost on reset")
	}
}

func TestLegalMovesNeverNil(t *testing.T) {
	t.Parallel()
	g := NewGame("g1", "brave-otter")
	moves, err := g.LegalMoves(square(1, 0))
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	if moves == nil || len(moves) != 0 {
		t.Errorf("want empty non-nil slice, got %#v", moves)
	}
	if _, err := g.LegalMoves(square(9, 9)); !errors.Is(err, rules.ErrInvalidSquare) {
		t.Errorf("unexpected error: got=%v want=%v", err, rules.ErrInvalidSquare)
	}
}

func TestConnections(t *testing.T) {
	t.Parallel()
	g := NewGame("g1", "brave-otter")
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	if err := g.RegisterConnection("carol", &fakeConn{}); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("spectator on full game: got=%v want=%v", err, ErrNotAuthorized)
	}

	first := &fakeConn{}
	if err := g.RegisterConnection("alice", first); err != nil {
		t.Fatalf("register: %v", err)
	}
	second := &fakeConn{}
	if err := g.RegisterConnection("alice", second); err != nil {
		t.Fatalf("register again: %v", err)
	}
	if !first.closed {
		t.Errorf("replaced connection should be closed")
	}

	broken := &fakeConn{fail: true}
	if err := g.RegisterConnection("bob", broken); err != nil {
		t.Fatalf("register bob: %v", err)
	}
	if err := g.Send("bob", ws.NewErrorMessage(errors.New("boom"))); !errors.Is(err, ErrNotInGame) {
		t.Errorf("failed connection should have been dropped, got %v", err)
	}

	g.UnregisterConnection("alice", first)
	if err := g.Send("alice", ws.NewErrorMessage(errors.New("still here"))); err != nil {
		t.Errorf("stale unregister removed the live connection: %v", err)
	}
	g.UnregisterConnection("alice", second)
	if err := g.Send("alice", ws.NewErrorMessage(errors.New("gone"))); !errors.Is(err, ErrNotInGame) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrNotInGame)
	}
}

func TestMakeMoveOffBoard(t *testing.T) {
	t.Parallel()
	g := NewGame("g1", "brave-otter")
	conn := &fakeConn{}
	if err := g.RegisterConnection("alice", conn); err != nil {
		t.Fatalf("register: %v", err)
	}
	sent := conn.count()

	tests := []struct {
		name string
		move MoveRequest
	}{
		{name: "from past last row", move: MoveRequest{From: square(8, 0), To: square(7, 0)}},
		{name: "from negative column", move: MoveRequest{From: square(7, -1), To: square(5, 0)}},
		{name: "king to off board", move: MoveRequest{From: square(7, 4), To: square(7, 8)}},
	}
	for _, tt := range tests {
		if _, err := g.MakeMove("", tt.move); !errors.Is(err, rules.ErrInvalidSquare) {
			t.Errorf("%s: got=%v want=%v", tt.name, err, rules.ErrInvalidSquare)
		}
	}

	state := g.GetState()
	if state.LastMove != nil || state.ToMove != rules.White {
		t.Errorf("rejected moves changed the game: %+v", state)
	}
	if got := conn.count(); got != sent {
		t.Errorf("rejected moves were broadcast: got=%d messages want=%d", got, sent)
	}
}
