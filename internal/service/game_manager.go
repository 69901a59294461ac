// service/game_manager.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan model.MatchFoundEvent
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
	}
}

// Run pairs queued players every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchOnce() {
			}
		}
	}
}

// matchOnce seats the next two queued players in a fresh game. It reports whether a pair was made.
func (gm *GameManager) matchOnce() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, ok := gm.queue.NextPair()
	if !ok {
		return false
	}

	id1, id2 := player1.Player.ID, player2.Player.ID
	game := model.NewGame(uuid.New().String(), petname.Generate(2, "-"))
	p1Color, err := game.AddPlayer(id1)
	if err != nil {
		log.Errorf("error adding %s to game %s: %v", id1, game.ID, err)
		return true
	}
	p2Color, err := game.AddPlayer(id2)
	if err != nil {
		log.Errorf("error adding %s to game %s: %v", id2, game.ID, err)
		return true
	}
	gm.games[game.ID] = game
	log.Infof("matched %s (waited %s) and %s (waited %s) in game %s (%s)",
		id1, time.Since(player1.JoinedAt).Round(time.Millisecond),
		id2, time.Since(player2.JoinedAt).Round(time.Millisecond),
		game.ID, game.Name)

	gm.notifyMatch(id1, model.MatchFoundEvent{GameID: game.ID, Name: game.Name, Color: p1Color})
	gm.notifyMatch(id2, model.MatchFoundEvent{GameID: game.ID, Name: game.Name, Color: p2Color})
	return true
}

// notifyMatch hands the event to the player's waiting channel and retires it. Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Warnf("no matchmaking channel for %s, game %s", playerID, event.GameID)
		return
	}
	select {
	case ch <- event:
	default:
		log.Warnf("failed to send match event to %s", playerID)
	}
	delete(gm.matchingChannels, playerID)
	close(ch)
}

// RegisterMatchmakingChannel sets the channel the player's match event is delivered on,
// closing any channel registered before.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel drops the player's channel if it is still ch, and takes
// them out of the queue.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, exists := gm.matchingChannels[playerID]; exists && current == ch {
		delete(gm.matchingChannels, playerID)
		gm.queue.RemovePlayer(playerID)
	}
}

func (gm *GameManager) CreateGame(gameID, name string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	game := model.NewGame(gameID, name)
	gm.games[gameID] = game
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}
