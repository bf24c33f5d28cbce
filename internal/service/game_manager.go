// service/game_manager.go
package service

import (
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// session pairs a game with the connections watching it. The engine itself is
// lock-free; all access to game goes through mu.
type session struct {
	mu   sync.Mutex
	game *model.Game
	hub  *Hub
}

type GameManager struct {
	sessions map[string]*session
	mu       sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		sessions: make(map[string]*session),
	}
}

func (gm *GameManager) CreateGame(gameID string) (model.GameState, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.sessions[gameID]; exists {
		return model.GameState{}, ErrGameExists
	}

	game := model.NewGame(gameID)
	gm.sessions[gameID] = &session{game: game, hub: NewHub()}
	return game.State(), nil
}

// PutGame installs game under its id, replacing whatever was being played there.
// Watchers of a replaced game stay connected and receive the new state.
func (gm *GameManager) PutGame(game *model.Game) model.GameState {
	gm.mu.Lock()
	s, exists := gm.sessions[game.ID]
	if !exists {
		s = &session{hub: NewHub()}
		gm.sessions[game.ID] = s
	}
	gm.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = game
	state := game.State()
	s.broadcast(state)
	return state
}

func (gm *GameManager) get(gameID string) (*session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.sessions[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return s, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	s, err := gm.get(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State(), nil
}

// Update runs fn against the game under the session lock. When fn succeeds the
// new state is broadcast to every watcher and returned.
func (gm *GameManager) Update(gameID string, fn func(*model.Game) error) (model.GameState, error) {
	s, err := gm.get(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.game); err != nil {
		return model.GameState{}, err
	}
	state := s.game.State()
	s.broadcast(state)
	return state, nil
}

// Inspect runs fn against the game under the session lock without broadcasting.
func (gm *GameManager) Inspect(gameID string, fn func(*model.Game)) error {
	s, err := gm.get(gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
	return nil
}

func (s *session) broadcast(state model.GameState) {
	if s.hub.Len() == 0 {
		return
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorw("failed to marshal state", "game", state.ID, "error", err)
		return
	}
	s.hub.Broadcast(msg)
}

// RegisterConnection subscribes conn to a game and sends it the current state.
func (gm *GameManager) RegisterConnection(gameID string, conn Conn) (string, error) {
	s, err := gm.get(gameID)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	connID := s.hub.Register(conn)
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.State())
	if err != nil {
		s.hub.Unregister(connID)
		return "", fmt.Errorf("initial state: %w", err)
	}
	if err := s.hub.Send(connID, msg); err != nil {
		s.hub.Unregister(connID)
		return "", fmt.Errorf("initial state: %w", err)
	}
	return connID, nil
}

func (gm *GameManager) UnregisterConnection(gameID string, connID string) {
	s, err := gm.get(gameID)
	if err != nil {
		return
	}
	s.hub.Unregister(connID)
}

func (gm *GameManager) Send(gameID string, connID string, msg ws.Message) error {
	s, err := gm.get(gameID)
	if err != nil {
		return err
	}
	return s.hub.Send(connID, msg)
}
