package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// MoveRequest addresses the moving piece either by square or by identifier.
type MoveRequest struct {
	From    *model.Position `json:"from"`
	PieceID *int            `json:"pieceId"`
	To      model.Position  `json:"to"`
}

type PromoteRequest struct {
	Type model.PieceType `json:"type"`
}

type GameService struct {
	gameManager *GameManager
	store       store.Store
}

func NewGameService(gameManager *GameManager, snapshots store.Store) *GameService {
	return &GameService{
		gameManager: gameManager,
		store:       snapshots,
	}
}

func (gs *GameService) CreateGame() (model.GameState, error) {
	gameID := uuid.New().String()

	state, err := gs.gameManager.CreateGame(gameID)
	if err != nil {
		return model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}
	log.Infow("game created", "game", gameID)
	return state, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, move MoveRequest) (model.GameState, error) {
	if move.From == nil && move.PieceID == nil {
		return model.GameState{}, fmt.Errorf("%w: move needs from or pieceId", ErrInvalidRequest)
	}
	return gs.gameManager.Update(gameID, func(g *model.Game) error {
		var (
			ply model.Ply
			err error
		)
		if move.PieceID != nil {
			ply, err = g.MoveByID(*move.PieceID, move.To)
		} else {
			ply, err = g.Move(*move.From, move.To)
		}
		if err != nil {
			log.Debugw("move rejected", "game", gameID, "to", move.To, "error", err)
			return err
		}
		log.Infow("move applied", "game", gameID, "turn", ply.Turn, "notation", ply.Notation)
		return nil
	})
}

func (gs *GameService) Promote(gameID string, req PromoteRequest) (model.GameState, error) {
	return gs.gameManager.Update(gameID, func(g *model.Game) error {
		ply, err := g.Promote(req.Type)
		if err != nil {
			return err
		}
		log.Infow("pawn promoted", "game", gameID, "notation", ply.Notation)
		return nil
	})
}

func (gs *GameService) Reset(gameID string) (model.GameState, error) {
	return gs.gameManager.Update(gameID, func(g *model.Game) error {
		g.Reset()
		log.Infow("game reset", "game", gameID)
		return nil
	})
}

// SaveSnapshot persists the live game under its id.
func (gs *GameService) SaveSnapshot(ctx context.Context, gameID string) (store.Snapshot, error) {
	var snapshot store.Snapshot
	if err := gs.gameManager.Inspect(gameID, func(g *model.Game) {
		snapshot = store.FromGame(g)
	}); err != nil {
		return store.Snapshot{}, err
	}
	saved, err := gs.store.Save(ctx, snapshot)
	if err != nil {
		return store.Snapshot{}, err
	}
	log.Infow("snapshot saved", "game", gameID, "turns", saved.TotalTurns)
	return saved, nil
}

// RestoreSnapshot loads a stored snapshot into a live session, creating the
// session when needed.
func (gs *GameService) RestoreSnapshot(ctx context.Context, gameID string) (model.GameState, error) {
	snapshot, err := gs.store.Load(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	game, err := model.RestoreGame(gameID, snapshot.Pieces, snapshot.TotalTurns, snapshot.Promotion)
	if err != nil {
		return model.GameState{}, fmt.Errorf("restore %s: %w", gameID, err)
	}
	log.Infow("snapshot restored", "game", gameID, "turns", snapshot.TotalTurns)
	return gs.gameManager.PutGame(game), nil
}

func (gs *GameService) LoadSnapshot(ctx context.Context, gameID string) (store.Snapshot, error) {
	return gs.store.Load(ctx, gameID)
}

func (gs *GameService) ListSnapshots(ctx context.Context) ([]store.Meta, error) {
	return gs.store.List(ctx)
}

func (gs *GameService) DeleteSnapshot(ctx context.Context, gameID string) error {
	if err := gs.store.Delete(ctx, gameID); err != nil {
		return err
	}
	log.Infow("snapshot deleted", "game", gameID)
	return nil
}

// ValidateSnapshot checks that a snapshot could be restored.
func (gs *GameService) ValidateSnapshot(snapshot store.Snapshot) error {
	_, err := model.RestoreGame(snapshot.GameID, snapshot.Pieces, snapshot.TotalTurns, snapshot.Promotion)
	return err
}

func (gs *GameService) RegisterConnection(gameID string, conn Conn) (string, error) {
	connID, err := gs.gameManager.RegisterConnection(gameID, conn)
	if err != nil {
		return "", err
	}
	log.Debugw("connection registered", "game", gameID, "conn", connID)
	return connID, nil
}

func (gs *GameService) UnregisterConnection(gameID string, connID string) {
	log.Debugw("connection unregistered", "game", gameID, "conn", connID)
	gs.gameManager.UnregisterConnection(gameID, connID)
}

func (gs *GameService) SendError(gameID string, connID string, err error) {
	if sendErr := gs.gameManager.Send(gameID, connID, ws.NewErrorMessage(err.Error())); sendErr != nil {
		log.Warnw("failed to send error", "game", gameID, "conn", connID, "error", sendErr)
	}
}
