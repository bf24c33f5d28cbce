// Package store persists game snapshots keyed by game id.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is everything needed to rebuild a game session.
type Snapshot struct {
	GameID     string                  `json:"gameId"`
	Pieces     model.Board             `json:"pieces"`
	TotalTurns int                     `json:"totalTurns"`
	Promotion  *model.PromotionRequest `json:"promotion"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// Meta is the listing view of a snapshot.
type Meta struct {
	GameID     string    `json:"gameId"`
	TotalTurns int       `json:"totalTurns"`
	Pieces     int       `json:"pieces"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s Snapshot) Meta() Meta {
	return Meta{
		GameID:     s.GameID,
		TotalTurns: s.TotalTurns,
		Pieces:     len(s.Pieces),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// Store implementations keep CreatedAt of an existing record on Save and stamp
// UpdatedAt. List is ordered most recently updated first.
type Store interface {
	Save(ctx context.Context, snapshot Snapshot) (Snapshot, error)
	Load(ctx context.Context, gameID string) (Snapshot, error)
	List(ctx context.Context) ([]Meta, error)
	Delete(ctx context.Context, gameID string) error
	Close() error
}

// FromGame captures the persistent part of a game.
func FromGame(g *model.Game) Snapshot {
	var promotion *model.PromotionRequest
	if g.Promotion != nil {
		request := *g.Promotion
		promotion = &request
	}
	return Snapshot{
		GameID:     g.ID,
		Pieces:     g.Board.Clone(),
		TotalTurns: g.TotalTurns,
		Promotion:  promotion,
	}
}

func stamp(snapshot Snapshot, existing *Snapshot, now time.Time) Snapshot {
	snapshot.CreatedAt = now
	if existing != nil && !existing.CreatedAt.IsZero() {
		snapshot.CreatedAt = existing.CreatedAt
	}
	snapshot.UpdatedAt = now
	return snapshot
}
