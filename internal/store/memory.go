package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryStore struct {
	snapshots map[string]Snapshot
	mu        sync.RWMutex
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]Snapshot),
		now:       time.Now,
	}
}

func (m *MemoryStore) Save(_ context.Context, snapshot Snapshot) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var existing *Snapshot
	if old, ok := m.snapshots[snapshot.GameID]; ok {
		existing = &old
	}
	snapshot = stamp(snapshot, existing, m.now())
	snapshot.Pieces = snapshot.Pieces.Clone()
	m.snapshots[snapshot.GameID] = snapshot
	return snapshot, nil
}

func (m *MemoryStore) Load(_ context.Context, gameID string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot, ok := m.snapshots[gameID]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	snapshot.Pieces = snapshot.Pieces.Clone()
	return snapshot, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Meta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metas := make([]Meta, 0, len(m.snapshots))
	for _, snapshot := range m.snapshots {
		metas = append(metas, snapshot.Meta())
	}
	sortMetas(metas)
	return metas, nil
}

func (m *MemoryStore) Delete(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.snapshots[gameID]; !ok {
		return ErrNotFound
	}
	delete(m.snapshots, gameID)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func sortMetas(metas []Meta) {
	sort.Slice(metas, func(i, j int) bool {
		if metas[i].UpdatedAt.Equal(metas[j].UpdatedAt) {
			return metas[i].GameID < metas[j].GameID
		}
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
}
