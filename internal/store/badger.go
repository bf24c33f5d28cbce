package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyPrefix = "snapshot/"

// BadgerStore keeps snapshots as JSON values in BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	now func() time.Time
}

// OpenBadger opens (or creates) a database under dir.
func OpenBadger(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir))
}

// OpenBadgerInMemory is used by tests and throwaway servers.
func OpenBadgerInMemory() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db, now: time.Now}, nil
}

func snapshotKey(gameID string) []byte {
	return []byte(keyPrefix + gameID)
}

func (s *BadgerStore) Save(_ context.Context, snapshot Snapshot) (Snapshot, error) {
	err := s.db.Update(func(txn *badger.Txn) error {
		var existing *Snapshot
		item, err := txn.Get(snapshotKey(snapshot.GameID))
		switch {
		case err == nil:
			var old Snapshot
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &old)
			}); err != nil {
				return err
			}
			existing = &old
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		snapshot = stamp(snapshot, existing, s.now())
		data, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		return txn.Set(snapshotKey(snapshot.GameID), data)
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("save snapshot %s: %w", snapshot.GameID, err)
	}
	return snapshot, nil
}

func (s *BadgerStore) Load(_ context.Context, gameID string) (Snapshot, error) {
	var snapshot Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(gameID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot %s: %w", gameID, err)
	}
	return snapshot, nil
}

func (s *BadgerStore) List(_ context.Context) ([]Meta, error) {
	metas := []Meta{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var snapshot Snapshot
				if err := json.Unmarshal(val, &snapshot); err != nil {
					return err
				}
				metas = append(metas, snapshot.Meta())
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	sortMetas(metas)
	return metas, nil
}

func (s *BadgerStore) Delete(_ context.Context, gameID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(snapshotKey(gameID)); err != nil {
			return err
		}
		return txn.Delete(snapshotKey(gameID))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", gameID, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
