package store

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/pct-cclausen/huntkeeper/internal/model"
)

var (
	boltBucket      = []byte("game")
	boltSnapshotKey = []byte("snapshot")
)

// boltStore keeps the snapshot under a single key in a bbolt database. Same
// JSON encoding as the file store; bbolt adds transactional replace for
// deployments where a bare file on disk is too fragile.
type boltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (SnapshotStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt store: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Save(_ context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(boltSnapshotKey, data)
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *boltStore) Load(_ context.Context) (*model.Snapshot, error) {
	var data []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(boltBucket).Get(boltSnapshotKey); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if data == nil {
		return &model.Snapshot{}, nil
	}

	snap := &model.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Close releases the underlying database file.
func (s *boltStore) Close() error {
	return s.db.Close()
}
