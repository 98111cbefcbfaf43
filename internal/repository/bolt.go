package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"go.etcd.io/bbolt"
)

const snapshotBucket = "snapshots"

// BoltRepository stores snapshots in a BoltDB file.
type BoltRepository struct {
	db *bbolt.DB
}

// OpenBolt opens or creates the BoltDB file at path.
func OpenBolt(path string) (*BoltRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket)); err != nil {
			return fmt.Errorf("create snapshot bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) Save(ctx context.Context, key string, snapshot domain.Snapshot) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	payload, err := Encode(snapshot)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		return bucket.Put([]byte(key), payload)
	})
}

func (r *BoltRepository) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	if err := checkKey(ctx, key); err != nil {
		return domain.Snapshot{}, err
	}

	var payload []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("snapshot bucket is missing")
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return ErrSnapshotNotFound
		}
		// v is only valid inside the transaction
		payload = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return domain.Snapshot{}, err
	}

	return Decode(payload)
}

// Close closes the underlying BoltDB database.
func (r *BoltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
