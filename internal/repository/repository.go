package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrQuotaExceeded    = errors.New("storage quota exceeded")
	ErrKeyRequired      = errors.New("snapshot key is required")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotRepository is the key-value store a saved product ends up in.
type SnapshotRepository interface {
	Save(ctx context.Context, key string, snapshot domain.Snapshot) error
	Load(ctx context.Context, key string) (domain.Snapshot, error)
	Close() error
}

// Encode serializes a snapshot as it is written to every backend.
func Encode(snapshot domain.Snapshot) ([]byte, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return payload, nil
}

// Decode parses a stored snapshot.
func Decode(payload []byte) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snapshot, nil
}

func checkKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	return nil
}
