package repository

import (
	"context"
	"sync"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
)

type memoryRepository struct {
	snapshots map[string][]byte
	mutex     sync.RWMutex
}

// NewMemoryRepository returns a repository that keeps snapshots in process.
func NewMemoryRepository() SnapshotRepository {
	return &memoryRepository{snapshots: make(map[string][]byte)}
}

func (r *memoryRepository) Save(ctx context.Context, key string, snapshot domain.Snapshot) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	payload, err := Encode(snapshot)
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.snapshots[key] = payload
	return nil
}

func (r *memoryRepository) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	if err := checkKey(ctx, key); err != nil {
		return domain.Snapshot{}, err
	}

	r.mutex.RLock()
	payload, ok := r.snapshots[key]
	r.mutex.RUnlock()

	if !ok {
		return domain.Snapshot{}, ErrSnapshotNotFound
	}
	return Decode(payload)
}

func (r *memoryRepository) Close() error {
	return nil
}
