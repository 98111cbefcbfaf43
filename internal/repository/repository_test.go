package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Product: domain.Product{Name: "Custom Mug", Description: "A mug with engraving", BasePrice: 10},
		Fields: []domain.Field{
			{
				ID:           "f-eg-1",
				Label:        "Engraving Text",
				Type:         domain.FieldTypeText,
				Required:     true,
				PricingModel: domain.PricingBase,
				Price:        domain.NewAmount(15),
				Min:          domain.NewAmount(0),
				Max:          domain.NewAmount(50),
				Options:      []domain.Option{},
			},
			{
				ID:    "f-eg-2",
				Label: "Size",
				Type:  domain.FieldTypeDropdown,
				Price: domain.NewAmount(0),
				Options: []domain.Option{
					{ID: "s", Name: "Small", Price: domain.NewAmount(0)},
					{ID: "m", Name: "Medium", Price: domain.NewAmount(5)},
				},
			},
		},
	}
}

func repositories(t *testing.T) map[string]SnapshotRepository {
	t.Helper()

	bolt, err := OpenBolt(filepath.Join(t.TempDir(), "configurator.db"))
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	local, err := NewLocalRepository(t.TempDir(), 1<<20)
	require.NoError(t, err)

	return map[string]SnapshotRepository{
		"memory": NewMemoryRepository(),
		"bolt":   bolt,
		"local":  local,
	}
}

func TestRepositorySaveLoad(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := sampleSnapshot()

			require.NoError(t, repo.Save(ctx, "productDemo", want))

			got, err := repo.Load(ctx, "productDemo")
			require.NoError(t, err)
			assert.Equal(t, want, got)

			// Saving again overwrites the previous snapshot.
			want.Product.Name = "Renamed"
			require.NoError(t, repo.Save(ctx, "productDemo", want))
			got, err = repo.Load(ctx, "productDemo")
			require.NoError(t, err)
			assert.Equal(t, "Renamed", got.Product.Name)
		})
	}
}

func TestRepositoryErrors(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.Load(ctx, "missing")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)

			assert.ErrorIs(t, repo.Save(ctx, " ", sampleSnapshot()), ErrKeyRequired)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			assert.ErrorIs(t, repo.Save(cancelled, "productDemo", sampleSnapshot()), context.Canceled)
		})
	}
}

func TestLocalRepositoryQuota(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := NewLocalRepository(dir, 128)
	require.NoError(t, err)

	small := domain.Snapshot{Product: domain.Product{Name: "Mug"}}
	require.NoError(t, repo.Save(ctx, "productDemo", small))

	big := sampleSnapshot()
	big.Product.Description = strings.Repeat("x", 256)
	err = repo.Save(ctx, "productDemo", big)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// The last good snapshot survives a rejected save.
	got, err := repo.Load(ctx, "productDemo")
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Product.Name)

	matches, err := filepath.Glob(filepath.Join(dir, "temp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLocalRepositoryRejectsPathKeys(t *testing.T) {
	repo, err := NewLocalRepository(t.TempDir(), 1024)
	require.NoError(t, err)

	err = repo.Save(context.Background(), "../escape", sampleSnapshot())
	assert.Error(t, err)

	_, err = NewLocalRepository(t.TempDir(), 0)
	assert.Error(t, err)
}
