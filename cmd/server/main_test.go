package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepository(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		backend string
		path    string
		quota   string
		want    any
		wantErr bool
	}{
		{name: "memory", backend: "memory", want: repository.NewMemoryRepository()},
		{name: "bolt", backend: "bolt", path: filepath.Join(dir, "db", "configurator.db"), want: &repository.BoltRepository{}},
		{name: "file", backend: "File", path: filepath.Join(dir, "files", "configurator.db"), quota: "1024", want: &repository.LocalRepository{}},
		{name: "file with bad quota", backend: "file", path: dir, quota: "lots", wantErr: true},
		{name: "file with zero quota", backend: "file", path: dir, quota: "0", wantErr: true},
		{name: "unknown", backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := openRepository(tt.backend, tt.path, tt.quota)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer repo.Close()
			assert.IsType(t, tt.want, repo)

			snapshot := domain.Snapshot{Product: domain.Product{Name: "Mug"}}
			require.NoError(t, repo.Save(context.Background(), "productDemo", snapshot))
			got, err := repo.Load(context.Background(), "productDemo")
			require.NoError(t, err)
			assert.Equal(t, "Mug", got.Product.Name)
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://shop.example"},
		splitOrigins(" http://localhost:3000, ,https://shop.example "))
	assert.Nil(t, splitOrigins(""))
}
