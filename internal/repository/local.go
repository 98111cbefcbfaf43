package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
)

// LocalRepository stores each snapshot as a JSON file named after its key,
// refusing snapshots larger than its quota.
type LocalRepository struct {
	maxFileSize int // Maximum number of bytes per snapshot
	basePath    string
}

// maxBytesWriter is a writer that errors when more than N bytes are written
type maxBytesWriter struct {
	w io.Writer // underlying writer
	n int       // max bytes remaining
}

func (l *maxBytesWriter) Write(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, ErrQuotaExceeded
	}
	if len(p) > l.n {
		n, err := l.w.Write(p[:l.n])
		l.n -= n
		if err != nil {
			return n, err
		}
		return n, ErrQuotaExceeded
	}
	n, err := l.w.Write(p)
	l.n -= n
	return n, err
}

// NewLocalRepository creates a file-backed repository.
// basePath is the directory the snapshots are written to
// maxSize is the max number of bytes a snapshot can take
func NewLocalRepository(basePath string, maxSize int) (*LocalRepository, error) {
	p, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		return nil, fmt.Errorf("storage quota must be positive, got %d", maxSize)
	}

	return &LocalRepository{basePath: p, maxFileSize: maxSize}, nil
}

func (l *LocalRepository) Save(ctx context.Context, key string, snapshot domain.Snapshot) error {
	if err := checkKey(ctx, key); err != nil {
		return err
	}
	payload, err := Encode(snapshot)
	if err != nil {
		return err
	}

	fp, err := l.fullPath(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fp)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("unable to create directory: %w", err)
	}

	// Write to a temporary file so a rejected snapshot never replaces the last good one
	tempFile, err := os.CreateTemp(dir, "temp-*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	writer := &maxBytesWriter{w: tempFile, n: l.maxFileSize}
	if _, err := io.Copy(writer, bytes.NewReader(payload)); err != nil {
		tempFile.Close()
		if errors.Is(err, ErrQuotaExceeded) {
			return fmt.Errorf("snapshot of %d bytes exceeds %d bytes: %w", len(payload), l.maxFileSize, ErrQuotaExceeded)
		}
		return fmt.Errorf("unable to write to file: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, fp); err != nil {
		return fmt.Errorf("unable to move temporary file to final location: %w", err)
	}

	return nil
}

func (l *LocalRepository) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	if err := checkKey(ctx, key); err != nil {
		return domain.Snapshot{}, err
	}

	fp, err := l.fullPath(key)
	if err != nil {
		return domain.Snapshot{}, err
	}

	payload, err := os.ReadFile(fp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Snapshot{}, ErrSnapshotNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("unable to read the file: %w", err)
	}

	return Decode(payload)
}

func (l *LocalRepository) Close() error {
	return nil
}

// returns the absolute path of the file holding key
func (l *LocalRepository) fullPath(key string) (string, error) {
	name := filepath.Base(filepath.Clean(key))
	if name != key {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(l.basePath, name+".json"), nil
}
