package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out unique identifiers for fields and options.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator produces random identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}

// SequenceGenerator produces deterministic identifiers such as f-1, opt-2.
type SequenceGenerator struct {
	n atomic.Uint64
}

func (g *SequenceGenerator) NewID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, g.n.Add(1))
}
