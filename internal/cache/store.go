package cache

import (
	"context"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/udisondev/dmgcalc/internal/model"
)

// DefaultSize is the in-memory entry bound when none is configured.
const DefaultSize = 4096

// Store persists computed breakdowns by key.
type Store interface {
	Get(ctx context.Context, key string) (model.DamageBreakdown, bool, error)
	Put(ctx context.Context, key string, b model.DamageBreakdown) error
}

// MemoryStore is a bounded LRU store. Safe for concurrent use.
type MemoryStore struct {
	entries   *lru.Cache[string, model.DamageBreakdown]
	evictions atomic.Int64
}

// NewMemoryStore creates an LRU store holding at most size entries.
func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = DefaultSize
	}
	s := &MemoryStore{}
	entries, err := lru.NewWithEvict(size, func(key string, _ model.DamageBreakdown) {
		s.evictions.Add(1)
		slog.Debug("damage cache eviction", "key", key)
	})
	if err != nil {
		return nil, err
	}
	s.entries = entries
	return s, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (model.DamageBreakdown, bool, error) {
	b, ok := s.entries.Get(key)
	return b, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, b model.DamageBreakdown) error {
	s.entries.Add(key, b)
	return nil
}

// Len returns the number of cached entries.
func (s *MemoryStore) Len() int {
	return s.entries.Len()
}

// Evictions returns how many entries were dropped to respect the bound.
func (s *MemoryStore) Evictions() int64 {
	return s.evictions.Load()
}
