package cache

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/dmgcalc/internal/game/combat"
	"github.com/udisondev/dmgcalc/internal/model"
)

// Computer evaluates one damage input.
type Computer interface {
	ComputeDamage(ctx context.Context, in combat.Input) (model.DamageBreakdown, error)
}

// Memoized caches a Computer in one or more store tiers, fastest first.
// A hit in a slower tier is copied into the faster ones. Store failures are
// logged and treated as misses; computation errors are returned and never cached.
type Memoized struct {
	next      Computer
	namespace string
	tiers     []Store

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoized wraps next. namespace scopes keys, usually the tables version.
func NewMemoized(next Computer, namespace string, tiers ...Store) *Memoized {
	return &Memoized{next: next, namespace: namespace, tiers: tiers}
}

// ComputeDamage returns the cached breakdown for in or computes and stores it.
func (m *Memoized) ComputeDamage(ctx context.Context, in combat.Input) (model.DamageBreakdown, error) {
	key, err := Key(m.namespace, in)
	if err != nil {
		return model.DamageBreakdown{}, err
	}

	for i, tier := range m.tiers {
		b, ok, err := tier.Get(ctx, key)
		if err != nil {
			slog.Warn("damage cache read failed", "tier", i, "key", key, "err", err)
			continue
		}
		if !ok {
			continue
		}
		m.hits.Add(1)
		m.fill(ctx, m.tiers[:i], key, b)
		return b, nil
	}

	m.misses.Add(1)
	b, err := m.next.ComputeDamage(ctx, in)
	if err != nil {
		return model.DamageBreakdown{}, err
	}
	m.fill(ctx, m.tiers, key, b)
	return b, nil
}

func (m *Memoized) fill(ctx context.Context, tiers []Store, key string, b model.DamageBreakdown) {
	for i, tier := range tiers {
		if err := tier.Put(ctx, key, b); err != nil {
			slog.Warn("damage cache write failed", "tier", i, "key", key, "err", err)
		}
	}
}

// Stats returns hit and miss counters.
func (m *Memoized) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
