package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/dmgcalc/internal/model"
)

// BreakdownRepository persists memoized damage breakdowns.
// Rows are scoped by tables version; it satisfies cache.Store.
type BreakdownRepository struct {
	db      *pgxpool.Pool
	version string
}

// NewBreakdownRepository creates a repository writing rows under tablesVersion.
func NewBreakdownRepository(db *pgxpool.Pool, tablesVersion string) *BreakdownRepository {
	return &BreakdownRepository{db: db, version: tablesVersion}
}

// Get loads the breakdown stored under key. ok is false when absent.
func (r *BreakdownRepository) Get(ctx context.Context, key string) (model.DamageBreakdown, bool, error) {
	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT payload FROM damage_breakdowns WHERE cache_key = $1 AND tables_version = $2`,
		key, r.version,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DamageBreakdown{}, false, nil
	}
	if err != nil {
		return model.DamageBreakdown{}, false, fmt.Errorf("querying breakdown %s: %w", key, err)
	}

	var b model.DamageBreakdown
	if err := json.Unmarshal(payload, &b); err != nil {
		return model.DamageBreakdown{}, false, fmt.Errorf("decoding breakdown %s: %w", key, err)
	}
	return b, true, nil
}

// Put upserts the breakdown under key.
func (r *BreakdownRepository) Put(ctx context.Context, key string, b model.DamageBreakdown) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encoding breakdown %s: %w", key, err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO damage_breakdowns (cache_key, tables_version, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (cache_key) DO UPDATE
		 SET tables_version = EXCLUDED.tables_version, payload = EXCLUDED.payload, created_at = now()`,
		key, r.version, payload,
	)
	if err != nil {
		return fmt.Errorf("upserting breakdown %s: %w", key, err)
	}
	return nil
}

// Count returns the number of rows for the repository's tables version.
func (r *BreakdownRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM damage_breakdowns WHERE tables_version = $1`, r.version,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting breakdowns: %w", err)
	}
	return n, nil
}

// PruneStale deletes rows written under other tables versions.
func (r *BreakdownRepository) PruneStale(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM damage_breakdowns WHERE tables_version <> $1`, r.version)
	if err != nil {
		return 0, fmt.Errorf("pruning stale breakdowns: %w", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		slog.Info("pruned stale damage breakdowns", "count", n, "version", r.version)
	}
	return tag.RowsAffected(), nil
}
