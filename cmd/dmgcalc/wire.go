package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/dmgcalc/internal/cache"
	"github.com/udisondev/dmgcalc/internal/data"
	"github.com/udisondev/dmgcalc/internal/db"
	"github.com/udisondev/dmgcalc/internal/engine"
)

// wiring is an engine plus the resources behind its cache tiers.
type wiring struct {
	engine *engine.Engine
	memo   *cache.Memoized
	close  func()
}

// newWiring builds an engine from config. With cache.persistent it connects
// to PostgreSQL, applies migrations and prunes rows of other table versions.
func (a *app) newWiring(ctx context.Context, tables *data.Tables) (*wiring, error) {
	w := &wiring{close: func() {}}
	opts := engine.Options{
		Workers: a.cfg.Workers,
		Defaults: engine.Defaults{
			CharacterLevel:  a.cfg.Defaults.CharacterLevel,
			TalentLevel:     a.cfg.Defaults.TalentLevel,
			EnemyLevel:      a.cfg.Defaults.EnemyLevel,
			EnemyResistance: a.cfg.Defaults.EnemyResistance,
		},
	}

	if a.cfg.Cache.Enabled {
		mem, err := cache.NewMemoryStore(a.cfg.Cache.Size)
		if err != nil {
			return nil, fmt.Errorf("creating memory cache: %w", err)
		}
		tiers := []cache.Store{mem}

		if a.cfg.Cache.Persistent {
			repo, closeDB, err := openBreakdownStore(ctx, a.cfg.Database.DSN(), tables.Namespace())
			if err != nil {
				return nil, err
			}
			tiers = append(tiers, repo)
			w.close = closeDB
		}

		opts.Middleware = func(next engine.DamageComputer) engine.DamageComputer {
			w.memo = cache.NewMemoized(next, tables.Namespace(), tiers...)
			return w.memo
		}
	}

	e, err := engine.New(tables, opts)
	if err != nil {
		w.close()
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	w.engine = e
	return w, nil
}

func openBreakdownStore(ctx context.Context, dsn, version string) (*db.BreakdownRepository, func(), error) {
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	repo := db.NewBreakdownRepository(database.Pool(), version)
	if _, err := repo.PruneStale(ctx); err != nil {
		database.Close()
		return nil, nil, err
	}
	slog.Info("persistent damage cache ready", "version", version)
	return repo, database.Close, nil
}

// logCacheStats reports memoization effectiveness for the run.
func (w *wiring) logCacheStats() {
	if w.memo == nil {
		return
	}
	hits, misses := w.memo.Stats()
	slog.Info("damage cache", "hits", hits, "misses", misses)
}
