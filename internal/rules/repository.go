package rules

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/JaimeStill/vendor-products/pkg/repository"
)

type row struct {
	rule    string
	enabled bool
}

func scanRow(s repository.Scanner) (row, error) {
	var r row
	err := s.Scan(&r.rule, &r.enabled)
	return r, err
}

// loader reads the stored rule rows.
type loader func(ctx context.Context) ([]row, error)

func queryRules(db *sql.DB) loader {
	return func(ctx context.Context) ([]row, error) {
		return repository.QueryMany(ctx, db,
			"SELECT rule_type, is_enabled FROM configuration_rules", nil, scanRow)
	}
}

type store struct {
	query    loader
	defaults Snapshot
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	cached   Snapshot
	loadedAt time.Time
}

// NewStore creates a Source backed by the configuration_rules table.
// Loaded snapshots are reused for the configured refresh interval.
func NewStore(db *sql.DB, cfg *Config, logger *slog.Logger) Source {
	return newStore(queryRules(db), cfg, logger)
}

func newStore(query loader, cfg *Config, logger *slog.Logger) *store {
	return &store{
		query:    query,
		defaults: cfg.Snapshot(),
		ttl:      cfg.RefreshIntervalDuration(),
		logger:   logger.With("system", "rules"),
		now:      time.Now,
	}
}

func (s *store) Snapshot(ctx context.Context) (Snapshot, error) {
	if snap, ok := s.fresh(); ok {
		return snap, nil
	}

	// The load is shared by concurrent callers and outlives any one of them.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("snapshot", func() (any, error) {
		return s.load(loadCtx)
	})
	if err != nil {
		return nil, err
	}
	return clone(v.(Snapshot)), nil
}

func (s *store) fresh() (Snapshot, bool) {
	if s.ttl <= 0 {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == nil || s.now().Sub(s.loadedAt) >= s.ttl {
		return nil, false
	}
	return clone(s.cached), true
}

func (s *store) load(ctx context.Context) (Snapshot, error) {
	rows, err := s.query(ctx)
	if err != nil {
		return nil, fmt.Errorf("load configuration rules: %w", err)
	}

	snap := clone(s.defaults)
	for _, r := range rows {
		rule, err := Parse(r.rule)
		if err != nil {
			s.logger.Warn("ignoring stored rule", "rule", r.rule)
			continue
		}
		snap[rule] = r.enabled
	}

	s.mu.Lock()
	s.cached = snap
	s.loadedAt = s.now()
	s.mu.Unlock()

	return snap, nil
}

func clone(s Snapshot) Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
