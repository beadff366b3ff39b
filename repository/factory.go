package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Stores bundles the record repositories of one storage backend.
type Stores struct {
	Backend      string
	Properties   PropertyRepository
	Leads        LeadRepository
	Settings     SettingsRepository
	Calculations CalculationRepository

	close func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewStores returns the repositories for the provided backend spec.
// Examples:
//   - "memory"
//   - "sqlite:/var/lib/realty/realty.db"
func NewStores(ctx context.Context, spec string) (*Stores, error) {
	backend, arg := parseSpec(spec)

	switch backend {
	case BackendMemory:
		return &Stores{
			Backend:      BackendMemory,
			Properties:   NewPropertyRepositoryMemory(),
			Leads:        NewLeadRepositoryMemory(),
			Settings:     NewSettingsRepositoryMemory(),
			Calculations: NewCalculationRepositoryMemory(),
		}, nil
	case BackendSQLite:
		if arg == "" {
			arg = "realty.db"
		}
		store, err := OpenSQLiteStore(ctx, arg)
		if err != nil {
			return nil, err
		}
		slog.Info("sqlite store opened", "path", arg)
		return &Stores{
			Backend:      BackendSQLite,
			Properties:   store.Properties(),
			Leads:        store.Leads(),
			Settings:     store.Settings(),
			Calculations: store.Calculations(),
			close:        store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}

// NewCache returns the cache for the provided backend spec.
// Examples:
//   - "memory"
//   - "redis:localhost:6379"
func NewCache(ctx context.Context, spec, password string, db int) (CacheRepository, func() error, error) {
	backend, arg := parseSpec(spec)

	switch backend {
	case BackendMemory:
		return NewMemoryCache(), func() error { return nil }, nil
	case BackendRedis:
		if arg == "" {
			arg = "localhost:6379"
		}
		cache := NewRedisCache(arg, password, db)
		if err := cache.Ping(ctx); err != nil {
			cache.Close()
			return nil, nil, fmt.Errorf("connecting to redis %s: %w", arg, err)
		}
		slog.Info("redis cache connected", "addr", arg)
		return cache, cache.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend: %s", backend)
	}
}

func parseSpec(spec string) (backend, arg string) {
	if spec == "" {
		return BackendMemory, ""
	}
	backend, arg, _ = strings.Cut(spec, ":")
	return strings.ToLower(strings.TrimSpace(backend)), strings.TrimSpace(arg)
}
