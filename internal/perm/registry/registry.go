// Package registry provides a cached, read-only directory of action types.
//
// Active action types are loaded into memory at startup and refreshed on a
// bounded interval. Lookups that miss the table fall through to Redis and then
// to the store; Redis failures degrade to a direct store lookup, since cache
// unavailability must not be reported as a store failure.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"permd/internal/perm/model"
	"permd/internal/perm/repository"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "permd:action:"

// Source is the subset of the store the registry reads from.
type Source interface {
	GetActionTypeByCode(ctx context.Context, code string) (*model.ActionType, error)
	ListActiveActionTypes(ctx context.Context) ([]*model.ActionType, error)
}

type ActionRegistry struct {
	source   Source
	redis    *redis.Client // optional, nil disables the shared cache
	cacheTTL time.Duration
	refresh  time.Duration
	logger   *slog.Logger

	mu     sync.RWMutex
	byCode map[string]*model.ActionType
	loaded bool

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(source Source, rdb *redis.Client, cacheTTL, refresh time.Duration, logger *slog.Logger) *ActionRegistry {
	return &ActionRegistry{
		source:   source,
		redis:    rdb,
		cacheTTL: cacheTTL,
		refresh:  refresh,
		logger:   logger,
		byCode:   make(map[string]*model.ActionType),
		stop:     make(chan struct{}),
	}
}

// Start loads the table and begins the background refresh loop. The initial
// load failure is returned so startup can fail fast on a broken store.
func (r *ActionRegistry) Start(ctx context.Context) error {
	if err := r.Reload(ctx); err != nil {
		return err
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.refresh)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := r.Reload(refreshCtx); err != nil {
					r.logger.Warn("action registry refresh failed", "error", err)
				}
				cancel()
			case <-r.stop:
				return
			}
		}
	}()
	return nil
}

func (r *ActionRegistry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	r.wg.Wait()
}

// Reload replaces the in-memory table with the store's current active set.
func (r *ActionRegistry) Reload(ctx context.Context) error {
	actionTypes, err := r.source.ListActiveActionTypes(ctx)
	if err != nil {
		return err
	}

	byCode := make(map[string]*model.ActionType, len(actionTypes))
	for _, at := range actionTypes {
		byCode[at.Code] = at
	}

	r.mu.Lock()
	r.byCode = byCode
	r.loaded = true
	r.mu.Unlock()
	return nil
}

// Lookup resolves a code to its action type. Retired and unknown codes both
// return repository.ErrNotFound.
func (r *ActionRegistry) Lookup(ctx context.Context, code string) (*model.ActionType, error) {
	r.mu.RLock()
	at, ok := r.byCode[code]
	loaded := r.loaded
	r.mu.RUnlock()
	if ok {
		return at, nil
	}
	// A loaded table is authoritative for active codes; anything missing from
	// it was either never created or has been retired since the last refresh.
	// Fall through to the caches only when the table was never loaded.
	if loaded {
		return nil, repository.ErrNotFound
	}

	if at := r.fromRedis(ctx, code); at != nil {
		return at, nil
	}

	at, err := r.source.GetActionTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.toRedis(ctx, at)

	r.mu.Lock()
	r.byCode[code] = at
	r.mu.Unlock()
	return at, nil
}

// ListActive returns the active action types ordered by code, from memory
// when loaded.
func (r *ActionRegistry) ListActive(ctx context.Context) ([]*model.ActionType, error) {
	r.mu.RLock()
	loaded := r.loaded
	actionTypes := make([]*model.ActionType, 0, len(r.byCode))
	for _, at := range r.byCode {
		actionTypes = append(actionTypes, at)
	}
	r.mu.RUnlock()

	if !loaded {
		return r.source.ListActiveActionTypes(ctx)
	}
	sort.Slice(actionTypes, func(i, j int) bool {
		return actionTypes[i].Code < actionTypes[j].Code
	})
	return actionTypes, nil
}

// Invalidate drops a single code from both cache layers. An empty code drops
// everything and forces a reload on the next refresh tick.
func (r *ActionRegistry) Invalidate(ctx context.Context, code string) {
	r.mu.Lock()
	if code == "" {
		r.byCode = make(map[string]*model.ActionType)
		r.loaded = false
	} else {
		delete(r.byCode, code)
	}
	r.mu.Unlock()

	if r.redis != nil && code != "" {
		if err := r.redis.Del(ctx, cacheKeyPrefix+code).Err(); err != nil {
			r.logger.Warn("redis invalidate failed", "code", code, "error", err)
		}
	}
}

func (r *ActionRegistry) fromRedis(ctx context.Context, code string) *model.ActionType {
	if r.redis == nil {
		return nil
	}
	data, err := r.redis.Get(ctx, cacheKeyPrefix+code).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis lookup failed", "code", code, "error", err)
		}
		return nil
	}
	var at model.ActionType
	if err := json.Unmarshal(data, &at); err != nil {
		return nil
	}
	return &at
}

func (r *ActionRegistry) toRedis(ctx context.Context, at *model.ActionType) {
	if r.redis == nil {
		return
	}
	data, err := json.Marshal(at)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, cacheKeyPrefix+at.Code, data, r.cacheTTL).Err(); err != nil {
		r.logger.Warn("redis cache write failed", "code", at.Code, "error", err)
	}
}
