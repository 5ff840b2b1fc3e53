package usecase

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/metrics"
)

// CachedReferenceStore decorates a ReferenceStore with a cache. Reference
// data is read-heavy and changes rarely; lookups are served from cache when
// possible and misses fall through to the underlying store. Cache failures
// degrade to direct lookups.
type CachedReferenceStore struct {
	store   ReferenceStore
	cache   Cache
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewCachedReferenceStore creates a new CachedReferenceStore.
func NewCachedReferenceStore(store ReferenceStore, cache Cache, logger zerolog.Logger, m *metrics.Metrics) *CachedReferenceStore {
	return &CachedReferenceStore{
		store:   store,
		cache:   cache,
		logger:  logger,
		metrics: m,
	}
}

// FindFeeByType looks up a fee schedule by type.
func (s *CachedReferenceStore) FindFeeByType(ctx context.Context, feeType domain.FeeType) (*domain.FeeSchedule, error) {
	key := "fee:" + string(feeType)

	var cached domain.FeeSchedule
	if s.fromCache(ctx, "fee", key, &cached) {
		return &cached, nil
	}

	schedule, err := s.store.FindFeeByType(ctx, feeType)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, schedule)

	return schedule, nil
}

// FindCurrencyByID looks up a currency by id.
func (s *CachedReferenceStore) FindCurrencyByID(ctx context.Context, id string) (*domain.Currency, error) {
	key := "currency:" + id

	var cached domain.Currency
	if s.fromCache(ctx, "currency", key, &cached) {
		return &cached, nil
	}

	currency, err := s.store.FindCurrencyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, currency)

	return currency, nil
}

// FindNetworkByID looks up a network by id.
func (s *CachedReferenceStore) FindNetworkByID(ctx context.Context, id string) (*domain.Network, error) {
	key := "network:" + id

	var cached domain.Network
	if s.fromCache(ctx, "network", key, &cached) {
		return &cached, nil
	}

	network, err := s.store.FindNetworkByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, network)

	return network, nil
}

func (s *CachedReferenceStore) fromCache(ctx context.Context, entity, key string, out any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		s.observe(entity, "miss")
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("corrupt reference cache entry, dropping")
		_ = s.cache.Delete(ctx, key)
		s.observe(entity, "miss")

		return false
	}

	s.observe(entity, "hit")

	return true
}

func (s *CachedReferenceStore) toCache(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, string(raw), ReferenceCacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("reference cache write failed")
	}
}

func (s *CachedReferenceStore) observe(entity, outcome string) {
	if s.metrics != nil {
		s.metrics.ReferenceCacheHits.WithLabelValues(entity, outcome).Inc()
	}
}
