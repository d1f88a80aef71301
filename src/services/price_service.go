package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"finflow/src/clients/truncgil"
	"finflow/src/models"
	"finflow/src/schemas"
	"finflow/src/utils"
	redis_utils "finflow/src/utils/redis"
)

// ErrPricesUnavailable is returned when no snapshot can be produced at all:
// the feed call failed and no previous snapshot exists to fall back to.
var ErrPricesUnavailable = errors.New("price snapshot unavailable")

const PriceCacheTTL = 5 * time.Minute

type PriceServiceI interface {
	GetSnapshot(ctx context.Context) (*schemas.PriceSnapshot, error)
	Refresh(ctx context.Context) (*schemas.PriceSnapshot, error)
	Invalidate()
}

// PriceService keeps a single cached snapshot of all supported quotes and
// refreshes it from the external feed when the slot is empty or expired.
// A refresh replaces the slot wholesale; it can never update a subset.
type PriceService struct {
	client       truncgil.TruncgilServiceClientI
	cache        *utils.Cache[schemas.PriceSnapshot]
	cacheHandler utils.CacheHandlerI
	ttl          time.Duration
	now          func() time.Time
	refreshMutex sync.Mutex
}

// NewPriceService creates a price service backed by the given feed client.
// The cacheHandler is optional; when present the last good snapshot is also
// persisted there so a restarted instance can serve stale quotes.
func NewPriceService(client truncgil.TruncgilServiceClientI, cacheHandler utils.CacheHandlerI) *PriceService {
	return &PriceService{
		client:       client,
		cache:        utils.NewCache[schemas.PriceSnapshot](),
		cacheHandler: cacheHandler,
		ttl:          PriceCacheTTL,
		now:          time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (s *PriceService) SetClock(now func() time.Time) {
	s.now = now
}

// GetSnapshot returns the cached snapshot while it is fresh, refreshing it
// otherwise. When the refresh fails, the previous snapshot is returned even
// though it is stale; ErrPricesUnavailable is returned only when there is
// nothing to fall back to.
func (s *PriceService) GetSnapshot(ctx context.Context) (*schemas.PriceSnapshot, error) {
	if snapshot, ok := s.cache.Get(s.now()); ok {
		return &snapshot, nil
	}
	return s.Refresh(ctx)
}

// Refresh fetches a fresh snapshot from the feed and replaces the cache slot.
// Concurrent refreshes coalesce: whichever caller wins the lock performs the
// fetch and the rest reuse its result. A failed fetch leaves the existing
// slot untouched.
func (s *PriceService) Refresh(ctx context.Context) (*schemas.PriceSnapshot, error) {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	// Another caller may have completed a refresh while we waited.
	if snapshot, ok := s.cache.Get(s.now()); ok {
		return &snapshot, nil
	}

	response, err := s.client.GetToday(ctx)
	if err != nil {
		logger := utils.LoggerFromContext(ctx)
		logger.WithError(err).Warn("price feed refresh failed, falling back to stale snapshot")
		return s.staleFallback()
	}

	snapshot := buildSnapshot(response)
	s.cache.Set(s.now(), snapshot, s.ttl)
	s.persistSnapshot(ctx, snapshot)
	return &snapshot, nil
}

// Invalidate drops the cached snapshot; the next GetSnapshot call forces a
// refresh.
func (s *PriceService) Invalidate() {
	s.cache.Clear()
	if s.cacheHandler != nil {
		if key, err := snapshotCacheKey(); err == nil {
			_ = s.cacheHandler.Delete(key)
		}
	}
}

func (s *PriceService) staleFallback() (*schemas.PriceSnapshot, error) {
	if snapshot, ok := s.cache.GetStale(); ok {
		return &snapshot, nil
	}
	if s.cacheHandler != nil {
		var snapshot schemas.PriceSnapshot
		if key, err := snapshotCacheKey(); err == nil {
			if err := s.cacheHandler.Get(key, &snapshot); err == nil {
				return &snapshot, nil
			}
		}
	}
	return nil, ErrPricesUnavailable
}

func (s *PriceService) persistSnapshot(ctx context.Context, snapshot schemas.PriceSnapshot) {
	if s.cacheHandler == nil {
		return
	}
	key, err := snapshotCacheKey()
	if err != nil {
		return
	}
	if err := s.cacheHandler.Set(key, snapshot, 0); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).Warn("could not persist price snapshot")
	}
}

func snapshotCacheKey() (string, error) {
	return redis_utils.GenerateUUID("prices", "truncgil", "today")
}

// buildSnapshot converts a feed response into an all-or-nothing snapshot.
// Symbols missing from the response become quotes with zero numeric fields
// rather than failing the whole snapshot.
func buildSnapshot(response *truncgil.TodayResponse) schemas.PriceSnapshot {
	updateDate := response.UpdateDate
	if updateDate == "" {
		updateDate = time.Now().Format(time.RFC3339)
	}

	quotes := make(map[models.AssetType]schemas.PriceQuote, len(models.AllAssetTypes))
	for _, assetType := range models.AllAssetTypes {
		symbolQuote := response.QuoteFor(assetType)
		quotes[assetType] = schemas.PriceQuote{
			AssetType:     assetType,
			Buying:        symbolQuote.Buying,
			Selling:       symbolQuote.Selling,
			ChangePercent: symbolQuote.Change,
			DisplayName:   assetType.DisplayName(),
			UpdateDate:    updateDate,
		}
	}

	return schemas.PriceSnapshot{
		Quotes:     quotes,
		LastUpdate: updateDate,
	}
}
