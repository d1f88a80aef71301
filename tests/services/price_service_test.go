package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"finflow/src/clients/truncgil"
	"finflow/src/models"
	"finflow/src/schemas"
	"finflow/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedClient struct {
	response *truncgil.TodayResponse
	err      error
	calls    int
}

func (c *fakeFeedClient) GetToday(ctx context.Context) (*truncgil.TodayResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.response, nil
}

func feedResponse() *truncgil.TodayResponse {
	return &truncgil.TodayResponse{
		UpdateDate:  "2024-01-20T12:00:00Z",
		GRA:         &truncgil.SymbolQuote{Buying: 2690, Selling: 2700, Change: 1.2},
		CEYREKALTIN: &truncgil.SymbolQuote{Buying: 4400, Selling: 4420},
		YARIMALTIN:  &truncgil.SymbolQuote{Buying: 8800, Selling: 8840},
		TAMALTIN:    &truncgil.SymbolQuote{Buying: 17600, Selling: 17680},
		RESATALTIN:  &truncgil.SymbolQuote{Buying: 18000, Selling: 18100},
		USD:         &truncgil.SymbolQuote{Buying: 33.9, Selling: 34.0},
		EUR:         &truncgil.SymbolQuote{Buying: 36.8, Selling: 36.9},
	}
}

// fakeClock trades real time for a settable instant.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newClockedPriceService(client truncgil.TruncgilServiceClientI) (*services.PriceService, *fakeClock) {
	clock := &fakeClock{current: time.Now()}
	service := services.NewPriceService(client, nil)
	service.SetClock(clock.Now)
	return service, clock
}

func TestPriceServiceGetSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh snapshot is served without a second fetch", func(t *testing.T) {
		client := &fakeFeedClient{response: feedResponse()}
		service, _ := newClockedPriceService(client)

		first, err := service.GetSnapshot(ctx)
		require.NoError(t, err)
		second, err := service.GetSnapshot(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, client.calls)
		assert.Equal(t, first.LastUpdate, second.LastUpdate)
		assert.Equal(t, 2700.0, first.Quotes[models.AssetTypeGoldGram].Selling)
		assert.Equal(t, "Gram Altın", first.Quotes[models.AssetTypeGoldGram].DisplayName)
	})

	t.Run("expiry triggers a refetch", func(t *testing.T) {
		client := &fakeFeedClient{response: feedResponse()}
		service, clock := newClockedPriceService(client)

		_, err := service.GetSnapshot(ctx)
		require.NoError(t, err)

		clock.Advance(services.PriceCacheTTL + time.Second)
		_, err = service.GetSnapshot(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, client.calls)
	})

	t.Run("missing symbol yields zero quote without affecting the rest", func(t *testing.T) {
		response := feedResponse()
		response.USD = nil
		client := &fakeFeedClient{response: response}
		service, _ := newClockedPriceService(client)

		snapshot, err := service.GetSnapshot(ctx)
		require.NoError(t, err)

		usd := snapshot.Quotes[models.AssetTypeUSD]
		assert.Equal(t, 0.0, usd.Buying)
		assert.Equal(t, 0.0, usd.Selling)
		assert.Equal(t, "Amerikan Doları", usd.DisplayName)
		assert.Equal(t, 2700.0, snapshot.Quotes[models.AssetTypeGoldGram].Selling)
		assert.Len(t, snapshot.Quotes, len(models.AllAssetTypes))
	})

	t.Run("feed failure falls back to the stale snapshot", func(t *testing.T) {
		client := &fakeFeedClient{response: feedResponse()}
		service, clock := newClockedPriceService(client)

		fresh, err := service.GetSnapshot(ctx)
		require.NoError(t, err)

		clock.Advance(services.PriceCacheTTL + time.Second)
		client.err = errors.New("feed down")

		stale, err := service.GetSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, fresh.LastUpdate, stale.LastUpdate)
		assert.Equal(t, 2, client.calls)
	})

	t.Run("feed failure with no prior snapshot is unavailable", func(t *testing.T) {
		client := &fakeFeedClient{err: errors.New("feed down")}
		service, _ := newClockedPriceService(client)

		snapshot, err := service.GetSnapshot(ctx)
		assert.Nil(t, snapshot)
		assert.ErrorIs(t, err, services.ErrPricesUnavailable)
	})

	t.Run("invalidate forces a refetch before expiry", func(t *testing.T) {
		client := &fakeFeedClient{response: feedResponse()}
		service, _ := newClockedPriceService(client)

		_, err := service.GetSnapshot(ctx)
		require.NoError(t, err)

		service.Invalidate()

		_, err = service.GetSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, client.calls)
	})
}

// slowFeedClient blocks each fetch long enough for callers to pile up.
type slowFeedClient struct {
	response *truncgil.TodayResponse
	delay    time.Duration
	calls    int32
}

func (c *slowFeedClient) GetToday(ctx context.Context) (*truncgil.TodayResponse, error) {
	atomic.AddInt32(&c.calls, 1)
	time.Sleep(c.delay)
	return c.response, nil
}

func TestPriceServiceRefreshCoalescing(t *testing.T) {
	ctx := context.Background()
	client := &slowFeedClient{response: feedResponse(), delay: 50 * time.Millisecond}
	service := services.NewPriceService(client, nil)

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	snapshots := make([]*schemas.PriceSnapshot, callers)

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			snapshots[i], errs[i] = service.GetSnapshot(ctx)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&client.calls), "concurrent misses share one feed call")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, snapshots[i])
		assert.Equal(t, "2024-01-20T12:00:00Z", snapshots[i].LastUpdate)
	}
}

func TestPriceServiceStalePersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("persisted snapshot survives an empty in-memory slot", func(t *testing.T) {
		store := newFakeCacheHandler()
		client := &fakeFeedClient{response: feedResponse()}

		warm := services.NewPriceService(client, store)
		_, err := warm.GetSnapshot(ctx)
		require.NoError(t, err)

		// A restarted instance shares the store but not the slot.
		client.err = errors.New("feed down")
		cold := services.NewPriceService(client, store)

		snapshot, err := cold.GetSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-20T12:00:00Z", snapshot.LastUpdate)
	})

	t.Run("invalidate also drops the persisted snapshot", func(t *testing.T) {
		store := newFakeCacheHandler()
		client := &fakeFeedClient{response: feedResponse()}

		service := services.NewPriceService(client, store)
		_, err := service.GetSnapshot(ctx)
		require.NoError(t, err)

		service.Invalidate()
		client.err = errors.New("feed down")

		cold := services.NewPriceService(client, store)
		_, err = cold.GetSnapshot(ctx)
		assert.ErrorIs(t, err, services.ErrPricesUnavailable)
	})
}

// fakeCacheHandler is an in-memory utils.CacheHandlerI.
type fakeCacheHandler struct {
	values map[string][]byte
}

func newFakeCacheHandler() *fakeCacheHandler {
	return &fakeCacheHandler{values: map[string][]byte{}}
}

func (h *fakeCacheHandler) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	h.values[key] = data
	return nil
}

func (h *fakeCacheHandler) Get(key string, result interface{}) error {
	data, ok := h.values[key]
	if !ok {
		return errors.New("key not found")
	}
	return json.Unmarshal(data, result)
}

func (h *fakeCacheHandler) Delete(key string) error {
	delete(h.values, key)
	return nil
}

func (h *fakeCacheHandler) Exists(key string) (bool, error) {
	_, ok := h.values[key]
	return ok, nil
}
