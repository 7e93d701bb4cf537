package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_listings/internal/domain"
)

// CacheWarmer loads every stored hotel into the cache with bounded concurrency.
type CacheWarmer struct {
	store   domain.HotelStore
	cache   domain.Cache
	ttl     time.Duration
	workers int
}

type WarmReport struct {
	Total  int
	Warmed int
	Failed int
}

func NewCacheWarmer(s domain.HotelStore, c domain.Cache, ttl time.Duration, workers int) *CacheWarmer {
	if workers <= 0 {
		workers = 1
	}
	return &CacheWarmer{store: s, cache: c, ttl: ttl, workers: workers}
}

// Warm returns an error only when the id listing fails or ctx ends; per-hotel
// failures (corrupt documents, cache errors) are counted in the report.
func (w *CacheWarmer) Warm(ctx context.Context) (WarmReport, error) {
	ids, err := w.store.ListIDs(ctx)
	if err != nil {
		return WarmReport{}, err
	}

	sem := semaphore.NewWeighted(int64(w.workers))
	var wg sync.WaitGroup
	var warmed, failed atomic.Int64
	var acquireErr error

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			acquireErr = err
			break
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}

		wg.Add(1)
		go func(hotelID string) {
			defer wg.Done()
			defer sem.Release(1)

			h, err := w.store.Read(ctx, hotelID)
			if err != nil {
				failed.Add(1)
				log.Warn().Str("hotel_id", hotelID).Err(err).Msg("warm read failed")
				return
			}
			if err := w.cache.Set(ctx, hotelKey(hotelID), h, int(w.ttl.Seconds())); err != nil {
				failed.Add(1)
				log.Warn().Str("hotel_id", hotelID).Err(err).Msg("warm cache set failed")
				return
			}
			warmed.Add(1)
		}(id)
	}
	wg.Wait()

	rep := WarmReport{Total: len(ids), Warmed: int(warmed.Load()), Failed: int(failed.Load())}
	return rep, acquireErr
}
