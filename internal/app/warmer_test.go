package app_test

import (
	"context"
	"testing"
	"time"

	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
)

func TestCacheWarmer_Warm(t *testing.T) {
	store := newFakeStore(sampleHotel("ha"), sampleHotel("hb"), sampleHotel("hc"))
	store.readErr["hbad"] = domain.ErrCorrupt
	cache := &fakeCache{}

	rep, err := app.NewCacheWarmer(store, cache, time.Minute, 2).Warm(context.Background())
	if err != nil {
		t.Fatalf("warm: %v", err)
	}
	if rep.Total != 4 || rep.Warmed != 3 || rep.Failed != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	for _, id := range []string{"ha", "hb", "hc"} {
		if !cache.has("hotel:" + id) {
			t.Fatalf("%s not warmed", id)
		}
	}
}

func TestCacheWarmer_CacheDown(t *testing.T) {
	store := newFakeStore(sampleHotel("ha"))
	rep, err := app.NewCacheWarmer(store, &fakeCache{fail: true}, time.Minute, 0).Warm(context.Background())
	if err != nil {
		t.Fatalf("warm: %v", err)
	}
	if rep.Warmed != 0 || rep.Failed != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestCacheWarmer_CanceledContext(t *testing.T) {
	store := newFakeStore(sampleHotel("ha"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := app.NewCacheWarmer(store, &fakeCache{}, time.Minute, 1).Warm(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}
