package app

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"hotel_listings/internal/domain"
)

type QueryService struct {
	store    domain.HotelStore
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewQueryService accepts a nil cache; every read then goes to the store.
func NewQueryService(s domain.HotelStore, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{store: s, cache: c, cacheTTL: ttl}
}

func hotelKey(id string) string { return "hotel:" + id }

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	if s.cache != nil {
		var h domain.Hotel
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}

	// concurrent misses for one id share a single store read
	v, err, _ := s.group.Do(key, func() (any, error) {
		h, err := s.store.Read(ctx, id)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
		}
		return h, nil
	})
	if err != nil {
		return domain.Hotel{}, err
	}
	// callers must not share slices with each other
	return v.(domain.Hotel).Clone(), nil
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	hs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if hs == nil {
		hs = []domain.Hotel{}
	}
	return hs, nil
}
