package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_listings/internal/domain"
)

const maxIDAttempts = 5

// HotelService owns the write paths. Every read-modify-write on one hotel id runs
// under that id's lock.
type HotelService struct {
	store domain.HotelStore
	cache domain.Cache
	locks *keyedMutex
	newID func() string
}

func NewHotelService(s domain.HotelStore, cache domain.Cache) *HotelService {
	return &HotelService{store: s, cache: cache, locks: newKeyedMutex(), newID: NewHotelID}
}

// WithIDGenerator swaps the id source; tests use it to force collisions.
func (s *HotelService) WithIDGenerator(fn func() string) *HotelService {
	s.newID = fn
	return s
}

func (s *HotelService) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

// Create builds and persists a new hotel. images are public paths of stored uploads.
func (s *HotelService) Create(ctx context.Context, p RawPayload, images []string) (domain.Hotel, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		h, err := BuildHotel(p, images, s.newID)
		if err != nil {
			return domain.Hotel{}, err
		}

		created, err := s.createIfAbsent(ctx, h)
		if err != nil {
			return domain.Hotel{}, err
		}
		if created {
			log.Info().Str("hotel_id", h.ID).Str("slug", h.Slug).Msg("hotel created")
			return h, nil
		}
		log.Warn().Str("hotel_id", h.ID).Int("attempt", attempt+1).Msg("hotel id collision, regenerating")
	}
	return domain.Hotel{}, fmt.Errorf("%w: no free hotel id after %d attempts", domain.ErrStorage, maxIDAttempts)
}

func (s *HotelService) createIfAbsent(ctx context.Context, h domain.Hotel) (bool, error) {
	unlock := s.locks.Lock(h.ID)
	defer unlock()

	exists, err := s.store.Exists(ctx, h.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	return true, s.store.Write(ctx, h.ID, h)
}

// Update merges patch onto the stored hotel. Unknown ids fail with ErrNotFound and write nothing.
func (s *HotelService) Update(ctx context.Context, id string, patch RawPayload) (domain.Hotel, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	cur, err := s.store.Read(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	h, err := MergeHotel(cur, patch)
	if err != nil {
		return domain.Hotel{}, err
	}
	if err := s.store.Write(ctx, id, h); err != nil {
		return domain.Hotel{}, err
	}
	s.invalidateHotel(ctx, id)
	log.Info().Str("hotel_id", id).Msg("hotel updated")
	return h, nil
}

// AttachImages appends already stored uploads to the hotel's image list.
func (s *HotelService) AttachImages(ctx context.Context, id string, paths []string) (domain.Hotel, error) {
	if id == "" {
		return domain.Hotel{}, domain.Invalid("hotel_id", "hotel ID is required")
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	cur, err := s.store.Read(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	h, err := AttachImages(cur, paths)
	if err != nil {
		return domain.Hotel{}, err
	}
	if err := s.store.Write(ctx, id, h); err != nil {
		return domain.Hotel{}, err
	}
	s.invalidateHotel(ctx, id)
	log.Info().Str("hotel_id", id).Int("added", len(paths)).Int("total", len(h.Images)).Msg("images attached")
	return h, nil
}

func (s *HotelService) invalidateHotel(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, hotelKey(id)); err != nil {
		log.Warn().Err(err).Str("hotel_id", id).Msg("cache eviction failed")
	}
}
