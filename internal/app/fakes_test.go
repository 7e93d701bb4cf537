package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"hotel_listings/internal/app"
	"hotel_listings/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu     sync.Mutex
	docs   map[string]domain.Hotel
	writes int
	reads  int
	// readErr, when set, is returned for that id
	readErr map[string]error
}

func newFakeStore(hs ...domain.Hotel) *fakeStore {
	s := &fakeStore{docs: map[string]domain.Hotel{}, readErr: map[string]error{}}
	for _, h := range hs {
		s.docs[h.ID] = h.Clone()
	}
	return s
}

func (s *fakeStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[id]
	return ok, nil
}

func (s *fakeStore) Read(ctx context.Context, id string) (domain.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if err := s.readErr[id]; err != nil {
		return domain.Hotel{}, err
	}
	h, ok := s.docs[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h.Clone(), nil
}

func (s *fakeStore) Write(ctx context.Context, id string, h domain.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID != id {
		return errors.New("id mismatch")
	}
	s.writes++
	s.docs[id] = h.Clone()
	return nil
}

func (s *fakeStore) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	for id := range s.readErr {
		if _, ok := s.docs[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *fakeStore) List(ctx context.Context) ([]domain.Hotel, error) {
	ids, _ := s.ListIDs(ctx)
	out := []domain.Hotel{}
	for _, id := range ids {
		if h, err := s.Read(ctx, id); err == nil {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *fakeStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]domain.Hotel
	dels  []string
	fail  bool
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*domain.Hotel) = v.Clone()
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("cache down")
	}
	if c.store == nil {
		c.store = map[string]domain.Hotel{}
	}
	c.store[key] = v.(domain.Hotel).Clone()
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

func sampleHotel(id string) domain.Hotel {
	return domain.Hotel{
		ID:              id,
		Slug:            "sample-" + id,
		Title:           "Sample " + id,
		Images:          []string{},
		Amenities:       []string{"wifi"},
		HostInformation: map[string]any{"name": "Ann"},
		Rooms:           []domain.Room{},
	}
}

func txt(s string) app.Field { return app.Field{Kind: app.FieldText, Text: s} }

func val(v any) app.Field { return app.Field{Kind: app.FieldValue, Value: v} }
