package filestore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"hotel_listings/internal/domain"
	"hotel_listings/internal/storage/filestore"
)

func newStore(t *testing.T) *filestore.Store {
	t.Helper()
	s := filestore.New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

func hotel(id string) domain.Hotel {
	return domain.Hotel{
		ID:              id,
		Slug:            "slug-" + id,
		Title:           "Hotel " + id,
		Images:          []string{},
		Amenities:       []string{"wifi"},
		HostInformation: map[string]any{"name": "Ann"},
		Rooms:           []domain.Room{{HotelSlug: "slug-" + id, RoomTitle: "Suite", RoomSlug: "suite", BedroomCount: 1}},
	}
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Write(ctx, "h1", hotel("h1")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := s.Read(ctx, "h1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Title != "Hotel h1" || len(got.Rooms) != 1 || got.HostInformation["name"] != "Ann" {
		t.Fatalf("unexpected hotel: %+v", got)
	}

	raw, err := os.ReadFile(filepath.Join(s.Dir(), "h1.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "\n  \"hotel_id\": \"h1\"") {
		t.Fatalf("document should be 2-space indented JSON:\n%s", raw)
	}
}

func TestStore_ReadMissingAndInvalidIDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"nonexistent-id", "../etc/passwd", "", "a/b"} {
		if _, err := s.Read(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Read(%q) = %v, want not found", id, err)
		}
		if ok, err := s.Exists(ctx, id); ok || err != nil {
			t.Fatalf("Exists(%q) = %v, %v", id, ok, err)
		}
	}
	if err := s.Write(ctx, "../x", hotel("../x")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("write with bad id: %v", err)
	}
}

func TestStore_WriteRejectsMismatchedID(t *testing.T) {
	s := newStore(t)
	if err := s.Write(context.Background(), "h1", hotel("h2")); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestStore_CorruptDocument(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Write(ctx, "hgood", hotel("hgood"))
	if err := os.WriteFile(filepath.Join(s.Dir(), "hbad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Read(ctx, "hbad"); !errors.Is(err, domain.ErrCorrupt) {
		t.Fatalf("expected corrupt, got %v", err)
	}
	hs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hs) != 1 || hs[0].ID != "hgood" {
		t.Fatalf("corrupt document should be skipped: %+v", hs)
	}
}

func TestStore_ListIDsIgnoresOtherFiles(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_ = s.Write(ctx, "hb", hotel("hb"))
	_ = s.Write(ctx, "ha", hotel("ha"))
	_ = os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644)
	_ = os.WriteFile(filepath.Join(s.Dir(), "hc-123.tmp"), []byte("x"), 0o644)

	ids, err := s.ListIDs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(ids, ",") != "ha,hb" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestStore_ConcurrentWritesLeaveValidDocument(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := hotel("h1")
			h.GuestCount = i
			if err := s.Write(ctx, "h1", h); err != nil {
				t.Errorf("write %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if _, err := s.Read(ctx, "h1"); err != nil {
		t.Fatalf("document unreadable after concurrent writes: %v", err)
	}
	ents, _ := os.ReadDir(s.Dir())
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
