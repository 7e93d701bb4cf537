// Package filestore keeps one pretty-printed JSON document per hotel on local disk.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_listings/internal/adapters/observability"
	"hotel_listings/internal/domain"
)

const (
	docExt    = ".json"
	imagesDir = "images"
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type Store struct {
	dir string
}

// New does not touch the filesystem; call Init once at startup.
func New(dir string) *Store { return &Store{dir: dir} }

// Init creates the data directory and its images subdirectory.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.dir, imagesDir), 0o755); err != nil {
		return fmt.Errorf("%w: create data dirs: %v", domain.ErrStorage, err)
	}
	return nil
}

func (s *Store) Dir() string       { return s.dir }
func (s *Store) ImagesDir() string { return filepath.Join(s.dir, imagesDir) }

// path returns "" for ids that cannot name a document.
func (s *Store) path(id string) string {
	if !validID.MatchString(id) {
		return ""
	}
	return filepath.Join(s.dir, id+docExt)
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p := s.path(id)
	if p == "" {
		return false, nil
	}
	_, err := os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("%w: stat %s: %v", domain.ErrStorage, id, err)
	}
}

func (s *Store) Read(ctx context.Context, id string) (h domain.Hotel, err error) {
	defer observe("read", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return domain.Hotel{}, err
	}
	p := s.path(id)
	if p == "" {
		return domain.Hotel{}, domain.ErrNotFound
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, id, err)
	}
	return decode(id, b)
}

func decode(id string, b []byte) (domain.Hotel, error) {
	var h domain.Hotel
	if err := json.Unmarshal(b, &h); err != nil {
		return domain.Hotel{}, fmt.Errorf("%w: %s: %v", domain.ErrCorrupt, id, err)
	}
	if h.ID == "" {
		return domain.Hotel{}, fmt.Errorf("%w: %s: missing hotel_id", domain.ErrCorrupt, id)
	}
	return h, nil
}

// Write replaces the document through a temp file and rename, so readers never see a
// partially written file.
func (s *Store) Write(ctx context.Context, id string, h domain.Hotel) (err error) {
	defer observe("write", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return err
	}
	p := s.path(id)
	if p == "" {
		return domain.Invalid("hotel_id", "%q is not a valid hotel id", id)
	}
	if h.ID != id {
		return fmt.Errorf("%w: document id %q does not match %q", domain.ErrStorage, h.ID, id)
	}

	body, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, id, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", domain.ErrStorage, err)
	}
	if err := writeAtomic(s.dir, p, id+"-*.tmp", body); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, id, err)
	}
	return nil
}

func writeAtomic(dir, dst, pattern string, body []byte) error {
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// ListIDs returns the ids of all stored documents, sorted.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", domain.ErrStorage, s.dir, err)
	}
	ids := make([]string, 0, len(ents))
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != docExt {
			continue
		}
		id := strings.TrimSuffix(name, docExt)
		if validID.MatchString(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// List reads every document. Corrupt ones are logged and skipped.
func (s *Store) List(ctx context.Context) ([]domain.Hotel, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, 0, len(ids))
	for _, id := range ids {
		h, err := s.Read(ctx, id)
		if errors.Is(err, domain.ErrCorrupt) {
			log.Warn().Str("hotel_id", id).Err(err).Msg("skipping corrupt hotel document")
			continue
		}
		if errors.Is(err, domain.ErrNotFound) {
			continue // removed between listing and reading
		}
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func observe(op string, start time.Time, err *error) {
	observability.ObserveStore("file", op, *err, time.Since(start))
}
