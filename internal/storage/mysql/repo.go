package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_listings/internal/adapters/observability"
	"hotel_listings/internal/domain"
)

// Repo is the MySQL-backed domain.HotelStore.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the hotels table; call once at startup.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createHotelsSQL); err != nil {
		return fmt.Errorf("%w: create hotels table: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, existsHotelSQL, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists %s: %v", domain.ErrStorage, id, err)
	}
	return true, nil
}

func (r *Repo) Read(ctx context.Context, id string) (h domain.Hotel, err error) {
	defer observe("read", time.Now(), &err)

	var doc []byte
	if err := r.db.QueryRowContext(ctx, getHotelSQL, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, id, err)
	}
	return decode(id, doc)
}

func decode(id string, doc []byte) (domain.Hotel, error) {
	var h domain.Hotel
	if err := json.Unmarshal(doc, &h); err != nil {
		return domain.Hotel{}, fmt.Errorf("%w: %s: %v", domain.ErrCorrupt, id, err)
	}
	if h.ID == "" {
		return domain.Hotel{}, fmt.Errorf("%w: %s: missing hotel_id", domain.ErrCorrupt, id)
	}
	return h, nil
}

func (r *Repo) Write(ctx context.Context, id string, h domain.Hotel) (err error) {
	defer observe("write", time.Now(), &err)
	if h.ID != id {
		return fmt.Errorf("%w: document id %q does not match %q", domain.ErrStorage, h.ID, id)
	}
	doc, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, id, err)
	}
	if _, err := r.db.ExecContext(ctx, upsertHotelSQL, id, string(doc)); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, id, err)
	}
	return nil
}

func (r *Repo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listHotelIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: list ids: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan id: %v", domain.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list ids: %v", domain.ErrStorage, err)
	}
	return ids, nil
}

// List returns every decodable hotel; corrupt rows are logged and skipped like the file store does.
func (r *Repo) List(ctx context.Context) (hs []domain.Hotel, err error) {
	defer observe("list", time.Now(), &err)

	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("%w: scan hotel: %v", domain.ErrStorage, err)
		}
		h, err := decode(id, doc)
		if err != nil {
			log.Warn().Str("hotel_id", id).Err(err).Msg("skipping corrupt hotel row")
			continue
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list: %v", domain.ErrStorage, err)
	}
	return out, nil
}

func observe(op string, start time.Time, err *error) {
	observability.ObserveStore("mysql", op, *err, time.Since(start))
}
