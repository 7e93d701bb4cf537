package domain

import (
	"context"
	"io"
)

type HotelStore interface {
	Exists(ctx context.Context, id string) (bool, error)
	Read(ctx context.Context, id string) (Hotel, error)
	Write(ctx context.Context, id string, h Hotel) error

	// Read paths over the whole store
	ListIDs(ctx context.Context) ([]string, error)
	List(ctx context.Context) ([]Hotel, error)
}

// ImageStore keeps uploaded binaries and hands back the public path they are served under.
type ImageStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
