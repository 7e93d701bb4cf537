package filestore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"hotel_listings/internal/domain"
)

var validExt = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// Images stores uploaded files under one directory and names them
// "<unix millis>-<random>.<ext>". prefix is the public URL path they are served under.
type Images struct {
	dir    string
	prefix string
	now    func() time.Time
}

func NewImages(dir, prefix string) *Images {
	return &Images{dir: dir, prefix: strings.TrimSuffix(prefix, "/"), now: time.Now}
}

func (im *Images) Dir() string { return im.dir }

// Save streams r into a new file and returns its public path.
func (im *Images) Save(ctx context.Context, originalName string, r io.Reader) (p string, err error) {
	defer observe("image_save", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(im.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create images dir: %v", domain.ErrStorage, err)
	}

	name := im.fileName(originalName)
	tmp, err := os.CreateTemp(im.dir, "upload-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", domain.ErrStorage, err)
	}
	tmpPath := tmp.Name()

	bw := bufio.NewWriter(tmp)
	if _, err := io.Copy(bw, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: stream upload: %v", domain.ErrStorage, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: flush upload: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: close upload: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpPath, filepath.Join(im.dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: rename upload: %v", domain.ErrStorage, err)
	}
	return im.prefix + "/" + name, nil
}

// Remove deletes a file previously returned by Save. Missing files are not an error.
func (im *Images) Remove(ctx context.Context, publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || !strings.HasPrefix(publicPath, im.prefix+"/") {
		return domain.Invalid("image", "%q is not a stored image", publicPath)
	}
	if err := os.Remove(filepath.Join(im.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove image: %v", domain.ErrStorage, err)
	}
	return nil
}

func (im *Images) fileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !validExt.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%d-%d%s", im.now().UnixMilli(), rand.IntN(1_000_000_000), ext)
}
