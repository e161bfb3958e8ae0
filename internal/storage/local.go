// Package storage keeps uploaded product images on local disk.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"stockroom/internal/intake"
	applog "stockroom/internal/log"
)

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStore writes images under Dir/products and serves them below BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if err := os.MkdirAll(filepath.Join(dir, "products"), 0o755); err != nil {
		return nil, fmt.Errorf("media dir: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload stores f under a generated name and returns its URL. hint is only
// recorded in the log.
func (s *LocalStore) Upload(ctx context.Context, hint string, f intake.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := extension(f)
	if ext == "" {
		return "", fmt.Errorf("unsupported image type %q", f.ContentType)
	}
	name := uuid.NewString() + ext
	dst := filepath.Join(s.Dir, "products", name)
	if err := os.WriteFile(dst, f.Data, 0o644); err != nil {
		return "", err
	}
	url := s.BaseURL + "/" + path.Join("products", name)
	applog.Info(nil, "storage.upload", map[string]any{"hint": hint, "filename": f.Filename, "url": url, "bytes": len(f.Data)})
	return url, nil
}

func extension(f intake.File) string {
	ext := strings.ToLower(filepath.Ext(f.Filename))
	if allowedExt[ext] {
		return ext
	}
	ct, _, _ := strings.Cut(strings.ToLower(f.ContentType), ";")
	return extByType[strings.TrimSpace(ct)]
}
