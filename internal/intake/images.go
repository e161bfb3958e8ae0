package intake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	applog "stockroom/internal/log"
)

// Uploader stores one image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, hint string, f File) (string, error)
}

// UploadError describes one file that did not make it into storage.
type UploadError struct {
	Key      string
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s (%s): %v", e.Filename, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

var (
	ErrNotImage = errors.New("file must be an image")
	ErrTooLarge = errors.New("file is too large")
)

// Ingester forwards submitted images to an Uploader.
type Ingester struct {
	Store Uploader
	// MaxBytes rejects larger files; zero disables the check.
	MaxBytes int64
	// Parallel bounds concurrent uploads; zero means 4.
	Parallel int
}

type job struct {
	hint string
	file File
}

// Ingest uploads the main image (first file under KeyMainImage) and every
// additional image, and returns the URLs that succeeded: main first, then
// additional images in submission order. Failed files are logged and left
// out; Ingest itself never fails.
func (in *Ingester) Ingest(ctx context.Context, files []File) []string {
	jobs := selectImages(files)
	if len(jobs) == 0 {
		return []string{}
	}

	limit := in.Parallel
	if limit <= 0 {
		limit = 4
	}
	results := make([]string, len(jobs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, j := range jobs {
		g.Go(func() error {
			url, err := in.upload(ctx, j)
			if err != nil {
				applog.Error(nil, "intake.upload.fail", err, map[string]any{
					"key":      j.file.Key,
					"filename": j.file.Filename,
					"hint":     j.hint,
				})
				return nil
			}
			results[i] = url
			return nil
		})
	}
	_ = g.Wait()

	urls := make([]string, 0, len(results))
	for _, u := range results {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (in *Ingester) upload(ctx context.Context, j job) (url string, err error) {
	wrap := func(e error) error {
		return &UploadError{Key: j.file.Key, Filename: j.file.Filename, Err: e}
	}
	defer func() {
		if r := recover(); r != nil {
			url, err = "", wrap(fmt.Errorf("panic: %v", r))
		}
	}()

	if in.MaxBytes > 0 && int64(len(j.file.Data)) > in.MaxBytes {
		return "", wrap(ErrTooLarge)
	}
	ct := contentType(j.file)
	if !strings.HasPrefix(ct, "image/") {
		return "", wrap(ErrNotImage)
	}
	// Stores pick the file extension from the type.
	j.file.ContentType = ct
	url, err = in.Store.Upload(ctx, j.hint, j.file)
	if err != nil {
		return "", wrap(err)
	}
	if url == "" {
		return "", wrap(errors.New("storage returned no url"))
	}
	return url, nil
}

// selectImages orders the image files: main first, then additional. Extra
// files under the main key count as additional. Empty file inputs are
// skipped.
func selectImages(files []File) []job {
	var (
		main  *job
		extra []job
	)
	for _, f := range files {
		if len(f.Data) == 0 {
			continue
		}
		switch f.Key {
		case KeyMainImage:
			if main == nil {
				main = &job{hint: "main", file: f}
				continue
			}
			extra = append(extra, job{file: f})
		case KeyImages:
			extra = append(extra, job{file: f})
		default:
			applog.Info(nil, "intake.file.ignored", map[string]any{"key": f.Key, "filename": f.Filename})
		}
	}

	out := make([]job, 0, len(extra)+1)
	if main != nil {
		out = append(out, *main)
	}
	for i, j := range extra {
		j.hint = fmt.Sprintf("additional-%d", i+1)
		out = append(out, j)
	}
	return out
}

// contentType is the declared type, or the sniffed one when the client sent
// none or a generic binary type.
func contentType(f File) string {
	ct := strings.ToLower(strings.TrimSpace(f.ContentType))
	if ct == "" || ct == "application/octet-stream" {
		ct = strings.ToLower(http.DetectContentType(f.Data))
	}
	return ct
}
