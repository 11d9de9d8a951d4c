// Package imagefetch downloads product images for description generation.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"artisan_backend/internal/feature/assistant/usecase"
)

// Fetcher downloads images over HTTP with a size cap.
type Fetcher struct {
	client  *http.Client
	maxSize int64
}

// Compile-time check to ensure Fetcher implements ImageFetcher.
var _ usecase.ImageFetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher. Pass a client from platform/http so every
// request carries a timeout.
func NewFetcher(client *http.Client) *Fetcher {
	return &Fetcher{client: client, maxSize: usecase.MaxImageSize}
}

// Fetch downloads the image at url and returns its bytes and MIME type.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build image request: %w", err)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", res.StatusCode)
	}

	// LimitReader with one extra byte so oversized bodies are detectable.
	data, err := io.ReadAll(io.LimitReader(res.Body, f.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, "", fmt.Errorf("image exceeds maximum size of %d bytes", f.maxSize)
	}

	mimeType := res.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}
