package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Bucket uploads files to an HTTP object store, one object per POST.
// The locator is the object URL.
type Bucket struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Store = (*Bucket)(nil)

// NewBucket creates a bucket store targeting baseURL, authenticating
// with the given API key.
func NewBucket(baseURL, apiKey string) *Bucket {
	return &Bucket{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *Bucket) Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	url := b.baseURL + "/" + storedName(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUpload, resp.StatusCode)
	}
	return url, nil
}
