// Package scrape fetches catalog pages and extracts records out of their
// markup. Every structural query the module depends on lives in this
// package, so a markup change on the site is contained here.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sydlexius/coda/internal/catalog"
)

const (
	// The catalog serves a near-empty script shell to unknown agents; a
	// browser User-Agent gets the fully rendered markup.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	maxBodyBytes = 4 * 1024 * 1024
)

// Fetcher retrieves catalog pages and parses them into document trees. It
// does no caching, no retries, and no redirect handling beyond the client's
// own; those are host concerns.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewFetcher creates a Fetcher. A nil client gets a default with a timeout.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{
		client: client,
		logger: logger.With(slog.String("component", "fetcher")),
	}
}

// Fetch retrieves the page at pageURL and parses it into a document tree.
// Non-2xx responses come back as *catalog.HTTPStatusError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &catalog.HTTPStatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	f.logger.Debug("page fetched", slog.String("url", pageURL))
	return doc, nil
}

// GetImageResponse streams the raw bytes of an artwork URL. The caller owns
// the response body.
func (f *Fetcher) GetImageResponse(ctx context.Context, imageURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image %s: %w", imageURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close() //nolint:errcheck
		return nil, &catalog.HTTPStatusError{URL: imageURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}
