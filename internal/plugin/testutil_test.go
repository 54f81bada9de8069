package plugin

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sydlexius/coda/internal/catalog"
	"github.com/sydlexius/coda/internal/scrape"
)

// fakeCatalog serves synthetic storefront pages for provider tests.
type fakeCatalog struct {
	*httptest.Server

	albums     map[string]string
	artists    map[string]string
	searchHTML string
	searchTerm string
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()
	fc := &fakeCatalog{
		albums:  make(map[string]string),
		artists: make(map[string]string),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fc.searchTerm = r.URL.Query().Get("term")
		io.WriteString(w, fc.searchHTML)
	})
	mux.HandleFunc("/album/", func(w http.ResponseWriter, r *http.Request) {
		fc.serve(w, fc.albums, strings.TrimPrefix(r.URL.Path, "/album/"))
	})
	mux.HandleFunc("/artist/", func(w http.ResponseWriter, r *http.Request) {
		fc.serve(w, fc.artists, strings.TrimPrefix(r.URL.Path, "/artist/"))
	})
	fc.Server = httptest.NewServer(mux)
	t.Cleanup(fc.Close)
	return fc
}

func (fc *fakeCatalog) serve(w http.ResponseWriter, pages map[string]string, id string) {
	page, ok := pages[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	io.WriteString(w, page)
}

func (fc *fakeCatalog) newSource(t *testing.T) (*catalog.Source, *scrape.Fetcher) {
	t.Helper()
	logger := testLogger()
	fetcher := scrape.NewFetcher(fc.Client(), logger)
	return catalog.NewWithBaseURL(fetcher, scrape.Extractor{}, logger, fc.URL), fetcher
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func albumPage(name, footer string, withArt bool, artists ...[2]string) string {
	var b strings.Builder
	b.WriteString(`<html><body>`)
	if withArt {
		fmt.Fprintf(&b, `<picture><source type="image/jpeg" srcset="https://cdn.example/%s/600x600bb.jpg 600w"></picture>`, slugify(name))
	}
	fmt.Fprintf(&b, `<h1 data-testid="non-editable-product-title">%s</h1>`, name)
	b.WriteString(`<div data-testid="product-creator">`)
	for _, a := range artists {
		fmt.Fprintf(&b, `<a href="/us/artist/x/%s">%s</a>`, a[1], a[0])
	}
	b.WriteString(`</div>`)
	if footer != "" {
		fmt.Fprintf(&b, `<p data-testid="tracklist-footer-description">%s</p>`, footer)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func artistPage(name, about string, withArt bool) string {
	var b strings.Builder
	b.WriteString(`<html><body>`)
	if withArt {
		fmt.Fprintf(&b, `<picture><source type="image/jpeg" srcset="https://cdn.example/%s/1200x1200bb.jpg 1200w"></picture>`, slugify(name))
	}
	fmt.Fprintf(&b, `<h1 data-testid="non-editable-product-title">%s</h1>`, name)
	if about != "" {
		fmt.Fprintf(&b, `<div data-testid="description"><p>%s</p></div>`, about)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func searchPage(albumIDs, artistIDs []string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div aria-label="Albums"><ul>`)
	for _, id := range albumIDs {
		fmt.Fprintf(&b, `<li><a data-testid="product-lockup-title" href="/us/album/x/%s">Album</a></li>`, id)
	}
	b.WriteString(`</ul></div><div aria-label="Artists"><ul>`)
	for _, id := range artistIDs {
		fmt.Fprintf(&b, `<li><a href="/us/artist/x/%s">Artist</a></li>`, id)
	}
	b.WriteString(`</ul></div></body></html>`)
	return b.String()
}
