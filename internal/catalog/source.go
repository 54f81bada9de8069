package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "https://music.apple.com"

// Detail-page fetches fanned out per request. The catalog tolerates a small
// burst from one client; the host owns any stricter throttling.
const maxConcurrentFetches = 4

// PageFetcher retrieves a catalog page as a parsed document tree.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Extractor turns parsed catalog pages into records. Implementations hold
// every structural query, so a markup change on the site stays contained
// behind this interface. A nil record means the page did not carry the
// expected item, never an error.
type Extractor interface {
	Artist(doc *goquery.Document, pageURL string) *Artist
	Album(doc *goquery.Document, pageURL string) *Album
	SearchRefs(doc *goquery.Document, typ ItemType, pageURL string) []string
}

// Source orchestrates fetch-then-extract for the three catalog operations
// and resolves the artist references found inside album pages. All methods
// report "not found" as a nil or empty result; only transport failures and
// cancellation surface as errors.
type Source struct {
	fetcher   PageFetcher
	extractor Extractor
	logger    *slog.Logger
	baseURL   string
}

// New creates a Source for the region-scoped storefront of the public
// catalog, e.g. region "us" or "jp".
func New(fetcher PageFetcher, extractor Extractor, logger *slog.Logger, region string) *Source {
	return NewWithBaseURL(fetcher, extractor, logger, defaultBaseURL+"/"+region)
}

// NewWithBaseURL creates a Source against a custom catalog root (for testing).
func NewWithBaseURL(fetcher PageFetcher, extractor Extractor, logger *slog.Logger, baseURL string) *Source {
	return &Source{
		fetcher:   fetcher,
		extractor: extractor,
		logger:    logger.With(slog.String("component", "catalog")),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// AlbumURL returns the detail-page URL for an album id. IDFromURL recovers
// the id from the result.
func (s *Source) AlbumURL(id string) string { return s.baseURL + "/album/" + url.PathEscape(id) }

// ArtistURL returns the detail-page URL for an artist id.
func (s *Source) ArtistURL(id string) string { return s.baseURL + "/artist/" + url.PathEscape(id) }

// SearchURL returns the search-results URL for a term.
func (s *Source) SearchURL(term string) string {
	return s.baseURL + "/search?term=" + url.QueryEscape(term)
}

// Search finds catalog items of the given type matching term. The search
// page carries only linkage, so every hit costs a follow-up detail fetch;
// those run concurrently, the output keeps the page's document order, and a
// hit whose detail page fails extraction is dropped rather than failing the
// whole search.
func (s *Source) Search(ctx context.Context, term string, typ ItemType) ([]Item, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}

	searchURL := s.SearchURL(term)
	doc, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	refs := s.extractor.SearchRefs(doc, typ, searchURL)
	if len(refs) == 0 {
		s.logger.Debug("search returned no links",
			slog.String("term", term),
			slog.String("type", typ.String()))
		return nil, nil
	}

	// Indexed slice keeps document order regardless of fetch completion
	// order; nil slots mark dropped hits.
	items := make([]Item, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			id := IDFromURL(ref)
			switch typ {
			case TypeAlbum:
				album, err := s.GetAlbum(gctx, id)
				if err != nil {
					return err
				}
				if album != nil {
					items[i] = album
				}
			case TypeArtist:
				artist, err := s.GetArtist(gctx, id)
				if err != nil {
					return err
				}
				if artist != nil {
					items[i] = artist
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}

	s.logger.Debug("search completed",
		slog.String("term", term),
		slog.String("type", typ.String()),
		slog.Int("links", len(refs)),
		slog.Int("results", len(out)))

	return out, nil
}

// GetAlbum fetches and extracts the album detail page for id, then resolves
// every referenced artist by its own page. Resolution runs concurrently but
// the artist list mirrors the page's anchor order, so the first entry stays
// the album artist; a stub whose resolution fails is dropped, not replaced
// with a placeholder. Returns nil when the catalog has no such album.
func (s *Source) GetAlbum(ctx context.Context, id string) (*Album, error) {
	pageURL := s.AlbumURL(id)
	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	album := s.extractor.Album(doc, pageURL)
	if album == nil {
		s.logger.Debug("album page missing mandatory fields", slog.String("id", id))
		return nil, nil
	}

	resolved := make([]*Artist, len(album.Artists))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, stub := range album.Artists {
		i, stub := i, stub
		g.Go(func() error {
			artist, err := s.GetArtist(gctx, IDFromURL(stub.URL))
			if err != nil {
				return err
			}
			resolved[i] = artist
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	album.Artists = album.Artists[:0]
	for _, a := range resolved {
		if a != nil {
			album.Artists = append(album.Artists, *a)
		}
	}
	return album, nil
}

// GetArtist fetches and extracts the artist detail page for id. Returns nil
// when the catalog has no such artist or the page fails extraction.
func (s *Source) GetArtist(ctx context.Context, id string) (*Artist, error) {
	pageURL := s.ArtistURL(id)
	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s.extractor.Artist(doc, pageURL), nil
}
