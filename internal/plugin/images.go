package plugin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sydlexius/coda/internal/catalog"
	"github.com/sydlexius/coda/internal/host"
	"github.com/sydlexius/coda/internal/scrape"
)

// AlbumImageProvider serves album artwork candidates. A stored external id
// resolves the album directly; otherwise a name search is run and every hit
// carrying artwork becomes a candidate.
type AlbumImageProvider struct {
	source  *catalog.Source
	fetcher *scrape.Fetcher
	logger  *slog.Logger
}

var _ host.ImageProvider[host.AlbumInfo] = (*AlbumImageProvider)(nil)

// NewAlbumImageProvider creates an AlbumImageProvider.
func NewAlbumImageProvider(source *catalog.Source, fetcher *scrape.Fetcher, logger *slog.Logger) *AlbumImageProvider {
	return &AlbumImageProvider{
		source:  source,
		fetcher: fetcher,
		logger:  logger.With(slog.String("provider", "album-images")),
	}
}

// Name returns the provider display name.
func (p *AlbumImageProvider) Name() string { return ProviderName }

// GetImages returns artwork candidates for an album.
func (p *AlbumImageProvider) GetImages(ctx context.Context, info host.AlbumInfo) ([]host.RemoteImageInfo, error) {
	if id := info.ProviderID(ExternalIDAlbum); id != "" {
		album, err := p.source.GetAlbum(ctx, id)
		if err != nil {
			return nil, err
		}
		if album == nil || album.ImageURL == "" {
			p.logger.Debug("no artwork for stored album id", slog.String("id", id))
			return nil, nil
		}
		return []host.RemoteImageInfo{imageCandidate(album.ImageURL)}, nil
	}

	term := albumSearchTerm(info)
	if term == "" {
		return nil, nil
	}
	items, err := p.source.Search(ctx, term, catalog.TypeAlbum)
	if err != nil {
		return nil, err
	}
	return candidatesFromItems(items), nil
}

// GetImageResponse streams a chosen artwork URL.
func (p *AlbumImageProvider) GetImageResponse(ctx context.Context, imageURL string) (*http.Response, error) {
	return p.fetcher.GetImageResponse(ctx, imageURL)
}

// ArtistImageProvider serves artist artwork candidates.
type ArtistImageProvider struct {
	source  *catalog.Source
	fetcher *scrape.Fetcher
	logger  *slog.Logger
}

var _ host.ImageProvider[host.ArtistInfo] = (*ArtistImageProvider)(nil)

// NewArtistImageProvider creates an ArtistImageProvider.
func NewArtistImageProvider(source *catalog.Source, fetcher *scrape.Fetcher, logger *slog.Logger) *ArtistImageProvider {
	return &ArtistImageProvider{
		source:  source,
		fetcher: fetcher,
		logger:  logger.With(slog.String("provider", "artist-images")),
	}
}

// Name returns the provider display name.
func (p *ArtistImageProvider) Name() string { return ProviderName }

// GetImages returns artwork candidates for an artist.
func (p *ArtistImageProvider) GetImages(ctx context.Context, info host.ArtistInfo) ([]host.RemoteImageInfo, error) {
	if id := info.ProviderID(ExternalIDArtist); id != "" {
		artist, err := p.source.GetArtist(ctx, id)
		if err != nil {
			return nil, err
		}
		if artist == nil || artist.ImageURL == "" {
			p.logger.Debug("no artwork for stored artist id", slog.String("id", id))
			return nil, nil
		}
		return []host.RemoteImageInfo{imageCandidate(artist.ImageURL)}, nil
	}

	term := strings.TrimSpace(info.Name)
	if term == "" {
		return nil, nil
	}
	items, err := p.source.Search(ctx, term, catalog.TypeArtist)
	if err != nil {
		return nil, err
	}
	return candidatesFromItems(items), nil
}

// GetImageResponse streams a chosen artwork URL.
func (p *ArtistImageProvider) GetImageResponse(ctx context.Context, imageURL string) (*http.Response, error) {
	return p.fetcher.GetImageResponse(ctx, imageURL)
}

func candidatesFromItems(items []catalog.Item) []host.RemoteImageInfo {
	var images []host.RemoteImageInfo
	for _, it := range items {
		if it.ItemImage() == "" {
			continue
		}
		images = append(images, imageCandidate(it.ItemImage()))
	}
	return images
}
