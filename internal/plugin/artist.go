package plugin

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sydlexius/coda/internal/catalog"
	"github.com/sydlexius/coda/internal/host"
)

// ArtistProvider serves artist metadata lookups and identify searches.
type ArtistProvider struct {
	source *catalog.Source
	logger *slog.Logger
}

var _ host.MetadataProvider[host.ArtistInfo, host.MusicArtist] = (*ArtistProvider)(nil)

// NewArtistProvider creates an ArtistProvider backed by source.
func NewArtistProvider(source *catalog.Source, logger *slog.Logger) *ArtistProvider {
	return &ArtistProvider{
		source: source,
		logger: logger.With(slog.String("provider", "artist")),
	}
}

// Name returns the provider display name.
func (p *ArtistProvider) Name() string { return ProviderName }

// GetSearchResults searches the catalog for artists matching the lookup
// info, preserving catalog order.
func (p *ArtistProvider) GetSearchResults(ctx context.Context, info host.ArtistInfo) ([]host.RemoteSearchResult, error) {
	term := strings.TrimSpace(info.Name)
	if term == "" {
		return nil, nil
	}

	items, err := p.source.Search(ctx, term, catalog.TypeArtist)
	if err != nil {
		return nil, err
	}

	results := make([]host.RemoteSearchResult, 0, len(items))
	for _, it := range items {
		artist, ok := it.(*catalog.Artist)
		if !ok {
			continue
		}
		results = append(results, artistSearchResult(artist, ExternalIDArtist))
	}
	return results, nil
}

// GetMetadata resolves a stored artist id directly, falling back to a name
// search.
func (p *ArtistProvider) GetMetadata(ctx context.Context, info host.ArtistInfo) (host.MetadataResult[host.MusicArtist], error) {
	var result host.MetadataResult[host.MusicArtist]

	artist, err := p.lookup(ctx, info)
	if err != nil {
		return result, err
	}
	if artist == nil || !artist.HasMetadata() {
		p.logger.Debug("no artist metadata found", slog.String("name", info.Name))
		return result, nil
	}

	result.Item = host.MusicArtist{
		Name:        artist.Name,
		Overview:    artist.About,
		ProviderIDs: map[string]string{ExternalIDArtist: artist.ID},
	}
	result.HasMetadata = true
	return result, nil
}

func (p *ArtistProvider) lookup(ctx context.Context, info host.ArtistInfo) (*catalog.Artist, error) {
	if id := info.ProviderID(ExternalIDArtist); id != "" {
		artist, err := p.source.GetArtist(ctx, id)
		if err != nil || artist != nil {
			return artist, err
		}
	}

	term := strings.TrimSpace(info.Name)
	if term == "" {
		return nil, nil
	}
	items, err := p.source.Search(ctx, term, catalog.TypeArtist)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if artist, ok := it.(*catalog.Artist); ok && artist.HasMetadata() {
			return artist, nil
		}
	}
	return nil, nil
}
