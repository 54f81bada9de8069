package plugin

import (
	"context"
	"log/slog"

	"github.com/sydlexius/coda/internal/catalog"
	"github.com/sydlexius/coda/internal/host"
)

// AlbumProvider serves album metadata lookups and identify searches.
type AlbumProvider struct {
	source *catalog.Source
	logger *slog.Logger
}

var _ host.MetadataProvider[host.AlbumInfo, host.MusicAlbum] = (*AlbumProvider)(nil)

// NewAlbumProvider creates an AlbumProvider backed by source.
func NewAlbumProvider(source *catalog.Source, logger *slog.Logger) *AlbumProvider {
	return &AlbumProvider{
		source: source,
		logger: logger.With(slog.String("provider", "album")),
	}
}

// Name returns the provider display name.
func (p *AlbumProvider) Name() string { return ProviderName }

// GetSearchResults searches the catalog for albums matching the lookup info
// and maps each hit onto the server's search DTO, preserving catalog order.
func (p *AlbumProvider) GetSearchResults(ctx context.Context, info host.AlbumInfo) ([]host.RemoteSearchResult, error) {
	term := albumSearchTerm(info)
	if term == "" {
		return nil, nil
	}

	items, err := p.source.Search(ctx, term, catalog.TypeAlbum)
	if err != nil {
		return nil, err
	}

	results := make([]host.RemoteSearchResult, 0, len(items))
	for _, it := range items {
		album, ok := it.(*catalog.Album)
		if !ok {
			continue
		}
		results = append(results, albumSearchResult(album))
	}
	return results, nil
}

// GetMetadata resolves a stored album id directly, falling back to a name
// search. A lookup that finds nothing usable reports HasMetadata false
// rather than an error.
func (p *AlbumProvider) GetMetadata(ctx context.Context, info host.AlbumInfo) (host.MetadataResult[host.MusicAlbum], error) {
	var result host.MetadataResult[host.MusicAlbum]

	album, err := p.lookup(ctx, info)
	if err != nil {
		return result, err
	}
	if album == nil || !album.HasMetadata() {
		p.logger.Debug("no album metadata found", slog.String("name", info.Name))
		return result, nil
	}

	entity := host.MusicAlbum{
		Name:         album.Name,
		Overview:     album.About,
		PremiereDate: album.ReleaseDate,
		ProviderIDs:  map[string]string{ExternalIDAlbum: album.ID},
	}
	if album.ReleaseDate != nil {
		entity.ProductionYear = album.ReleaseDate.Year()
	}
	for i, artist := range album.Artists {
		entity.Artists = append(entity.Artists, artist.Name)
		if i == 0 {
			entity.AlbumArtists = append(entity.AlbumArtists, artist.Name)
			entity.ProviderIDs[ExternalIDAlbumArtist] = artist.ID
		}
	}

	result.Item = entity
	result.HasMetadata = true
	return result, nil
}

func (p *AlbumProvider) lookup(ctx context.Context, info host.AlbumInfo) (*catalog.Album, error) {
	if id := info.ProviderID(ExternalIDAlbum); id != "" {
		album, err := p.source.GetAlbum(ctx, id)
		if err != nil || album != nil {
			return album, err
		}
		// Stored id no longer resolves; fall through to a fresh search.
	}

	term := albumSearchTerm(info)
	if term == "" {
		return nil, nil
	}
	items, err := p.source.Search(ctx, term, catalog.TypeAlbum)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if album, ok := it.(*catalog.Album); ok && album.HasMetadata() {
			return album, nil
		}
	}
	return nil, nil
}
