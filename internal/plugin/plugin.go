// Package plugin adapts catalog records onto the media server's provider
// contracts: metadata lookups, identify-search results, and artwork
// candidates for music albums and artists.
package plugin

import (
	"log/slog"
	"net/http"

	"github.com/sydlexius/coda/internal/catalog"
	"github.com/sydlexius/coda/internal/config"
	"github.com/sydlexius/coda/internal/scrape"
)

// ProviderName is the display name the server shows for results and images
// sourced from this plugin.
const ProviderName = "Apple Music"

// External-id keys the server persists alongside its own library entities
// to remember a prior match. The same artist entity is keyed ITunesArtist
// or ITunesAlbumArtist depending on the role it is emitted under.
const (
	ExternalIDAlbum       = "ITunesAlbum"
	ExternalIDArtist      = "ITunesArtist"
	ExternalIDAlbumArtist = "ITunesAlbumArtist"
)

// Plugin wires the full provider set for one plugin instance. The host
// hands in its HTTP client; a nil client gets a default with a timeout.
type Plugin struct {
	Albums       *AlbumProvider
	Artists      *ArtistProvider
	AlbumImages  *AlbumImageProvider
	ArtistImages *ArtistImageProvider
}

// New builds the provider set against the configured regional storefront.
func New(cfg *config.Config, client *http.Client, logger *slog.Logger) *Plugin {
	fetcher := scrape.NewFetcher(client, logger)
	source := catalog.New(fetcher, scrape.Extractor{}, logger, string(cfg.Region))
	return &Plugin{
		Albums:       NewAlbumProvider(source, logger),
		Artists:      NewArtistProvider(source, logger),
		AlbumImages:  NewAlbumImageProvider(source, fetcher, logger),
		ArtistImages: NewArtistImageProvider(source, fetcher, logger),
	}
}
