// Package host declares the slice of the media server's plugin surface this
// module is written against: lookup infos in, remote search results and
// image candidates out. The shapes mirror the server's own DTOs and are
// consumed as calling conventions, not reimplemented.
package host

import (
	"context"
	"net/http"
	"time"
)

// ItemLookupInfo identifies a library entity the server wants enriched.
// ProviderIDs carries the external ids persisted from earlier matches.
type ItemLookupInfo struct {
	Name        string
	ProviderIDs map[string]string
}

// ProviderID returns the stored external id under key, or "".
func (i ItemLookupInfo) ProviderID(key string) string {
	return i.ProviderIDs[key]
}

// AlbumInfo is the lookup info for a music album.
type AlbumInfo struct {
	ItemLookupInfo
	AlbumArtists []string
}

// ArtistInfo is the lookup info for a music artist.
type ArtistInfo struct {
	ItemLookupInfo
}

// MusicAlbum is the album entity shape written back to the server.
type MusicAlbum struct {
	Name           string
	Overview       string
	PremiereDate   *time.Time
	ProductionYear int
	AlbumArtists   []string
	Artists        []string
	ProviderIDs    map[string]string
}

// MusicArtist is the artist entity shape written back to the server.
type MusicArtist struct {
	Name        string
	Overview    string
	ProviderIDs map[string]string
}

// MetadataResult wraps an entity with the flag the server checks to decide
// whether the lookup produced anything.
type MetadataResult[T any] struct {
	Item        T
	HasMetadata bool
}

// RemoteSearchResult is one hit shown in the server's identify UI. For
// albums, AlbumArtist and Artists carry nested artist results whose external
// ids are keyed by role.
type RemoteSearchResult struct {
	Name               string
	ImageURL           string
	Overview           string
	PremiereDate       *time.Time
	ProductionYear     int
	AlbumArtist        *RemoteSearchResult
	Artists            []*RemoteSearchResult
	ProviderIDs        map[string]string
	SearchProviderName string
}

// ImageType classifies an artwork candidate.
type ImageType string

// Known image types.
const (
	ImagePrimary ImageType = "Primary"
)

// RemoteImageInfo is one artwork candidate offered to the server.
type RemoteImageInfo struct {
	URL          string
	ThumbnailURL string
	Width        int
	Height       int
	Type         ImageType
	ProviderName string
}

// MetadataProvider is the server contract for metadata lookups of one
// entity kind.
type MetadataProvider[TInfo, TItem any] interface {
	Name() string
	GetSearchResults(ctx context.Context, info TInfo) ([]RemoteSearchResult, error)
	GetMetadata(ctx context.Context, info TInfo) (MetadataResult[TItem], error)
}

// ImageProvider is the server contract for artwork lookups of one entity
// kind. GetImageResponse streams a chosen candidate; the caller owns the
// response body.
type ImageProvider[TInfo any] interface {
	Name() string
	GetImages(ctx context.Context, info TInfo) ([]RemoteImageInfo, error)
	GetImageResponse(ctx context.Context, imageURL string) (*http.Response, error)
}
