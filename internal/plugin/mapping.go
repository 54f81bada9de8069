package plugin

import (
	"strings"

	"github.com/sydlexius/coda/internal/catalog"
	"github.com/sydlexius/coda/internal/host"
)

// albumSearchResult maps a resolved album record onto the server's search
// DTO. The first resolved artist is re-tagged as the album artist: the same
// entity appears in Artists under ITunesArtist and as AlbumArtist under
// ITunesAlbumArtist.
func albumSearchResult(album *catalog.Album) host.RemoteSearchResult {
	r := host.RemoteSearchResult{
		Name:               album.Name,
		ImageURL:           primaryImageURL(album.ImageURL),
		Overview:           album.About,
		PremiereDate:       album.ReleaseDate,
		ProviderIDs:        map[string]string{ExternalIDAlbum: album.ID},
		SearchProviderName: ProviderName,
	}
	if album.ReleaseDate != nil {
		r.ProductionYear = album.ReleaseDate.Year()
	}
	for i := range album.Artists {
		res := artistSearchResult(&album.Artists[i], ExternalIDArtist)
		r.Artists = append(r.Artists, &res)
	}
	if len(album.Artists) > 0 {
		res := artistSearchResult(&album.Artists[0], ExternalIDAlbumArtist)
		r.AlbumArtist = &res
	}
	return r
}

// artistSearchResult maps an artist record onto the server's search DTO,
// keying its external id by the role it is emitted under.
func artistSearchResult(artist *catalog.Artist, idKey string) host.RemoteSearchResult {
	return host.RemoteSearchResult{
		Name:               artist.Name,
		ImageURL:           primaryImageURL(artist.ImageURL),
		Overview:           artist.About,
		ProviderIDs:        map[string]string{idKey: artist.ID},
		SearchProviderName: ProviderName,
	}
}

// imageCandidate builds one artwork candidate from a scraped image URL: the
// primary size plus a small thumbnail, both via the CDN size template.
func imageCandidate(scrapedURL string) host.RemoteImageInfo {
	return host.RemoteImageInfo{
		URL:          catalog.UpdateImageSize(scrapedURL, catalog.PrimaryImageWidth, catalog.PrimaryImageHeight),
		ThumbnailURL: catalog.UpdateImageSize(scrapedURL, catalog.ThumbImageWidth, catalog.ThumbImageHeight),
		Width:        catalog.PrimaryImageWidth,
		Height:       catalog.PrimaryImageHeight,
		Type:         host.ImagePrimary,
		ProviderName: ProviderName,
	}
}

func primaryImageURL(scrapedURL string) string {
	if scrapedURL == "" {
		return ""
	}
	return catalog.UpdateImageSize(scrapedURL, catalog.PrimaryImageWidth, catalog.PrimaryImageHeight)
}

// albumSearchTerm builds the catalog search term for an album lookup:
// album artist name first, then album name.
func albumSearchTerm(info host.AlbumInfo) string {
	parts := make([]string, 0, 2)
	if len(info.AlbumArtists) > 0 && strings.TrimSpace(info.AlbumArtists[0]) != "" {
		parts = append(parts, strings.TrimSpace(info.AlbumArtists[0]))
	}
	if strings.TrimSpace(info.Name) != "" {
		parts = append(parts, strings.TrimSpace(info.Name))
	}
	return strings.Join(parts, " ")
}
