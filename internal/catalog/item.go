// Package catalog models the scraped records of the Apple Music public
// catalog and orchestrates the fetch-and-extract operations that produce
// them. Records are plain values built fresh per request; nothing here is
// cached or persisted.
package catalog

import (
	"strings"
	"time"
)

// ItemType selects which search-page section and which detail-page grammar
// applies to an item.
type ItemType int

// Known item types.
const (
	TypeAlbum ItemType = iota
	TypeArtist
)

// String returns the URL path segment for the item type.
func (t ItemType) String() string {
	switch t {
	case TypeAlbum:
		return "album"
	case TypeArtist:
		return "artist"
	default:
		return "unknown"
	}
}

// Item is the capability surface shared by scraped catalog records. The two
// concrete kinds are *Artist and *Album; callers that need kind-specific
// fields type-switch on those.
type Item interface {
	Kind() ItemType
	ItemID() string
	ItemName() string
	ItemURL() string
	ItemImage() string
	ItemAbout() string

	// HasMetadata reports whether the record carries anything beyond its
	// identity worth returning to the host.
	HasMetadata() bool
}

// Artist is a scraped artist record. Inside a freshly extracted album only
// Name and URL are known (a stub); the remaining fields are filled in by a
// follow-up resolution fetch of the artist's own page.
type Artist struct {
	ID       string
	Name     string
	URL      string
	ImageURL string
	About    string
}

// Kind returns TypeArtist.
func (a *Artist) Kind() ItemType { return TypeArtist }

// ItemID returns the catalog identifier.
func (a *Artist) ItemID() string { return a.ID }

// ItemName returns the artist name.
func (a *Artist) ItemName() string { return a.Name }

// ItemURL returns the detail-page URL.
func (a *Artist) ItemURL() string { return a.URL }

// ItemImage returns the scraped artwork URL, if any.
func (a *Artist) ItemImage() string { return a.ImageURL }

// ItemAbout returns the biography text, if any.
func (a *Artist) ItemAbout() string { return a.About }

// HasMetadata reports whether the artist carries a name or biography.
func (a *Artist) HasMetadata() bool { return a.Name != "" || a.About != "" }

// Album is a scraped album record. Artists references, not owns, the
// contributing artists; the first entry doubles as the album artist.
type Album struct {
	ID          string
	Name        string
	URL         string
	ImageURL    string
	About       string
	ReleaseDate *time.Time
	Artists     []Artist
}

// Kind returns TypeAlbum.
func (a *Album) Kind() ItemType { return TypeAlbum }

// ItemID returns the catalog identifier.
func (a *Album) ItemID() string { return a.ID }

// ItemName returns the album name.
func (a *Album) ItemName() string { return a.Name }

// ItemURL returns the detail-page URL.
func (a *Album) ItemURL() string { return a.URL }

// ItemImage returns the scraped artwork URL, if any.
func (a *Album) ItemImage() string { return a.ImageURL }

// ItemAbout returns the album description, if any.
func (a *Album) ItemAbout() string { return a.About }

// HasMetadata reports whether the album carries a name, description, or
// release date.
func (a *Album) HasMetadata() bool {
	return a.Name != "" || a.About != "" || a.ReleaseDate != nil
}

// IDFromURL derives an item's catalog identifier from its page URL: the
// substring after the last slash. Every lookup URL this package builds
// round-trips through it, which is what keys artist-stub resolution.
func IDFromURL(pageURL string) string {
	u := strings.TrimSpace(pageURL)
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
