package scrape

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sydlexius/coda/internal/catalog"
)

// Structural queries against the catalog's markup. The site ships markup
// changes without notice; keeping every selector here means such a change
// touches this file and nothing else.
const (
	selDetailTitle     = `h1[data-testid="non-editable-product-title"]`
	selAlbumCreators   = `div[data-testid="product-creator"] a`
	selArtworkSource   = `picture source[type="image/jpeg"]`
	selDescription     = `div[data-testid="description"] p`
	selTracklistFooter = `p[data-testid="tracklist-footer-description"]`
	selSearchAlbumLink = `a[data-testid="product-lockup-title"]`

	attrArtworkSet = "srcset"

	sectionLabelAlbums  = "Albums"
	sectionLabelArtists = "Artists"
)

// The tracklist footer packs release date, runtime, production year, and
// producer into one text block, e.g. "March 3, 2017 · 42 min · 2017 Some
// Label". One match pulls out the date and production year; only the date
// is kept. A non-matching footer simply leaves the release date unset.
var tracklistFooterRe = regexp.MustCompile(`^([A-Za-z]+ \d{1,2}, \d{4})(?:.*?(\d{4})\D*)?$`)

// Month name, day, year. time.Parse against a fixed layout is locale
// invariant, which the footer grammar requires.
const releaseDateLayout = "January 2, 2006"

// Extractor implements catalog.Extractor for the catalog's three page
// grammars. Methods return nil rather than erroring when mandatory markup
// is absent: a miss means "not the page we wanted", not a fault. Extraction
// is pure, so the same document always yields the same record.
type Extractor struct{}

var _ catalog.Extractor = Extractor{}

// Artist extracts an artist record from a parsed artist detail page. The
// name is mandatory; image and biography degrade to empty.
func (Extractor) Artist(doc *goquery.Document, pageURL string) *catalog.Artist {
	name := cleanText(doc.Find(selDetailTitle).First().Text())
	if name == "" {
		return nil
	}
	return &catalog.Artist{
		ID:       catalog.IDFromURL(pageURL),
		Name:     name,
		URL:      pageURL,
		ImageURL: artworkURL(doc),
		About:    cleanText(doc.Find(selDescription).First().Text()),
	}
}

// Album extracts an album record from a parsed album detail page. The name
// and at least one artist anchor are mandatory; image, description, and
// release date degrade to empty. The returned Artists are unresolved stubs
// carrying only name and URL.
func (Extractor) Album(doc *goquery.Document, pageURL string) *catalog.Album {
	name := cleanText(doc.Find(selDetailTitle).First().Text())
	if name == "" {
		return nil
	}

	var stubs []catalog.Artist
	doc.Find(selAlbumCreators).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		artistName := cleanText(a.Text())
		if !ok || artistName == "" {
			return
		}
		stubs = append(stubs, catalog.Artist{
			Name: artistName,
			URL:  resolveRef(pageURL, href),
		})
	})
	if len(stubs) == 0 {
		return nil
	}

	return &catalog.Album{
		ID:          catalog.IDFromURL(pageURL),
		Name:        name,
		URL:         pageURL,
		ImageURL:    artworkURL(doc),
		About:       cleanText(doc.Find(selDescription).First().Text()),
		ReleaseDate: parseReleaseDate(doc.Find(selTracklistFooter).First().Text()),
		Artists:     stubs,
	}
}

// SearchRefs returns the detail-page URLs listed in the search section for
// the given item type, in document order. The album section is narrowed to
// each row's title anchor so artist-credit links in the same row are not
// picked up.
func (Extractor) SearchRefs(doc *goquery.Document, typ catalog.ItemType, pageURL string) []string {
	var sel string
	switch typ {
	case catalog.TypeAlbum:
		sel = fmt.Sprintf(`div[aria-label=%q] %s`, sectionLabelAlbums, selSearchAlbumLink)
	case catalog.TypeArtist:
		sel = fmt.Sprintf(`div[aria-label=%q] a`, sectionLabelArtists)
	default:
		return nil
	}

	var refs []string
	doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		refs = append(refs, resolveRef(pageURL, href))
	})
	return refs
}

// artworkURL returns the first candidate from the artwork source set. The
// attribute holds a space-delimited candidate list; the raw first candidate
// is kept as scraped, resizing happens only at the host boundary.
func artworkURL(doc *goquery.Document) string {
	set, ok := doc.Find(selArtworkSource).First().Attr(attrArtworkSet)
	if !ok {
		return ""
	}
	fields := strings.Fields(set)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(fields[0], ",")
}

func parseReleaseDate(text string) *time.Time {
	m := tracklistFooterRe.FindStringSubmatch(cleanText(text))
	if m == nil {
		return nil
	}
	t, err := time.Parse(releaseDateLayout, m[1])
	if err != nil {
		return nil
	}
	return &t
}

// resolveRef makes an anchor href absolute against the page it was found on.
func resolveRef(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// cleanText collapses runs of whitespace, including the newlines the site
// litters through text blocks, into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
