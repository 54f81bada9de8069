package scrape

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sydlexius/coda/internal/catalog"
)

func loadDocument(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", name, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parsing fixture %s: %v", name, err)
	}
	return doc
}

func parseDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing document: %v", err)
	}
	return doc
}

const albumPageURL = "https://music.apple.com/us/album/690761344"

func TestExtractAlbum(t *testing.T) {
	doc := loadDocument(t, "album.html")
	album := Extractor{}.Album(doc, albumPageURL)
	if album == nil {
		t.Fatal("expected album record")
	}

	if album.ID != "690761344" {
		t.Errorf("expected id 690761344, got %q", album.ID)
	}
	if album.ID != catalog.IDFromURL(album.URL) {
		t.Errorf("id %q does not round-trip from url %q", album.ID, album.URL)
	}
	if album.Name != "Pure Heroine" {
		t.Errorf("expected Pure Heroine, got %q", album.Name)
	}
	if want := "https://is1-ssl.mzstatic.com/image/thumb/Music6/v4/aa11/600x600bb.jpg"; album.ImageURL != want {
		t.Errorf("expected first jpeg candidate %q, got %q", want, album.ImageURL)
	}
	if !strings.Contains(album.About, "debut studio album") {
		t.Errorf("unexpected about text: %q", album.About)
	}
	if album.ReleaseDate == nil {
		t.Fatal("expected release date")
	}
	if want := time.Date(2013, time.September, 27, 0, 0, 0, 0, time.UTC); !album.ReleaseDate.Equal(want) {
		t.Errorf("expected release date %v, got %v", want, album.ReleaseDate)
	}

	if len(album.Artists) != 1 {
		t.Fatalf("expected 1 artist stub, got %d", len(album.Artists))
	}
	stub := album.Artists[0]
	if stub.Name != "Lorde" {
		t.Errorf("expected stub name Lorde, got %q", stub.Name)
	}
	if want := "https://music.apple.com/us/artist/lorde/602767352"; stub.URL != want {
		t.Errorf("expected resolved stub url %q, got %q", want, stub.URL)
	}
	if stub.ID != "" || stub.About != "" || stub.ImageURL != "" {
		t.Errorf("stub should carry only name and url: %+v", stub)
	}
}

func TestExtractAlbumStubOrder(t *testing.T) {
	doc := loadDocument(t, "album_collab.html")
	album := Extractor{}.Album(doc, "https://music.apple.com/us/album/454823068")
	if album == nil {
		t.Fatal("expected album record")
	}
	if len(album.Artists) != 2 {
		t.Fatalf("expected 2 artist stubs, got %d", len(album.Artists))
	}
	if album.Artists[0].Name != "JAY-Z" || album.Artists[1].Name != "Kanye West" {
		t.Errorf("stub order not preserved: %q, %q", album.Artists[0].Name, album.Artists[1].Name)
	}
	// No description block on this page: optional field, not a failure.
	if album.About != "" {
		t.Errorf("expected empty about, got %q", album.About)
	}
}

func TestExtractAlbumMissingMandatoryFields(t *testing.T) {
	noTitle := parseDocument(t, `<html><body>
		<div data-testid="product-creator"><a href="/us/artist/x/1">X</a></div>
	</body></html>`)
	if album := (Extractor{}).Album(noTitle, albumPageURL); album != nil {
		t.Errorf("expected nil album for page without title, got %+v", album)
	}

	noArtists := parseDocument(t, `<html><body>
		<h1 data-testid="non-editable-product-title">Orphan Album</h1>
	</body></html>`)
	if album := (Extractor{}).Album(noArtists, albumPageURL); album != nil {
		t.Errorf("expected nil album for page without artist anchors, got %+v", album)
	}
}

func TestExtractAlbumIdempotent(t *testing.T) {
	doc := loadDocument(t, "album.html")
	first := Extractor{}.Album(doc, albumPageURL)
	second := Extractor{}.Album(doc, albumPageURL)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractArtist(t *testing.T) {
	doc := loadDocument(t, "artist.html")
	artist := Extractor{}.Artist(doc, "https://music.apple.com/us/artist/602767352")
	if artist == nil {
		t.Fatal("expected artist record")
	}
	if artist.ID != "602767352" {
		t.Errorf("expected id 602767352, got %q", artist.ID)
	}
	if artist.Name != "Lorde" {
		t.Errorf("expected Lorde, got %q", artist.Name)
	}
	if want := "https://is1-ssl.mzstatic.com/image/thumb/Features125/v4/cc33/1200x1200bb.jpg"; artist.ImageURL != want {
		t.Errorf("expected image %q, got %q", want, artist.ImageURL)
	}
	if !strings.Contains(artist.About, "pulls the genre inside out") {
		t.Errorf("unexpected about text: %q", artist.About)
	}
	if !artist.HasMetadata() {
		t.Error("expected artist to report metadata")
	}
}

func TestExtractArtistMissingName(t *testing.T) {
	doc := parseDocument(t, `<html><body><p>nothing here</p></body></html>`)
	if artist := (Extractor{}).Artist(doc, "https://music.apple.com/us/artist/1"); artist != nil {
		t.Errorf("expected nil artist, got %+v", artist)
	}
}

func TestSearchRefs(t *testing.T) {
	doc := loadDocument(t, "search.html")
	pageURL := "https://music.apple.com/us/search?term=lorde"

	albums := Extractor{}.SearchRefs(doc, catalog.TypeAlbum, pageURL)
	wantAlbums := []string{
		"https://music.apple.com/us/album/pure-heroine/690761344",
		"https://music.apple.com/us/album/melodrama/1440818584",
		"https://music.apple.com/us/album/solar-power/1573023671",
	}
	if !reflect.DeepEqual(albums, wantAlbums) {
		t.Errorf("album refs mismatch:\ngot  %v\nwant %v", albums, wantAlbums)
	}

	artists := Extractor{}.SearchRefs(doc, catalog.TypeArtist, pageURL)
	wantArtists := []string{
		"https://music.apple.com/us/artist/lorde/602767352",
		"https://music.apple.com/us/artist/lordes-other/999000111",
	}
	if !reflect.DeepEqual(artists, wantArtists) {
		t.Errorf("artist refs mismatch:\ngot  %v\nwant %v", artists, wantArtists)
	}
}

func TestSearchRefsEmptySections(t *testing.T) {
	doc := parseDocument(t, `<html><body><div aria-label="Albums"><ul></ul></div></body></html>`)
	if refs := (Extractor{}).SearchRefs(doc, catalog.TypeAlbum, "https://music.apple.com/us/search?term=x"); len(refs) != 0 {
		t.Errorf("expected no refs, got %v", refs)
	}
}

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *time.Time
	}{
		{
			name: "full footer",
			text: "March 3, 2017 · 42 min · 2017 Some Label",
			want: datePtr(2017, time.March, 3),
		},
		{
			name: "comma separated",
			text: "September 27, 2013, 37 min, 2013 Universal Music New Zealand Limited",
			want: datePtr(2013, time.September, 27),
		},
		{
			name: "date only",
			text: "August 8, 2011",
			want: datePtr(2011, time.August, 8),
		},
		{
			name: "unparsable",
			text: "N/A",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "bogus month",
			text: "Smarch 3, 2017 · 42 min · 2017 Some Label",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseReleaseDate(tt.text)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("parseReleaseDate(%q) = %v, want %v", tt.text, got, tt.want)
			case !got.Equal(*tt.want):
				t.Errorf("parseReleaseDate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
