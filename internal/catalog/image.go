package catalog

import (
	"fmt"
	"strings"
)

// Artwork sizes served to the host. The catalog's image CDN encodes the
// requested pixel size in the final path segment, so any scraped variant can
// be rewritten to another size.
const (
	PrimaryImageWidth  = 1400
	PrimaryImageHeight = 1400
	ThumbImageWidth    = 100
	ThumbImageHeight   = 100

	imageCropFlag = "cc"
)

// UpdateImageSize rewrites the trailing path segment of a scraped artwork
// URL to request the given pixel size, e.g. ".../600x600bb.jpg" becomes
// ".../1400x1400cc.jpg". URLs without a path separator are returned as is.
func UpdateImageSize(imageURL string, width, height int) string {
	i := strings.LastIndex(imageURL, "/")
	if i < 0 {
		return imageURL
	}
	return fmt.Sprintf("%s/%dx%d%s.jpg", imageURL[:i], width, height, imageCropFlag)
}
