package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPStatusError reports a non-2xx response from the catalog site. Fetcher
// implementations return it so the source layer can tell an absent page from
// a transport failure.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// IsNotFound reports whether err means the catalog has no page at the
// requested URL. The source layer recovers these into nil results; every
// other fetch error propagates to the caller.
func IsNotFound(err error) bool {
	var se *HTTPStatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
