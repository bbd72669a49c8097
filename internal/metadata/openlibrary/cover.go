package openlibrary

import "fmt"

// CoverURL returns the large cover image URL for an ISBN.
// The URL is derived, not verified: it may point to a missing image when
// the catalog has no cover for the book. Returns "" for an empty ISBN.
func (c *Client) CoverURL(isbn string) string {
	if isbn == "" {
		return ""
	}
	return fmt.Sprintf("%s/b/isbn/%s-L.jpg", c.coversBaseURL, isbn)
}
