// Package domain contains the core entities for the ShelfTalk server.
package domain

// DateFormat is the calendar-date layout used for recommendation dates.
const DateFormat = "2006-01-02"

// Recommendation is one user-submitted book suggestion, enriched with
// catalog metadata at creation time.
type Recommendation struct {
	// ID is assigned by the store on insert and never reused.
	ID int64 `json:"id"`

	// Title and Author come from the catalog lookup and are never blank
	// on a stored row.
	Title  string `json:"book_title"`
	Author string `json:"book_author"`

	// CoverURL is derived from the ISBN. It may point to a missing image
	// when the catalog has no cover for the book.
	CoverURL string `json:"book_url"`

	Recommender string `json:"book_recommender"`

	// DateAdded is set once at creation. DateUpdated is overwritten on
	// every edit. Both use DateFormat.
	DateAdded   string `json:"date_added"`
	DateUpdated string `json:"date_updated"`

	Comments string `json:"book_comments"`
}
