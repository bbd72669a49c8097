package openlibrary

// BookMatch is the normalized result of a catalog lookup: the first
// search result reduced to the fields the application stores.
type BookMatch struct {
	Title  string
	Author string
	// ISBN is the first 10-character ISBN listed for the result, or ""
	// when the result lists none of that length.
	ISBN string
}

// Raw API response types (internal)

type searchResponse struct {
	NumFound int      `json:"numFound"`
	Docs     []rawDoc `json:"docs"`
}

type rawDoc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	ISBN       []string `json:"isbn"`
}
