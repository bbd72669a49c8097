package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strings"
)

// SearchByTitle looks up the first catalog match for a free-text title.
// Returns ErrNoMatch (wrapped) when the title yields no usable query or
// the catalog has no result for it.
func (c *Client) SearchByTitle(ctx context.Context, title string) (*BookMatch, error) {
	q := FormatQuery(title)
	if q == "" {
		return nil, wrapError("searchTitle", title, ErrNoMatch)
	}

	// The formatter output is already URL-safe with "+" as the space
	// joiner, so the query string is assembled directly.
	match, err := c.search(ctx, "q="+q)
	if err != nil {
		return nil, wrapError("searchTitle", q, err)
	}
	return match, nil
}

// SearchByISBN looks up the first catalog match for an ISBN.
func (c *Client) SearchByISBN(ctx context.Context, isbn string) (*BookMatch, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, wrapError("searchISBN", isbn, ErrNoMatch)
	}

	match, err := c.search(ctx, "isbn="+url.QueryEscape(isbn))
	if err != nil {
		return nil, wrapError("searchISBN", isbn, err)
	}
	return match, nil
}

// search issues one catalog request and reduces the first result to a
// BookMatch. Exactly one outbound call per invocation; no retries.
func (c *Client) search(ctx context.Context, rawQuery string) (*BookMatch, error) {
	body, err := c.doRequest(ctx, c.baseURL+"/search.json?"+rawQuery)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("openlibrary search results",
		"query", rawQuery,
		"count", len(resp.Docs),
	)

	if len(resp.Docs) == 0 {
		return nil, ErrNoMatch
	}

	doc := &resp.Docs[0]
	if doc.Title == "" || len(doc.AuthorName) == 0 {
		// A result missing its core fields is treated as no match, not
		// as a partial record.
		return nil, ErrNoMatch
	}

	return &BookMatch{
		Title:  doc.Title,
		Author: doc.AuthorName[0],
		ISBN:   firstISBN10(doc.ISBN),
	}, nil
}

// firstISBN10 returns the first entry of exactly 10 characters, or "".
func firstISBN10(isbns []string) string {
	for _, isbn := range isbns {
		if len(isbn) == 10 {
			return isbn
		}
	}
	return ""
}
