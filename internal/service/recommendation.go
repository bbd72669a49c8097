// Package service contains the business logic for ShelfTalk recommendations.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shelftalk/shelftalk-server/internal/domain"
	"github.com/shelftalk/shelftalk-server/internal/errors"
	"github.com/shelftalk/shelftalk-server/internal/metadata/openlibrary"
	"github.com/shelftalk/shelftalk-server/internal/store/sqlite"
)

// maxCommentLength caps user comments, in runes.
const maxCommentLength = 1000

// Catalog looks up book metadata from the external catalog.
// This keeps the service testable against a stubbed lookup.
type Catalog interface {
	SearchByTitle(ctx context.Context, title string) (*openlibrary.BookMatch, error)
	SearchByISBN(ctx context.Context, isbn string) (*openlibrary.BookMatch, error)
	CoverURL(isbn string) string
}

// AddOutcome describes how an add attempt concluded.
type AddOutcome int

const (
	// AddOutcomeCreated means a row was inserted.
	AddOutcomeCreated AddOutcome = iota
	// AddOutcomeNoMatch means the catalog answered but had no usable result.
	AddOutcomeNoMatch
	// AddOutcomeCatalogUnavailable means the catalog could not be reached
	// or misbehaved. Kept distinct from AddOutcomeNoMatch so the UI can
	// say which one happened.
	AddOutcomeCatalogUnavailable
)

// AddInput carries the raw form fields of an add request.
type AddInput struct {
	Title       string
	ISBN        string
	Recommender string
	Comments    string
}

// UpdateInput carries the raw form fields of an edit request.
// DateAdded is passed through to the store unchanged; the client owns it.
type UpdateInput struct {
	Title       string
	Author      string
	CoverURL    string
	Recommender string
	DateAdded   string
	Comments    string
}

// RecommendationService orchestrates catalog lookups and store writes.
type RecommendationService struct {
	store   *sqlite.Store
	catalog Catalog
	logger  *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(store *sqlite.Store, catalog Catalog, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// List returns all recommendations ordered by ascending id.
func (s *RecommendationService) List(ctx context.Context) ([]*domain.Recommendation, error) {
	recs, err := s.store.ListRecommendations(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "list recommendations")
	}
	return recs, nil
}

// Add resolves the submission against the catalog and inserts a row on a
// match. Lookup misses and catalog failures are reported through the
// outcome, not the error: only a store failure is an error here.
func (s *RecommendationService) Add(ctx context.Context, in AddInput) (AddOutcome, error) {
	title := strings.TrimSpace(in.Title)
	isbn := strings.TrimSpace(in.ISBN)
	recommender := strings.TrimSpace(in.Recommender)
	comments := capComments(in.Comments)

	// Title search wins over ISBN search when both are supplied.
	var (
		match *openlibrary.BookMatch
		err   error
	)
	switch {
	case title != "":
		match, err = s.catalog.SearchByTitle(ctx, title)
	case isbn != "":
		match, err = s.catalog.SearchByISBN(ctx, isbn)
	default:
		s.logger.Info("add skipped, no title or isbn supplied")
		return AddOutcomeNoMatch, nil
	}

	if err != nil {
		if errors.Is(err, openlibrary.ErrNoMatch) {
			s.logger.Info("catalog had no match",
				"title", title,
				"isbn", isbn,
			)
			return AddOutcomeNoMatch, nil
		}
		s.logger.Warn("catalog lookup failed",
			"title", title,
			"isbn", isbn,
			"error", err,
		)
		return AddOutcomeCatalogUnavailable, nil
	}

	today := time.Now().Format(domain.DateFormat)
	rec := &domain.Recommendation{
		Title:       match.Title,
		Author:      match.Author,
		CoverURL:    s.catalog.CoverURL(match.ISBN),
		Recommender: recommender,
		DateAdded:   today,
		DateUpdated: today,
		Comments:    comments,
	}

	if err := s.store.CreateRecommendation(ctx, rec); err != nil {
		return 0, errors.Wrap(err, errors.CodeInternal, "create recommendation")
	}

	s.logger.Info("recommendation created",
		"id", rec.ID,
		"title", rec.Title,
		"author", rec.Author,
	)

	return AddOutcomeCreated, nil
}

// Update overwrites all editable fields of the row matching id and
// stamps date_updated. Updating a missing id is a silent no-op.
func (s *RecommendationService) Update(ctx context.Context, id int64, in UpdateInput) error {
	rec := &domain.Recommendation{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		CoverURL:    strings.TrimSpace(in.CoverURL),
		Recommender: strings.TrimSpace(in.Recommender),
		DateAdded:   strings.TrimSpace(in.DateAdded),
		DateUpdated: time.Now().Format(domain.DateFormat),
		Comments:    capComments(in.Comments),
	}

	if err := s.store.UpdateRecommendation(ctx, id, rec); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "update recommendation")
	}

	s.logger.Info("recommendation updated", "id", id)
	return nil
}

// Delete removes the row matching id. Deleting a missing id is a no-op.
func (s *RecommendationService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteRecommendation(ctx, id); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "delete recommendation")
	}

	s.logger.Info("recommendation deleted", "id", id)
	return nil
}

// Ping reports whether the backing store is reachable.
func (s *RecommendationService) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return errors.Wrap(err, errors.CodeUnavailable, "store unreachable")
	}
	return nil
}

// capComments trims a comment and caps it at maxCommentLength runes.
func capComments(comments string) string {
	comments = strings.TrimSpace(comments)
	runes := []rune(comments)
	if len(runes) > maxCommentLength {
		return string(runes[:maxCommentLength])
	}
	return comments
}
