package sqlite

import (
	"context"
	"fmt"

	"github.com/shelftalk/shelftalk-server/internal/domain"
)

// recommendationColumns is the ordered list of columns selected in
// recommendation queries. Must match the scan order in scanRecommendation.
const recommendationColumns = `id, book_title, book_author, book_url, book_recommender, date_added, date_updated, book_comments`

// scanRecommendation scans a sql.Row (or sql.Rows via its Scan method) into a domain.Recommendation.
func scanRecommendation(scanner interface{ Scan(dest ...any) error }) (*domain.Recommendation, error) {
	var r domain.Recommendation

	err := scanner.Scan(
		&r.ID,
		&r.Title,
		&r.Author,
		&r.CoverURL,
		&r.Recommender,
		&r.DateAdded,
		&r.DateUpdated,
		&r.Comments,
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// ListRecommendations returns every recommendation ordered by ascending id.
func (s *Store) ListRecommendations(ctx context.Context) ([]*domain.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recommendationColumns+` FROM recommendations ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*domain.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return recs, nil
}

// CreateRecommendation inserts a new recommendation and assigns its id.
func (s *Store) CreateRecommendation(ctx context.Context, rec *domain.Recommendation) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO recommendations (
			book_title, book_author, book_url, book_recommender, date_added, date_updated, book_comments
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Title,
		rec.Author,
		rec.CoverURL,
		rec.Recommender,
		rec.DateAdded,
		rec.DateUpdated,
		rec.Comments,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id

	return nil
}

// UpdateRecommendation overwrites all mutable columns of the row matching id.
// Updating an id with no matching row is a silent no-op.
func (s *Store) UpdateRecommendation(ctx context.Context, id int64, rec *domain.Recommendation) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE recommendations
		SET book_title = ?, book_author = ?, book_url = ?, book_recommender = ?,
		    date_added = ?, date_updated = ?, book_comments = ?
		WHERE id = ?`,
		rec.Title,
		rec.Author,
		rec.CoverURL,
		rec.Recommender,
		rec.DateAdded,
		rec.DateUpdated,
		rec.Comments,
		id,
	)
	if err != nil {
		return fmt.Errorf("update recommendation %d: %w", id, err)
	}
	return nil
}

// DeleteRecommendation removes the row matching id.
// Deleting an id with no matching row is a silent no-op.
func (s *Store) DeleteRecommendation(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recommendations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recommendation %d: %w", id, err)
	}
	return nil
}
