package api

import (
	"net/http"
	"strconv"

	"github.com/shelftalk/shelftalk-server/internal/errors"
	"github.com/shelftalk/shelftalk-server/internal/service"
)

// writeError maps a failure to a plain text response. Coded domain
// errors pick their own status, anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var domainErr *errors.Error
	if errors.As(err, &domainErr) {
		status = domainErr.HTTPStatus()
	}
	http.Error(w, http.StatusText(status), status)
}

// homePageData contains data for the index template.
type homePageData struct {
	Recommendations []recommendationView
	NotFound        bool
	CatalogDown     bool
}

// recommendationView is one rendered row.
type recommendationView struct {
	ID          int64
	Title       string
	Author      string
	CoverURL    string
	Recommender string
	DateAdded   string
	DateUpdated string
	Comments    string
}

// handleHome renders the recommendation list together with the outcome
// of the most recent add attempt, if this browser has one pending.
// GET /
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recs, err := s.recommendations.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list recommendations", "error", err)
		writeError(w, err)
		return
	}

	flash := popFlash(w, r)
	data := homePageData{
		Recommendations: make([]recommendationView, 0, len(recs)),
		NotFound:        flash == flashNotFound,
		CatalogDown:     flash == flashCatalogUnavailable,
	}
	for _, rec := range recs {
		data.Recommendations = append(data.Recommendations, recommendationView{
			ID:          rec.ID,
			Title:       rec.Title,
			Author:      rec.Author,
			CoverURL:    rec.CoverURL,
			Recommender: rec.Recommender,
			DateAdded:   rec.DateAdded,
			DateUpdated: rec.DateUpdated,
			Comments:    rec.Comments,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to execute index template", "error", err)
	}
}

// handleAdd resolves the submitted book against the catalog and inserts
// a recommendation on a match. Every outcome ends in a redirect to the
// list view; lookup misses surface as a flash on the next render.
// POST /add
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	outcome, err := s.recommendations.Add(ctx, service.AddInput{
		Title:       r.FormValue("bookTitle"),
		ISBN:        r.FormValue("bookISBN"),
		Recommender: r.FormValue("bookRecommender"),
		Comments:    r.FormValue("bookComments"),
	})
	if err != nil {
		s.logger.Error("Failed to add recommendation", "error", err)
		writeError(w, err)
		return
	}

	switch outcome {
	case service.AddOutcomeNoMatch:
		setFlash(w, flashNotFound)
	case service.AddOutcomeCatalogUnavailable:
		setFlash(w, flashCatalogUnavailable)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEdit overwrites the editable fields of one recommendation and
// redirects to the list view. Editing an id with no matching row is a
// silent no-op, as is an id that does not parse.
// POST /edit
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.FormValue("bookDBId"), 10, 64)
	if err != nil {
		s.logger.Warn("Edit with unparseable id", "value", r.FormValue("bookDBId"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	err = s.recommendations.Update(ctx, id, service.UpdateInput{
		Title:       r.FormValue("editBookTitle"),
		Author:      r.FormValue("editBookAuthor"),
		CoverURL:    r.FormValue("editBookImageURL"),
		Recommender: r.FormValue("editBookRecommender"),
		DateAdded:   r.FormValue("dateAdded"),
		Comments:    r.FormValue("editBookComments"),
	})
	if err != nil {
		s.logger.Error("Failed to update recommendation", "error", err, "id", id)
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDelete removes one recommendation by id and redirects to the
// list view. No confirmation, no existence check.
// POST /delete
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.FormValue("bookDBId"), 10, 64)
	if err != nil {
		s.logger.Warn("Delete with unparseable id", "value", r.FormValue("bookDBId"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := s.recommendations.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete recommendation", "error", err, "id", id)
		writeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
