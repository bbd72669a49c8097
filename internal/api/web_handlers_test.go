package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelftalk/shelftalk-server/internal/metadata/openlibrary"
	"github.com/shelftalk/shelftalk-server/internal/service"
	"github.com/shelftalk/shelftalk-server/internal/store/sqlite"
)

const sunAlsoRisesJSON = `{
	"numFound": 1,
	"docs": [
		{
			"title": "The Sun Also Rises",
			"author_name": ["Ernest Hemingway"],
			"isbn": ["9780330105519", "0330105515"]
		}
	]
}`

const noMatchJSON = `{"numFound": 0, "docs": []}`

// setupTestServer creates a Server backed by a temp database and a
// stubbed catalog returning the given JSON body.
func setupTestServer(t *testing.T, catalogBody string, catalogStatus int) (*Server, *sqlite.Store) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	catalogStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(catalogStatus)
		io.WriteString(w, catalogBody)
	}))
	t.Cleanup(catalogStub.Close)

	catalog := openlibrary.New(catalogStub.URL, openlibrary.DefaultCoversBaseURL, logger)
	svc := service.NewRecommendationService(store, catalog, logger)

	return NewServer(svc, logger), store
}

// formatID renders a row id the way the form fields carry it.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// postForm performs a form POST against the server.
func postForm(t *testing.T, server *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestHandleHome_Empty(t *testing.T) {
	server, _ := setupTestServer(t, noMatchJSON, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No recommendations yet")
}

func TestHandleAdd_CreatesRecommendation(t *testing.T) {
	server, store := setupTestServer(t, sunAlsoRisesJSON, http.StatusOK)

	rec := postForm(t, server, "/add", url.Values{
		"bookTitle":       {"The Sun Also Rises"},
		"bookRecommender": {"jake"},
		"bookComments":    {"a classic"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	recs, err := store.ListRecommendations(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "The Sun Also Rises", recs[0].Title)
	assert.Equal(t, "Ernest Hemingway", recs[0].Author)
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/0330105515-L.jpg", recs[0].CoverURL)
	assert.Equal(t, "jake", recs[0].Recommender)
}

func TestHandleAdd_NoMatchSetsFlash(t *testing.T) {
	server, store := setupTestServer(t, noMatchJSON, http.StatusOK)

	rec := postForm(t, server, "/add", url.Values{
		"bookTitle": {"No Such Book Anywhere"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)

	recs, err := store.ListRecommendations(t.Context())
	require.NoError(t, err)
	assert.Empty(t, recs)

	// The redirect carries the outcome as a cookie.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The next render shows the banner and clears the flash.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	home := httptest.NewRecorder()
	server.ServeHTTP(home, req)

	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "No book in the catalog matched")

	// A render without the cookie has no banner.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	home = httptest.NewRecorder()
	server.ServeHTTP(home, req)

	assert.NotContains(t, home.Body.String(), "No book in the catalog matched")
}

func TestHandleAdd_CatalogDownSetsFlash(t *testing.T) {
	server, store := setupTestServer(t, "oops", http.StatusInternalServerError)

	rec := postForm(t, server, "/add", url.Values{
		"bookTitle": {"Dune"},
	})

	// A broken catalog is not a request failure.
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	recs, err := store.ListRecommendations(t.Context())
	require.NoError(t, err)
	assert.Empty(t, recs)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	home := httptest.NewRecorder()
	server.ServeHTTP(home, req)

	assert.Contains(t, home.Body.String(), "catalog could not be reached")
}

func TestHandleEdit_UpdatesRow(t *testing.T) {
	server, store := setupTestServer(t, sunAlsoRisesJSON, http.StatusOK)

	postForm(t, server, "/add", url.Values{"bookTitle": {"The Sun Also Rises"}})

	recs, err := store.ListRecommendations(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	id := recs[0].ID

	rec := postForm(t, server, "/edit", url.Values{
		"bookDBId":            {formatID(id)},
		"editBookTitle":       {"Fiesta"},
		"editBookAuthor":      {"Ernest Hemingway"},
		"editBookImageURL":    {recs[0].CoverURL},
		"editBookRecommender": {"brett"},
		"dateAdded":           {recs[0].DateAdded},
		"editBookComments":    {"uk edition title"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	recs, err = store.ListRecommendations(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Fiesta", recs[0].Title)
	assert.Equal(t, "brett", recs[0].Recommender)
}

func TestHandleEdit_MissingIDIsNoop(t *testing.T) {
	server, store := setupTestServer(t, sunAlsoRisesJSON, http.StatusOK)

	postForm(t, server, "/add", url.Values{"bookTitle": {"The Sun Also Rises"}})

	rec := postForm(t, server, "/edit", url.Values{
		"bookDBId":      {"99999"},
		"editBookTitle": {"Should Not Appear"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	recs, err := store.ListRecommendations(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "The Sun Also Rises", recs[0].Title)
}

func TestHandleDelete(t *testing.T) {
	server, store := setupTestServer(t, sunAlsoRisesJSON, http.StatusOK)

	postForm(t, server, "/add", url.Values{"bookTitle": {"The Sun Also Rises"}})

	recs, err := store.ListRecommendations(t.Context())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	id := recs[0].ID

	rec := postForm(t, server, "/delete", url.Values{"bookDBId": {formatID(id)}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// Deleting the same id again is a harmless no-op.
	rec = postForm(t, server, "/delete", url.Values{"bookDBId": {formatID(id)}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	recs, err = store.ListRecommendations(t.Context())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestHandleDelete_UnparseableIDRedirects(t *testing.T) {
	server, _ := setupTestServer(t, sunAlsoRisesJSON, http.StatusOK)

	rec := postForm(t, server, "/delete", url.Values{"bookDBId": {"not-a-number"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestHandleHome_StoreFailure(t *testing.T) {
	server, store := setupTestServer(t, noMatchJSON, http.StatusOK)

	// A closed database makes the list query fail.
	require.NoError(t, store.Close())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestHandleHealthCheck(t *testing.T) {
	server, _ := setupTestServer(t, noMatchJSON, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestRateLimitMiddleware(t *testing.T) {
	server, _ := setupTestServer(t, sunAlsoRisesJSON, http.StatusOK)

	// Unparseable ids redirect without touching the catalog, so hammering
	// /delete exercises only the throttle.
	sawLimited := false
	for i := 0; i < submitBurst+10; i++ {
		rec := postForm(t, server, "/delete", url.Values{"bookDBId": {"nope"}})
		if rec.Code == http.StatusTooManyRequests {
			sawLimited = true
			break
		}
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	}

	assert.True(t, sawLimited, "expected a 429 once the burst was spent")
}
