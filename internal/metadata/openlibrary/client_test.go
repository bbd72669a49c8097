package openlibrary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return data
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := New(server.URL, DefaultCoversBaseURL, logger)
	client.http = server.Client()

	return client, server
}

func TestClient_SearchByTitle(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	tests := []struct {
		name       string
		response   []byte
		statusCode int
		wantTitle  string
		wantAuthor string
		wantISBN   string
		wantErr    error
	}{
		{
			name:       "successful search",
			response:   fixture,
			statusCode: http.StatusOK,
			wantTitle:  "The Sun Also Rises",
			wantAuthor: "Ernest Hemingway",
			wantISBN:   "0330105515",
		},
		{
			name:       "empty results",
			response:   []byte(`{"numFound": 0, "docs": []}`),
			statusCode: http.StatusOK,
			wantErr:    ErrNoMatch,
		},
		{
			name:       "result missing title",
			response:   []byte(`{"numFound": 1, "docs": [{"author_name": ["Anonymous"]}]}`),
			statusCode: http.StatusOK,
			wantErr:    ErrNoMatch,
		},
		{
			name:       "result missing authors",
			response:   []byte(`{"numFound": 1, "docs": [{"title": "Beowulf"}]}`),
			statusCode: http.StatusOK,
			wantErr:    ErrNoMatch,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrRateLimited,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.response != nil {
					w.Write(tt.response)
				}
			}

			client, server := newTestClient(t, handler)
			defer server.Close()
			defer client.Close()

			match, err := client.SearchByTitle(context.Background(), "The Sun Also Rises")

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected wrapped error %v, got %v", tt.wantErr, err)
				}
				if match != nil {
					t.Errorf("expected nil match on error, got %+v", match)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if match.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", match.Title, tt.wantTitle)
			}
			if match.Author != tt.wantAuthor {
				t.Errorf("author = %q, want %q", match.Author, tt.wantAuthor)
			}
			if match.ISBN != tt.wantISBN {
				t.Errorf("isbn = %q, want %q", match.ISBN, tt.wantISBN)
			}
		})
	}
}

func TestClient_SearchByTitle_EmptyQuery(t *testing.T) {
	called := false
	handler := func(w http.ResponseWriter, r *http.Request) {
		called = true
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	_, err := client.SearchByTitle(context.Background(), "   ")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch for blank title, got %v", err)
	}
	if called {
		t.Error("blank title must not reach the catalog")
	}
}

func TestClient_SearchByTitle_QueryFormat(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	var gotQuery string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		w.Write(fixture)
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	if _, err := client.SearchByTitle(context.Background(), "The Sun Also Rises"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "q=the+sun+also+rises" {
		t.Errorf("raw query = %q, want %q", gotQuery, "q=the+sun+also+rises")
	}
}

func TestClient_SearchByISBN(t *testing.T) {
	fixture := loadFixture(t, "search_response.json")

	var gotQuery string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		w.Write(fixture)
	}

	client, server := newTestClient(t, handler)
	defer server.Close()
	defer client.Close()

	match, err := client.SearchByISBN(context.Background(), " 0330105515 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "isbn=0330105515" {
		t.Errorf("raw query = %q, want %q", gotQuery, "isbn=0330105515")
	}
	if match.Author != "Ernest Hemingway" {
		t.Errorf("author = %q, want %q", match.Author, "Ernest Hemingway")
	}
}

func TestClient_Search_NetworkFailure(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on
	defer client.Close()

	_, err := client.SearchByTitle(context.Background(), "Dune")
	if err == nil {
		t.Fatal("expected error from unreachable catalog")
	}
	if errors.Is(err, ErrNoMatch) {
		t.Error("transport failure must not be reported as ErrNoMatch")
	}
}

func TestFirstISBN10(t *testing.T) {
	tests := []struct {
		name  string
		isbns []string
		want  string
	}{
		{"ten char first", []string{"0330105515", "9780330105519"}, "0330105515"},
		{"ten char second", []string{"9780330105519", "0330105515"}, "0330105515"},
		{"only thirteen char", []string{"9780330105519"}, ""},
		{"empty list", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstISBN10(tt.isbns); got != tt.want {
				t.Errorf("firstISBN10(%v) = %q, want %q", tt.isbns, got, tt.want)
			}
		})
	}
}

func TestClient_CoverURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := New(DefaultBaseURL, DefaultCoversBaseURL, logger)

	got := client.CoverURL("0330105515")
	want := "https://covers.openlibrary.org/b/isbn/0330105515-L.jpg"
	if got != want {
		t.Errorf("CoverURL = %q, want %q", got, want)
	}

	if got := client.CoverURL(""); got != "" {
		t.Errorf("CoverURL(\"\") = %q, want empty", got)
	}
}
