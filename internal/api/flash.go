package api

import "net/http"

// The add outcome travels to the next page view in a short-lived cookie
// set on the redirect, so concurrent requests from different users never
// see each other's result.
const flashCookie = "shelftalk_flash"

// Flash values.
const (
	flashNotFound           = "not_found"
	flashCatalogUnavailable = "catalog_error"
)

// setFlash stores a one-shot outcome value for the next page render.
func setFlash(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// popFlash returns the pending flash value, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Value
}
