package main

import (
	"encoding/json"
	"net/http"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/issues", handleListIssues)
	mux.HandleFunc("GET /api/auth/user", handleAuthUser)

	mux.HandleFunc("GET /api/bookmarks", requireAuth(handleListBookmarks))
	mux.HandleFunc("POST /api/bookmarks", requireAuth(handleAddBookmark))
	mux.HandleFunc("DELETE /api/bookmarks/{id}", requireAuth(handleRemoveBookmark))
	mux.HandleFunc("DELETE /api/logout", requireAuth(handleLogout))

	mux.HandleFunc("GET /auth/github", handleGitHubLogin)
	mux.HandleFunc("GET /auth/github/callback", handleGitHubCallback)

	mux.Handle("/", &app.Handler{
		Name:        "ContribHub",
		Description: "Find and contribute to open source projects",
		Styles:      []string{"/web/app.css"},
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
