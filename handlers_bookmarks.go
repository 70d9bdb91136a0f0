package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"contribhub/internal/domain"
)

func handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	rows, err := db.Query(`
		SELECT i.id, i.repo, i.title, i.description, i.difficulty, i.comments, i.url,
		       i.created_at, i.updated_at
		FROM bookmarks b JOIN issues i ON i.id = b.issue_id
		WHERE b.user_id = ? ORDER BY b.created_at DESC`, u.ID)
	if err != nil {
		log.Printf("Error listing bookmarks for user %d: %v", u.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to load bookmarks")
		return
	}
	defer rows.Close()

	issues := []domain.Issue{}
	for rows.Next() {
		var is domain.Issue
		var created, updated string
		if err := rows.Scan(&is.ID, &is.Repo, &is.Title, &is.Description,
			&is.Difficulty, &is.Comments, &is.URL, &created, &updated); err != nil {
			log.Printf("Error scanning bookmark row: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to load bookmarks")
			return
		}
		is.CreatedAt, _ = time.Parse(time.RFC3339, created)
		is.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		issues = append(issues, is)
	}

	writeJSON(w, http.StatusOK, map[string]any{"issues": issues})
}

func handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	var req struct {
		IssueID int `json:"issueId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IssueID == 0 {
		writeError(w, http.StatusBadRequest, "issueId is required")
		return
	}

	var exists int
	if err := db.QueryRow(`SELECT 1 FROM issues WHERE id = ?`, req.IssueID).Scan(&exists); err != nil {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}

	if _, err := db.Exec(`INSERT OR IGNORE INTO bookmarks (user_id, issue_id) VALUES (?, ?)`,
		u.ID, req.IssueID); err != nil {
		log.Printf("Error adding bookmark: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save bookmark")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid issue id")
		return
	}

	if _, err := db.Exec(`DELETE FROM bookmarks WHERE user_id = ? AND issue_id = ?`, u.ID, id); err != nil {
		log.Printf("Error removing bookmark: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to remove bookmark")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
