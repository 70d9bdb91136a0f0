package main

import (
	"log"
	"net/http"
	"time"

	"contribhub/internal/domain"
)

func handleListIssues(w http.ResponseWriter, r *http.Request) {
	issues, err := listIssues()
	if err != nil {
		log.Printf("Error listing issues: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load issues")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"issues": issues})
}

func listIssues() ([]domain.Issue, error) {
	rows, err := db.Query(`
		SELECT id, repo, title, description, difficulty, comments, url, created_at, updated_at
		FROM issues ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := []domain.Issue{}
	for rows.Next() {
		var is domain.Issue
		var created, updated string
		if err := rows.Scan(&is.ID, &is.Repo, &is.Title, &is.Description,
			&is.Difficulty, &is.Comments, &is.URL, &created, &updated); err != nil {
			return nil, err
		}
		is.CreatedAt, _ = time.Parse(time.RFC3339, created)
		is.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		issues = append(issues, is)
	}
	return issues, rows.Err()
}
