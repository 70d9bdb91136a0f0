package main

import (
	"context"
	"net/http"
	"time"
)

type contextKey string

const userKey contextKey = "user"

// currentUser returns the session's user, or nil when the request is
// anonymous or the handler is not behind requireAuth.
func currentUser(r *http.Request) *User {
	u, _ := r.Context().Value(userKey).(*User)
	return u
}

// userForSession resolves the session cookie to a user. A missing,
// unknown, or expired session yields nil.
func userForSession(r *http.Request) *User {
	c, err := r.Cookie("session")
	if err != nil || c.Value == "" {
		return nil
	}

	var u User
	var joined, expires string
	err = db.QueryRow(`
		SELECT u.id, u.github_id, u.login, u.name, u.avatar_url, u.bio, u.company,
		       u.location, u.email, u.public_repos, u.followers, u.following,
		       u.joined_at, s.expires_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`, c.Value).Scan(
		&u.ID, &u.GitHubID, &u.Login, &u.Name, &u.AvatarURL, &u.Bio, &u.Company,
		&u.Location, &u.Email, &u.PublicRepos, &u.Followers, &u.Following,
		&joined, &expires)
	if err != nil {
		return nil
	}

	exp, err := time.Parse(time.RFC3339, expires)
	if err != nil || time.Now().After(exp) {
		return nil
	}
	u.JoinedAt, _ = time.Parse(time.RFC3339, joined)
	return &u
}

func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := userForSession(r)
		if u == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	}
}
