package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"contribhub/internal/domain"
)

func handleAuthUser(w http.ResponseWriter, r *http.Request) {
	u := userForSession(r)
	if u == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u.profile()})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie("session"); err == nil {
		if _, err := db.Exec(`DELETE FROM sessions WHERE token = ?`, c.Value); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func handleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
	})

	q := url.Values{}
	q.Set("client_id", cfg.GitHub.ClientID)
	q.Set("redirect_uri", cfg.BaseURL+"/auth/github/callback")
	q.Set("scope", "read:user")
	q.Set("state", state)
	http.Redirect(w, r, "https://github.com/login/oauth/authorize?"+q.Encode(), http.StatusFound)
}

func handleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("oauth_state")
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	token, err := exchangeCode(r.URL.Query().Get("code"))
	if err != nil {
		log.Printf("OAuth code exchange failed: %v", err)
		writeError(w, http.StatusBadGateway, "github login failed")
		return
	}

	profile, err := fetchGitHubUser(token)
	if err != nil {
		log.Printf("Fetching GitHub profile failed: %v", err)
		writeError(w, http.StatusBadGateway, "github login failed")
		return
	}

	userID, err := upsertUser(profile)
	if err != nil {
		log.Printf("Upserting user %s failed: %v", profile.Login, err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	session := uuid.NewString()
	expires := time.Now().Add(30 * 24 * time.Hour)
	if _, err := db.Exec(`INSERT INTO sessions (user_id, token, expires_at) VALUES (?, ?, ?)`,
		userID, session, expires.Format(time.RFC3339)); err != nil {
		log.Printf("Creating session failed: %v", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    session,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func exchangeCode(code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", cfg.GitHub.ClientID)
	form.Set("client_secret", cfg.GitHub.ClientSecret)
	form.Set("code", code)

	req, err := http.NewRequest(http.MethodPost,
		"https://github.com/login/oauth/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("github rejected the code: %s", body.Error)
	}
	return body.AccessToken, nil
}

func fetchGitHubUser(token string) (domain.User, error) {
	req, err := http.NewRequest(http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return domain.User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return domain.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.User{}, fmt.Errorf("github user endpoint returned %d", resp.StatusCode)
	}

	var u domain.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func upsertUser(p domain.User) (int64, error) {
	_, err := db.Exec(`
		INSERT INTO users (github_id, login, name, avatar_url, bio, company, location,
		                   email, public_repos, followers, following, joined_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(github_id) DO UPDATE SET
			login = excluded.login, name = excluded.name, avatar_url = excluded.avatar_url,
			bio = excluded.bio, company = excluded.company, location = excluded.location,
			email = excluded.email, public_repos = excluded.public_repos,
			followers = excluded.followers, following = excluded.following`,
		p.ID, p.Login, p.Name, p.AvatarURL, p.Bio, p.Company, p.Location,
		p.Email, p.PublicRepos, p.Followers, p.Following,
		p.JoinedAt.Format(time.RFC3339))
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.QueryRow(`SELECT id FROM users WHERE github_id = ?`, p.ID).Scan(&id)
	return id, err
}
