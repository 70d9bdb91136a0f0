package main

import (
	"time"

	"contribhub/internal/domain"
)

type User struct {
	ID          int64
	GitHubID    int64
	Login       string
	Name        string
	AvatarURL   string
	Bio         string
	Company     string
	Location    string
	Email       string
	PublicRepos int
	Followers   int
	Following   int
	JoinedAt    time.Time
}

// profile converts a stored user to the GitHub-shaped wire form.
func (u *User) profile() domain.User {
	return domain.User{
		ID:          u.GitHubID,
		Login:       u.Login,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Bio:         u.Bio,
		Company:     u.Company,
		Location:    u.Location,
		Email:       u.Email,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
		JoinedAt:    u.JoinedAt,
	}
}
