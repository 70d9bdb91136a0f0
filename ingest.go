package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"contribhub/internal/domain"
)

// startIngest pulls open issues from the configured repositories at
// startup and on a fixed interval.
func startIngest() {
	if len(cfg.Ingest.Repos) == 0 {
		log.Println("No ingest repos configured, skipping catalog ingestion")
		return
	}

	go func() {
		ingestAll(context.Background())
		ticker := time.NewTicker(cfg.ingestInterval())
		defer ticker.Stop()
		for range ticker.C {
			ingestAll(context.Background())
		}
	}()
}

func ingestAll(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, repo := range cfg.Ingest.Repos {
		g.Go(func() error {
			if err := ingestRepo(ctx, repo); err != nil {
				log.Printf("Ingesting %s failed: %v", repo, err)
			}
			return nil
		})
	}
	g.Wait()
}

type githubIssue struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Comments    int    `json:"comments"`
	HTMLURL     string `json:"html_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	PullRequest *struct {
		URL string `json:"url"`
	} `json:"pull_request"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

func ingestRepo(ctx context.Context, repo string) error {
	url := fmt.Sprintf("https://api.github.com/repos/%s/issues?state=open&per_page=100", repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if cfg.GitHub.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.GitHub.Token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github returned %d", resp.StatusCode)
	}

	var issues []githubIssue
	if err := json.NewDecoder(resp.Body).Decode(&issues); err != nil {
		return err
	}

	saved := 0
	for _, gi := range issues {
		if gi.PullRequest != nil {
			continue
		}
		if err := upsertIssue(repo, gi); err != nil {
			return err
		}
		saved++
	}
	log.Printf("Ingested %d issues from %s", saved, repo)
	return nil
}

func difficultyFor(labels []string) domain.Difficulty {
	for _, l := range labels {
		if strings.EqualFold(l, "good first issue") {
			return domain.DifficultyBeginner
		}
	}
	for _, l := range labels {
		if strings.EqualFold(l, "help wanted") {
			return domain.DifficultyIntermediate
		}
	}
	return domain.DifficultyUnknown
}

func upsertIssue(repo string, gi githubIssue) error {
	labels := make([]string, len(gi.Labels))
	for i, l := range gi.Labels {
		labels[i] = l.Name
	}

	_, err := db.Exec(`
		INSERT INTO issues (repo, number, title, description, difficulty, comments, url,
		                    created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(repo, number) DO UPDATE SET
			title = excluded.title, description = excluded.description,
			difficulty = excluded.difficulty, comments = excluded.comments,
			url = excluded.url, updated_at = excluded.updated_at`,
		repo, gi.Number, gi.Title, gi.Body, difficultyFor(labels), gi.Comments,
		gi.HTMLURL, gi.CreatedAt, gi.UpdatedAt)
	return err
}
