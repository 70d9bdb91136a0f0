package main

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr    string       `yaml:"addr"`
	DBPath  string       `yaml:"db_path"`
	BaseURL string       `yaml:"base_url"`
	GitHub  GitHubConfig `yaml:"github"`
	Ingest  IngestConfig `yaml:"ingest"`
}

type GitHubConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	// Token is optional; it raises the rate limit for catalog ingestion.
	Token string `yaml:"token"`
}

type IngestConfig struct {
	// Repos are "owner/name" GitHub repositories to pull issues from.
	Repos    []string `yaml:"repos"`
	Interval string   `yaml:"interval"`
}

var cfg Config

func loadConfig(path string) {
	cfg = Config{
		Addr:    ":8080",
		DBPath:  "contribhub.db",
		BaseURL: "http://localhost:8080",
		Ingest:  IngestConfig{Interval: "30m"},
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("No config file found at %s, using defaults", path)
	} else {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("parse config %s: %v", path, err)
		}
	}

	// Secrets may come from the environment instead of the file.
	if v := os.Getenv("GITHUB_CLIENT_ID"); v != "" {
		cfg.GitHub.ClientID = v
	}
	if v := os.Getenv("GITHUB_CLIENT_SECRET"); v != "" {
		cfg.GitHub.ClientSecret = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
}

func (c Config) ingestInterval() time.Duration {
	d, err := time.ParseDuration(c.Ingest.Interval)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}
