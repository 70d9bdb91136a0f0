// Package issues holds the issue catalog cache and the pure derivations
// over it: filtering, sorting and pagination.
package issues

import (
	"context"
	"sync"

	"contribhub/internal/backend"
	"contribhub/internal/domain"
)

// Repository fetches and caches the issue catalog. The cache is replaced
// atomically by a successful refresh and left untouched by a failed one;
// there is no partial merge.
type Repository struct {
	client *backend.Client

	mu     sync.Mutex
	cached []domain.Issue
	seq    uint64
}

// NewRepository constructs a repository with an empty cache.
func NewRepository(client *backend.Client) *Repository {
	return &Repository{client: client}
}

// Cached returns the last successfully fetched catalog. Callers treat the
// slice as read-only; issues are immutable within a session.
func (r *Repository) Cached() []domain.Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached
}

// Refresh performs one network read of the full catalog. The latest request
// wins: if a newer refresh started while this one was in flight, its
// response is discarded and backend.ErrSuperseded returned. The repository
// never retries on its own; the caller decides when to refresh again.
func (r *Repository) Refresh(ctx context.Context) ([]domain.Issue, error) {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	list, err := r.client.ListIssues(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.seq {
		return nil, backend.ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	r.cached = list
	return list, nil
}
