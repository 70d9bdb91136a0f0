// Package bookmarks keeps the signed-in user's bookmark set consistent with
// the server under optimistic updates and concurrent toggles.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"contribhub/internal/backend"
	"contribhub/internal/domain"
	"contribhub/internal/session"
)

// ErrNotAuthenticated is a client-side refusal: the operation needs a
// signed-in user and no network call was made.
var ErrNotAuthenticated = errors.New("not signed in")

// ErrToggleInProgress rejects a toggle for an issue whose previous toggle is
// still in flight. There is no queuing; the caller simply retries later.
var ErrToggleInProgress = errors.New("bookmark update already in progress")

// Synchronizer owns the bookmark set for the current user. The set is
// created empty, populated by Refresh, mutated only by Toggle and cleared
// whenever the session drops to anonymous.
type Synchronizer struct {
	client *backend.Client
	gate   *session.Gate

	mu       sync.Mutex
	ids      map[int]struct{}
	inflight map[int]struct{}
	seq      uint64
	notify   func()
}

// NewSynchronizer constructs a synchronizer bound to the session gate. The
// set is cleared automatically when the gate resets to anonymous.
func NewSynchronizer(client *backend.Client, gate *session.Gate) *Synchronizer {
	s := &Synchronizer{
		client:   client,
		gate:     gate,
		ids:      make(map[int]struct{}),
		inflight: make(map[int]struct{}),
	}
	gate.OnReset(s.Clear)
	return s
}

// Notify installs a single callback invoked after every membership change
// (optimistic apply, rollback, refresh, clear). The view layer uses it to
// re-render; pass nil to uninstall.
func (s *Synchronizer) Notify(fn func()) {
	s.mu.Lock()
	s.notify = fn
	s.mu.Unlock()
}

// Contains reports whether the issue is currently bookmarked, including
// optimistic state of in-flight toggles.
func (s *Synchronizer) Contains(issueID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[issueID]
	return ok
}

// Len returns the current size of the bookmark set.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Refresh fetches the user's bookmarked issues and replaces the local set
// with their ids. It fails fast with ErrNotAuthenticated while anonymous,
// without touching the network. A refresh superseded by a newer one (or by
// logout) is discarded and reported as backend.ErrSuperseded.
func (s *Synchronizer) Refresh(ctx context.Context) ([]domain.Issue, error) {
	if _, ok := s.gate.Current(); !ok {
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	issues, err := s.client.ListBookmarks(ctx)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return nil, backend.ErrSuperseded
	}
	var changed func()
	if err == nil {
		ids := make(map[int]struct{}, len(issues))
		for _, is := range issues {
			ids[is.ID] = struct{}{}
		}
		s.ids = ids
		changed = s.notify
	}
	s.mu.Unlock()

	if changed != nil {
		changed()
	}
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			s.gate.Downgrade()
		}
		return nil, err
	}
	return issues, nil
}

// Toggle flips the bookmark for issueID and returns the new membership state
// (true = now bookmarked). The local set is updated before the network call;
// on failure it is rolled back to the exact pre-toggle state and the error
// is surfaced for the view to report. A second toggle for the same id while
// the first is in flight fails with ErrToggleInProgress; toggles for
// different ids proceed independently.
func (s *Synchronizer) Toggle(ctx context.Context, issueID int) (bool, error) {
	if _, ok := s.gate.Current(); !ok {
		return false, ErrNotAuthenticated
	}

	s.mu.Lock()
	if _, busy := s.inflight[issueID]; busy {
		s.mu.Unlock()
		return false, ErrToggleInProgress
	}
	_, was := s.ids[issueID]
	if was {
		delete(s.ids, issueID)
	} else {
		s.ids[issueID] = struct{}{}
	}
	s.inflight[issueID] = struct{}{}
	seq := s.seq
	changed := s.notify
	s.mu.Unlock()

	if changed != nil {
		changed()
	}

	var err error
	if was {
		err = s.client.RemoveBookmark(ctx, issueID)
	} else {
		err = s.client.AddBookmark(ctx, issueID)
	}

	s.mu.Lock()
	delete(s.inflight, issueID)
	changed = nil
	if err != nil && seq == s.seq {
		// Compensate: restore the pre-toggle state. Skipped when the whole
		// set was replaced or cleared while the call was in flight.
		if was {
			s.ids[issueID] = struct{}{}
		} else {
			delete(s.ids, issueID)
		}
		changed = s.notify
	}
	s.mu.Unlock()

	if changed != nil {
		changed()
	}
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			s.gate.Downgrade()
		}
		return was, fmt.Errorf("toggle bookmark %d: %w", issueID, err)
	}
	return !was, nil
}

// Clear empties the bookmark set and discards any in-flight refresh.
func (s *Synchronizer) Clear() {
	s.mu.Lock()
	s.seq++
	s.ids = make(map[int]struct{})
	changed := s.notify
	s.mu.Unlock()
	if changed != nil {
		changed()
	}
}
