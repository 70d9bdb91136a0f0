package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"contribhub/internal/backend"
	"contribhub/internal/session"
)

const aliceJSON = `{"user":{"id":11,"login":"alice"}}`

// testBackend is a fake API server. Toggle endpoints can be failed or
// blocked per test.
type testBackend struct {
	mux *http.ServeMux
	srv *httptest.Server

	mu            sync.Mutex
	bookmarked    map[int]bool
	failToggles   bool
	bookmarkCalls atomic.Int64
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{mux: http.NewServeMux(), bookmarked: make(map[int]bool)}

	b.mux.HandleFunc("GET /api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(aliceJSON))
	})
	b.mux.HandleFunc("GET /api/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		b.bookmarkCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"issues":[{"id":1},{"id":2}]}`))
	})
	b.mux.HandleFunc("POST /api/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		b.bookmarkCalls.Add(1)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failToggles {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	b.mux.HandleFunc("DELETE /api/bookmarks/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.bookmarkCalls.Add(1)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.failToggles {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *testBackend) setFailToggles(fail bool) {
	b.mu.Lock()
	b.failToggles = fail
	b.mu.Unlock()
}

func newAuthedSynchronizer(t *testing.T, b *testBackend) (*Synchronizer, *session.Gate) {
	t.Helper()
	client := backend.NewClient(b.srv.URL)
	gate := session.NewGate(client)
	if _, ok, err := gate.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("authenticating test gate: ok=%v err=%v", ok, err)
	}
	return NewSynchronizer(client, gate), gate
}

func TestToggleIdempotence(t *testing.T) {
	b := newTestBackend(t)
	s, _ := newAuthedSynchronizer(t, b)

	if s.Contains(42) {
		t.Fatal("issue 42 should start unbookmarked")
	}

	now, err := s.Toggle(context.Background(), 42)
	if err != nil || !now {
		t.Fatalf("first Toggle = (%v, %v), want (true, nil)", now, err)
	}
	if !s.Contains(42) {
		t.Error("issue 42 should be bookmarked after the first toggle")
	}

	now, err = s.Toggle(context.Background(), 42)
	if err != nil || now {
		t.Fatalf("second Toggle = (%v, %v), want (false, nil)", now, err)
	}
	if s.Contains(42) {
		t.Error("two sequential toggles must restore the original membership")
	}
}

func TestOptimisticRollbackOnFailure(t *testing.T) {
	b := newTestBackend(t)
	s, _ := newAuthedSynchronizer(t, b)
	b.setFailToggles(true)

	if _, err := s.Toggle(context.Background(), 42); err == nil {
		t.Fatal("Toggle should surface the server failure")
	}
	if s.Contains(42) {
		t.Error("failed add must be rolled back")
	}

	// Same contract for a failed removal: membership is restored.
	b.setFailToggles(false)
	if _, err := s.Toggle(context.Background(), 42); err != nil {
		t.Fatalf("seeding bookmark: %v", err)
	}
	b.setFailToggles(true)
	if _, err := s.Toggle(context.Background(), 42); err == nil {
		t.Fatal("Toggle should surface the server failure")
	}
	if !s.Contains(42) {
		t.Error("failed removal must be rolled back")
	}
}

func TestAnonymousOperationsMakeNoNetworkCalls(t *testing.T) {
	b := newTestBackend(t)
	client := backend.NewClient(b.srv.URL)
	gate := session.NewGate(client) // never refreshed: anonymous
	s := NewSynchronizer(client, gate)

	if _, err := s.Refresh(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("anonymous Refresh error = %v, want ErrNotAuthenticated", err)
	}
	if _, err := s.Toggle(context.Background(), 7); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("anonymous Toggle error = %v, want ErrNotAuthenticated", err)
	}
	if n := b.bookmarkCalls.Load(); n != 0 {
		t.Errorf("anonymous operations issued %d network calls, want 0", n)
	}
}

func TestSameIDToggleWhileInFlightIsRejected(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})

	// The add endpoint blocks until released so the first toggle stays in
	// flight while the second one is attempted.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(aliceJSON))
	})
	var once sync.Once
	mux.HandleFunc("POST /api/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(arrived) })
		<-release
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	gate := session.NewGate(client)
	if _, ok, err := gate.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("authenticating test gate: ok=%v err=%v", ok, err)
	}
	s := NewSynchronizer(client, gate)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstNow bool
	var firstErr error
	go func() {
		defer wg.Done()
		firstNow, firstErr = s.Toggle(context.Background(), 7)
	}()

	<-arrived
	if _, err := s.Toggle(context.Background(), 7); !errors.Is(err, ErrToggleInProgress) {
		t.Errorf("overlapping Toggle error = %v, want ErrToggleInProgress", err)
	}

	close(release)
	wg.Wait()
	if firstErr != nil || !firstNow {
		t.Errorf("first Toggle = (%v, %v), want (true, nil) unaffected by the rejection", firstNow, firstErr)
	}
	if !s.Contains(7) {
		t.Error("issue 7 should be bookmarked after the first toggle completes")
	}
}

func TestDistinctIDsToggleConcurrently(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(aliceJSON))
	})
	var once sync.Once
	mux.HandleFunc("POST /api/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IssueID int `json:"issueId"`
		}
		decodeJSONBody(r, &req)
		if req.IssueID == 1 {
			once.Do(func() { close(arrived) })
			<-release
		}
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	gate := session.NewGate(client)
	if _, ok, err := gate.Refresh(context.Background()); err != nil || !ok {
		t.Fatalf("authenticating test gate: ok=%v err=%v", ok, err)
	}
	s := NewSynchronizer(client, gate)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.Toggle(context.Background(), 1); err != nil {
			t.Errorf("Toggle(1): %v", err)
		}
	}()

	<-arrived
	// Issue 1 is still in flight; issue 2 proceeds independently.
	if now, err := s.Toggle(context.Background(), 2); err != nil || !now {
		t.Errorf("Toggle(2) while 1 in flight = (%v, %v), want (true, nil)", now, err)
	}
	if !s.Contains(1) {
		t.Error("issue 1 should already be optimistically bookmarked")
	}

	close(release)
	wg.Wait()
	if !s.Contains(1) || !s.Contains(2) {
		t.Error("both issues should be bookmarked")
	}
}

func TestRefreshPopulatesSetAndUnauthorizedDowngrades(t *testing.T) {
	b := newTestBackend(t)
	s, gate := newAuthedSynchronizer(t, b)

	issues, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(issues) != 2 || !s.Contains(1) || !s.Contains(2) || s.Len() != 2 {
		t.Errorf("Refresh populated %v (len %d), want ids 1 and 2", issues, s.Len())
	}

	// Expired session: the 401 surfaces as Unauthorized and drops the gate.
	expired := http.NewServeMux()
	expired.HandleFunc("GET /api/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"authentication required"}`, http.StatusUnauthorized)
	})
	srv := httptest.NewServer(expired)
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	s2 := NewSynchronizer(client, gate)
	if _, err := s2.Refresh(context.Background()); !errors.Is(err, backend.ErrUnauthorized) {
		t.Errorf("Refresh error = %v, want ErrUnauthorized", err)
	}
	if _, ok := gate.Current(); ok {
		t.Error("gate should be downgraded to anonymous after a 401")
	}
}

func TestSessionResetClearsSet(t *testing.T) {
	b := newTestBackend(t)
	s, gate := newAuthedSynchronizer(t, b)

	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if s.Len() == 0 {
		t.Fatal("expected a populated set before logout")
	}

	_ = gate.Logout(context.Background())
	if s.Len() != 0 {
		t.Error("logout must clear the bookmark set")
	}
}

func decodeJSONBody(r *http.Request, out any) {
	dec := json.NewDecoder(r.Body)
	_ = dec.Decode(out)
}
