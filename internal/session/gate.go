// Package session tracks whether the current client is signed in.
//
// The gate owns the single live Session value. It is either anonymous or
// bound to a GitHub profile; every consumer reads it through the comma-ok
// Current accessor so both cases are handled explicitly.
package session

import (
	"context"
	"slices"
	"sync"

	"contribhub/internal/backend"
	"contribhub/internal/domain"
)

// Gate reads and caches the authentication state of the current client.
type Gate struct {
	client *backend.Client

	mu      sync.Mutex
	user    *domain.User
	seq     uint64
	onReset []func()
}

// NewGate constructs a gate starting in the anonymous state.
func NewGate(client *backend.Client) *Gate {
	return &Gate{client: client}
}

// Current returns the signed-in user. ok is false while anonymous.
func (g *Gate) Current() (domain.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return domain.User{}, false
	}
	return *g.user, true
}

// OnReset registers fn to run whenever the session drops to anonymous, for
// invalidating state scoped to the signed-in user.
func (g *Gate) OnReset(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onReset = append(g.onReset, fn)
}

// Refresh reads the authentication state from the backend. A refresh that is
// superseded by a newer one (or by logout) is discarded and reported as
// backend.ErrSuperseded. A failed fetch drops the session to anonymous.
func (g *Gate) Refresh(ctx context.Context) (domain.User, bool, error) {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	user, err := g.client.CurrentUser(ctx)

	g.mu.Lock()
	if seq != g.seq {
		g.mu.Unlock()
		return domain.User{}, false, backend.ErrSuperseded
	}
	wasAuthed := g.user != nil
	g.user = user
	if err != nil {
		g.user = nil
	}
	dropped := wasAuthed && g.user == nil
	hooks := slices.Clone(g.onReset)
	g.mu.Unlock()

	if dropped {
		for _, fn := range hooks {
			fn()
		}
	}
	if err != nil {
		return domain.User{}, false, err
	}
	if user == nil {
		return domain.User{}, false, nil
	}
	return *user, true, nil
}

// Logout invalidates the server-side session. Local state is reset to
// anonymous before the network call, so the client is logged out even when
// the call itself fails.
func (g *Gate) Logout(ctx context.Context) error {
	g.reset()
	return g.client.Logout(ctx)
}

// Downgrade forces the session to anonymous without a network call. Used
// when an auth-gated call comes back 401.
func (g *Gate) Downgrade() {
	g.reset()
}

func (g *Gate) reset() {
	g.mu.Lock()
	g.seq++ // discard any in-flight refresh
	g.user = nil
	hooks := slices.Clone(g.onReset)
	g.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
