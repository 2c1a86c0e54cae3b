// Package services contains application services for the AuctionHub client.
// This file defines the session guard: it owns the locally persisted token
// and profile snapshot, decides whether a protected view may render, and
// performs the cleanup-and-redirect dance when a session turns out to be
// expired.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dkalnins/auctionhub/internal/client/api"
	"github.com/dkalnins/auctionhub/internal/client/session"
	"github.com/dkalnins/auctionhub/internal/common"
)

// State is the client-side session state. Transitions:
// Anonymous -> Authenticating (explicit register/login submission),
// Authenticating -> Authenticated (success) or back to Anonymous (failure),
// Authenticated -> Anonymous (logout or failed validation).
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

var (
	// ErrNotAuthenticated means no session is present locally; the caller
	// should redirect to the entry point without contacting the server.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired means the server rejected the stored token. Local
	// state has already been cleared; the caller shows the message and
	// redirects after a short delay.
	ErrSessionExpired = errors.New("session expired")

	// ErrSubmissionInFlight rejects a second register/login submission while
	// one is still running.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// SessionGuard gates protected views on the presence and validity of the
// locally persisted session. The presence check is advisory only; the server
// remains the source of truth.
type SessionGuard struct {
	client api.Client
	store  session.Store

	mu    sync.Mutex
	state State
}

// NewSessionGuard builds a guard and derives the initial state from the
// presence of a persisted token.
func NewSessionGuard(ctx context.Context, client api.Client, store session.Store) (*SessionGuard, error) {
	g := &SessionGuard{client: client, store: store, state: StateAnonymous}

	token, err := store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		g.state = StateAuthenticated
	}
	return g, nil
}

func (g *SessionGuard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// IsAuthenticated reports whether a token is cached locally. No signature or
// expiry check happens here.
func (g *SessionGuard) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := g.store.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// Register submits a registration and, on success, persists the token and a
// trimmed snapshot before reporting the session as authenticated.
func (g *SessionGuard) Register(ctx context.Context, fullName, email, username, password string) (*api.User, error) {
	if err := g.beginSubmission(); err != nil {
		return nil, err
	}

	res, err := g.client.Register(ctx, fullName, email, username, password)
	return g.finishSubmission(ctx, res, err)
}

// Login submits credentials and, on success, persists the token and a
// trimmed snapshot before reporting the session as authenticated.
func (g *SessionGuard) Login(ctx context.Context, identifier, password string) (*api.User, error) {
	if err := g.beginSubmission(); err != nil {
		return nil, err
	}

	res, err := g.client.Login(ctx, identifier, password)
	return g.finishSubmission(ctx, res, err)
}

// EnterProtectedView implements the protected-view gate:
//   - no local token: ErrNotAuthenticated, the server is never contacted;
//   - otherwise the cached snapshot (if any) is rendered optimistically via
//     render, then the profile is confirmed with the server;
//   - confirmation success replaces the snapshot and returns the fresh
//     identity;
//   - an auth failure clears token and snapshot and returns ErrSessionExpired.
//
// Transport failures are surfaced as-is and leave local state untouched.
func (g *SessionGuard) EnterProtectedView(ctx context.Context, render func(*session.Snapshot)) (*api.User, error) {
	token, err := g.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		g.setState(StateAnonymous)
		return nil, ErrNotAuthenticated
	}

	snap, err := g.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap != nil && render != nil {
		render(snap)
	}

	user, err := g.client.CurrentUser(ctx, token)
	if err != nil {
		if isAuthFailure(err) {
			if clearErr := g.store.Clear(ctx); clearErr != nil {
				return nil, clearErr
			}
			g.setState(StateAnonymous)
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	// A logout may have raced the confirmation; a response for a token that
	// is no longer stored is dropped instead of resurrecting the session.
	current, err := g.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if current != token {
		return nil, ErrNotAuthenticated
	}

	if err := g.store.Save(ctx, token, snapshotOf(user)); err != nil {
		return nil, err
	}
	g.setState(StateAuthenticated)
	return user, nil
}

// Logout clears the persisted token and snapshot unconditionally.
func (g *SessionGuard) Logout(ctx context.Context) error {
	if err := g.store.Clear(ctx); err != nil {
		return err
	}
	g.setState(StateAnonymous)
	return nil
}

func (g *SessionGuard) beginSubmission() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateAuthenticating {
		return ErrSubmissionInFlight
	}
	g.state = StateAuthenticating
	return nil
}

func (g *SessionGuard) finishSubmission(ctx context.Context, res *api.AuthResult, err error) (*api.User, error) {
	if err != nil {
		g.setState(StateAnonymous)
		return nil, err
	}

	if err := g.store.Save(ctx, res.Token, snapshotOf(&res.User)); err != nil {
		g.setState(StateAnonymous)
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	g.setState(StateAuthenticated)
	return &res.User, nil
}

func (g *SessionGuard) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// snapshotOf trims the identity to the fields the snapshot may hold.
func snapshotOf(u *api.User) *session.Snapshot {
	return &session.Snapshot{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Username: u.Username,
	}
}

// isAuthFailure matches responses that mean the session is no longer honored:
// an invalid/expired token or an identity that vanished server-side.
func isAuthFailure(err error) bool {
	if errors.Is(err, common.ErrorUnauthorized) {
		return true
	}
	var apiErr *api.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
