// Package session holds the client's locally persisted authentication state:
// the raw session token and a cached snapshot of the public profile fields.
// The store is an explicit, injectable abstraction so tests can swap it for
// a double; nothing reads ambient global state.
package session

import "context"

// Snapshot is the locally cached, non-authoritative copy of the public
// identity fields. It never contains password material.
type Snapshot struct {
	ID       string `json:"_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Store persists the session token and profile snapshot.
//
// Contract:
//   - Token returns "" (no error) when no token is stored.
//   - Snapshot returns nil (no error) when no snapshot is stored.
//   - Save persists both values atomically.
//   - Clear removes both values; clearing an empty store is not an error.
type Store interface {
	Token(ctx context.Context) (string, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, token string, snapshot *Snapshot) error
	Clear(ctx context.Context) error
}
