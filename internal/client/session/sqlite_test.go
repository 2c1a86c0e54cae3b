package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func TestStore_EmptyByDefault(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	want := &Snapshot{ID: "u1", FullName: "Ann Lee", Email: "ann@x.com", Username: "annlee"}
	require.NoError(t, s.Save(ctx, "tok-123", want))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, want, snap)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "old", &Snapshot{ID: "u1"}))
	require.NoError(t, s.Save(ctx, "new", &Snapshot{ID: "u2"}))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", token)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, "u2", snap.ID)
}

func TestStore_ClearWipesBoth(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok", &Snapshot{ID: "u1"}))
	require.NoError(t, s.Clear(ctx))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Nil(t, snap)

	// clearing again is a no-op, not an error
	require.NoError(t, s.Clear(ctx))
}
