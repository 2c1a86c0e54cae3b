package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkalnins/auctionhub/internal/client/api"
	"github.com/dkalnins/auctionhub/internal/client/session"
	"github.com/dkalnins/auctionhub/internal/common"
)

type memStore struct {
	token string
	snap  *session.Snapshot
	saves int
}

func (m *memStore) Token(ctx context.Context) (string, error) { return m.token, nil }

func (m *memStore) Snapshot(ctx context.Context) (*session.Snapshot, error) { return m.snap, nil }

func (m *memStore) Save(ctx context.Context, token string, snapshot *session.Snapshot) error {
	m.token = token
	m.snap = snapshot
	m.saves++
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.token = ""
	m.snap = nil
	return nil
}

type stubClient struct {
	registerRes *api.AuthResult
	registerErr error
	loginRes    *api.AuthResult
	loginErr    error

	currentRes  *api.User
	currentErr  error
	currentHook func()

	currentCalls int
}

func (s *stubClient) Register(ctx context.Context, fullName, email, username, password string) (*api.AuthResult, error) {
	return s.registerRes, s.registerErr
}

func (s *stubClient) Login(ctx context.Context, identifier, password string) (*api.AuthResult, error) {
	return s.loginRes, s.loginErr
}

func (s *stubClient) CurrentUser(ctx context.Context, token string) (*api.User, error) {
	s.currentCalls++
	if s.currentHook != nil {
		s.currentHook()
	}
	return s.currentRes, s.currentErr
}

func annUser() *api.User {
	return &api.User{
		ID:        "u-1",
		FullName:  "Ann Lee",
		Email:     "ann@example.com",
		Username:  "annlee",
		CreatedAt: time.Now().UTC(),
	}
}

func newGuard(t *testing.T, c api.Client, s session.Store) *SessionGuard {
	t.Helper()
	g, err := NewSessionGuard(context.Background(), c, s)
	require.NoError(t, err)
	return g
}

func TestNewSessionGuard_InitialState(t *testing.T) {
	g := newGuard(t, &stubClient{}, &memStore{})
	assert.Equal(t, StateAnonymous, g.State())

	g = newGuard(t, &stubClient{}, &memStore{token: "tok"})
	assert.Equal(t, StateAuthenticated, g.State())
}

func TestRegister_PersistsSessionAndAuthenticates(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := &stubClient{registerRes: &api.AuthResult{User: *annUser(), Token: "tok-1"}}
	g := newGuard(t, c, store)

	user, err := g.Register(ctx, "Ann Lee", "ann@example.com", "annlee", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "annlee", user.Username)
	assert.Equal(t, StateAuthenticated, g.State())

	assert.Equal(t, "tok-1", store.token)
	require.NotNil(t, store.snap)
	assert.Equal(t, "u-1", store.snap.ID)
	assert.Equal(t, "Ann Lee", store.snap.FullName)

	ok, err := g.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLogin_FailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	c := &stubClient{loginErr: common.ErrorUnauthorized}
	g := newGuard(t, c, store)

	_, err := g.Login(ctx, "annlee", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, StateAnonymous, g.State())
	assert.Empty(t, store.token)
	assert.Zero(t, store.saves)
}

func TestBeginSubmission_RejectsConcurrentSubmission(t *testing.T) {
	g := newGuard(t, &stubClient{}, &memStore{})

	require.NoError(t, g.beginSubmission())
	err := g.beginSubmission()
	require.ErrorIs(t, err, ErrSubmissionInFlight)
}

func TestEnterProtectedView_NoToken(t *testing.T) {
	c := &stubClient{}
	g := newGuard(t, c, &memStore{})

	_, err := g.EnterProtectedView(context.Background(), nil)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, c.currentCalls, "server must not be contacted without a token")
}

func TestEnterProtectedView_RendersSnapshotThenConfirms(t *testing.T) {
	store := &memStore{
		token: "tok-1",
		snap:  &session.Snapshot{ID: "u-1", FullName: "Stale Name", Username: "annlee"},
	}
	c := &stubClient{currentRes: annUser()}
	g := newGuard(t, c, store)

	var rendered *session.Snapshot
	user, err := g.EnterProtectedView(context.Background(), func(s *session.Snapshot) {
		rendered = s
		assert.Zero(t, store.saves, "render happens before any save")
	})
	require.NoError(t, err)

	require.NotNil(t, rendered)
	assert.Equal(t, "Stale Name", rendered.FullName)

	assert.Equal(t, "Ann Lee", user.FullName)
	assert.Equal(t, "Ann Lee", store.snap.FullName, "snapshot refreshed from server")
	assert.Equal(t, StateAuthenticated, g.State())
}

func TestEnterProtectedView_ExpiredTokenClearsSession(t *testing.T) {
	store := &memStore{token: "tok-old", snap: &session.Snapshot{ID: "u-1"}}
	c := &stubClient{currentErr: common.ErrorUnauthorized}
	g := newGuard(t, c, store)

	_, err := g.EnterProtectedView(context.Background(), nil)
	require.ErrorIs(t, err, ErrSessionExpired)

	assert.Empty(t, store.token)
	assert.Nil(t, store.snap)
	assert.Equal(t, StateAnonymous, g.State())
}

func TestEnterProtectedView_VanishedUserClearsSession(t *testing.T) {
	store := &memStore{token: "tok-1"}
	c := &stubClient{currentErr: &api.APIError{StatusCode: http.StatusNotFound, Message: "User not found"}}
	g := newGuard(t, c, store)

	_, err := g.EnterProtectedView(context.Background(), nil)
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, store.token)
}

func TestEnterProtectedView_TransportFailureKeepsSession(t *testing.T) {
	store := &memStore{token: "tok-1", snap: &session.Snapshot{ID: "u-1"}}
	c := &stubClient{currentErr: errors.New("connection refused")}
	g := newGuard(t, c, store)

	_, err := g.EnterProtectedView(context.Background(), nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSessionExpired)

	assert.Equal(t, "tok-1", store.token)
	require.NotNil(t, store.snap)
}

func TestEnterProtectedView_DropsResponseAfterLogout(t *testing.T) {
	store := &memStore{token: "tok-1"}
	c := &stubClient{currentRes: annUser()}
	c.currentHook = func() {
		// the user logs out while the confirmation request is in flight
		_ = store.Clear(context.Background())
	}
	g := newGuard(t, c, store)

	_, err := g.EnterProtectedView(context.Background(), nil)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, store.token, "logged-out store must not be repopulated")
	assert.Zero(t, store.saves)
}

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := &memStore{token: "tok-1", snap: &session.Snapshot{ID: "u-1"}}
	g := newGuard(t, &stubClient{}, store)

	require.NoError(t, g.Logout(ctx))
	assert.Empty(t, store.token)
	assert.Nil(t, store.snap)
	assert.Equal(t, StateAnonymous, g.State())

	require.NoError(t, g.Logout(ctx), "logging out twice is not an error")
}
