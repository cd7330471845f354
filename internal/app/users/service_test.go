package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunecrate/internal/apperr"
	"tunecrate/internal/auth"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

type fakeStore struct {
	users map[string]*models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*models.User)}
}

func (f *fakeStore) CreateUser(_ context.Context, username, _ string) (*models.User, error) {
	if _, ok := f.users[username]; ok {
		return nil, store.ErrUserExists
	}
	user := &models.User{ID: int64(len(f.users) + 1), Username: username}
	f.users[username] = user
	return user, nil
}

func (f *fakeStore) AuthenticateUser(_ context.Context, username, password string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok || password != "correct horse" {
		return nil, store.ErrInvalidCredentials
	}
	return user, nil
}

type fakeIssuer struct {
	issued auth.Identity
}

func (f *fakeIssuer) Issue(id auth.Identity) (string, error) {
	f.issued = id
	return "signed-token", nil
}

func TestSignupValidation(t *testing.T) {
	svc := New(newFakeStore(), &fakeIssuer{})
	ctx := context.Background()

	_, err := svc.Signup(ctx, "  ", "long enough password")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Signup(ctx, "alice", "short")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc := New(newFakeStore(), &fakeIssuer{})
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "correct horse")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "alice", "correct horse")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginIssuesToken(t *testing.T) {
	fs := newFakeStore()
	issuer := &fakeIssuer{}
	svc := New(fs, issuer)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "correct horse")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, user.ID, issuer.issued.UserID)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
}
