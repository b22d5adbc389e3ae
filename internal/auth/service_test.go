package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(NewMemoryStore(), "test-secret", time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService(NewMemoryStore(), "", time.Hour)
	assert.Error(t, err)
}

func TestSignup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// The token carries the account email
	decoded, err := svc.tokens.Decode(token)
	require.NoError(t, err)
	email, ok := decoded.Get("email")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "also-alice", "alice@example.com", "other-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "", "hunter22")
	assert.Error(t, err)

	_, err = svc.Signup(ctx, "alice", "alice@example.com", "")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordsAreHashed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	user, err := svc.users.GetUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}
