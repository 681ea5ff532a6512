package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vibhav-y/GitTool/internal/auth"
	"github.com/Vibhav-y/GitTool/internal/repository"
)

type stubExchanger struct {
	code string
}

func (s *stubExchanger) ExchangeCode(_ context.Context, code string) (string, error) {
	s.code = code
	return "gho_exchanged", nil
}

func newAuthFixture() (*memStore, *auth.Sessions, *AuthService) {
	store := newMemStore()
	tokens := newTokenService(store)
	sessions := auth.NewSessions("test-secret", time.Hour)
	return store, sessions, NewAuthService(store, tokens, sessions, &stubExchanger{}, discardLogger())
}

func TestSignUp_IssuesSessionAndGrant(t *testing.T) {
	store, sessions, svc := newAuthFixture()

	sess, err := svc.SignUp(context.Background(), "  Dev@Example.com ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", sess.User.Email)
	assert.NotEmpty(t, sess.AccessToken)

	claims, err := sessions.Validate(sess.AccessToken)
	require.NoError(t, err)
	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, uid)

	assert.Equal(t, int64(40), store.balance(sess.User.ID))
}

func TestSignUp_Validation(t *testing.T) {
	_, _, svc := newAuthFixture()
	tests := []struct {
		email, password, msg string
	}{
		{"", "secret1", "Email and password required"},
		{"not-an-email", "secret1", "Invalid email address"},
		{"a@b.io", "123", "Password must be at least 6 characters"},
	}
	for _, tc := range tests {
		var verr *ValidationError
		_, err := svc.SignUp(context.Background(), tc.email, tc.password)
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, tc.msg, verr.Msg)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	_, _, svc := newAuthFixture()

	_, err := svc.SignUp(context.Background(), "dev@example.com", "hunter22")
	require.NoError(t, err)
	_, err = svc.SignUp(context.Background(), "DEV@example.com", "other-pass")
	require.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestLogIn(t *testing.T) {
	_, _, svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "dev@example.com", "hunter22")
	require.NoError(t, err)

	sess, err := svc.LogIn(ctx, "dev@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)

	_, err = svc.LogIn(ctx, "dev@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LogIn(ctx, "nobody@example.com", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMeAndDeleteAccount(t *testing.T) {
	_, _, svc := newAuthFixture()
	ctx := context.Background()

	sess, err := svc.SignUp(ctx, "dev@example.com", "hunter22")
	require.NoError(t, err)

	profile, err := svc.Me(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", profile.Email)
	assert.Equal(t, int64(40), profile.Balance)

	require.NoError(t, svc.DeleteAccount(ctx, sess.User.ID))
	_, err = svc.Me(ctx, sess.User.ID)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
	require.ErrorIs(t, svc.DeleteAccount(ctx, sess.User.ID), repository.ErrUserNotFound)
}

func TestExchangeGitHubCode(t *testing.T) {
	_, _, svc := newAuthFixture()

	token, err := svc.ExchangeGitHubCode(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "gho_exchanged", token)

	var verr *ValidationError
	_, err = svc.ExchangeGitHubCode(context.Background(), "")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "No code provided", verr.Msg)
}
