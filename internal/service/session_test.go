package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/domain"
)

func TestSignupStoresHashAndSignsIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.sessions.Signup(ctx, "  Wes@Example.com ", "wes", "Wes")
	require.NoError(t, err)
	assert.Equal(t, "wes@example.com", sess.Account.Email)
	assert.NotEqual(t, "wes", sess.Account.PasswordHash)
	assert.True(t, env.sessions.Hasher.Verify("wes", sess.Account.PasswordHash))
	assert.Equal(t, []domain.Permission{domain.PermissionUser}, []domain.Permission(sess.Account.Permissions))
	assert.NotEmpty(t, sess.Token)

	in, err := env.sessions.Signin(ctx, "WES@example.com", "wes")
	require.NoError(t, err)
	assert.Equal(t, sess.Account.ID, in.Account.ID)

	_, err = env.sessions.Signin(ctx, "wes@example.com", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = env.sessions.Signin(ctx, "nobody@example.com", "wes")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSignupRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.sessions.Signup(ctx, "", "wes", "Wes")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.sessions.Signup(ctx, "wes@example.com", "", "Wes")
	assert.ErrorIs(t, err, domain.ErrValidation)

	env.signup(t, "wes@example.com")
	_, err = env.sessions.Signup(ctx, "WES@example.com", "other", "Wes")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestResolvePrincipal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, err := env.sessions.Signup(ctx, "wes@example.com", "wes", "Wes")
	require.NoError(t, err)

	acc, err := env.sessions.ResolvePrincipal(ctx, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, sess.Account.ID, acc.ID)

	for _, tok := range []string{"", "garbage", sess.Token + "x"} {
		acc, err := env.sessions.ResolvePrincipal(ctx, tok)
		require.NoError(t, err)
		assert.Nil(t, acc)
	}

	orphan, _, err := env.sessions.Tokens.Issue(uuid.New())
	require.NoError(t, err)
	acc, err = env.sessions.ResolvePrincipal(ctx, orphan)
	require.NoError(t, err)
	assert.Nil(t, acc)

	env.clock.Advance(366 * 24 * time.Hour)
	acc, err = env.sessions.ResolvePrincipal(ctx, sess.Token)
	require.NoError(t, err)
	assert.Nil(t, acc, "expired session")
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	acc, err := env.sessions.Me(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, acc)

	p := env.signup(t, "wes@example.com")
	acc, err = env.sessions.Me(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, acc.ID)

	env.sessions.Signout(ctx, p)
}
