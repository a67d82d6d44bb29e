package feedreg_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/lmoran/feedreg/internal/feedreg"
	"github.com/lmoran/feedreg/internal/migrations"
	"github.com/lmoran/feedreg/internal/sqlite"
)

func newTestRepo(t *testing.T) sqlite.Repo {
	t.Helper()

	dbx, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection so every statement sees the same in-memory db.
	dbx.SetMaxOpenConns(1)
	t.Cleanup(func() { dbx.Close() })

	require.NoError(t, migrations.Run(dbx))

	return sqlite.New(dbx)
}

func TestRegisterThenLogin_ReturnsSameToken(t *testing.T) {
	var (
		ctx      = context.Background()
		repo     = newTestRepo(t)
		accounts = feedreg.NewAccounts(repo)
	)

	tok, err := accounts.Register(ctx, "alice", "myTe$tPw#")
	require.NoError(t, err)
	assert.Regexp(t, "^[0-9a-f]{40}$", tok.Key)

	gotTok, usr, err := accounts.Login(ctx, "alice", "myTe$tPw#")
	require.NoError(t, err)
	assert.Equal(t, tok.Key, gotTok.Key, "login must return the token minted at registration")
	assert.Equal(t, "alice", usr.Username)
	assert.Equal(t, tok.UserID, usr.ID)

	// A second login still finds the same token.
	again, _, err := accounts.Login(ctx, "alice", "myTe$tPw#")
	require.NoError(t, err)
	assert.Equal(t, tok.Key, again.Key)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	var (
		ctx      = context.Background()
		repo     = newTestRepo(t)
		accounts = feedreg.NewAccounts(repo)
	)

	tok, err := accounts.Register(ctx, "bob", "first-pw")
	require.NoError(t, err)

	_, err = accounts.Register(ctx, "bob", "second-pw")
	require.ErrorIs(t, err, feedreg.ErrConflict)

	// The original account is untouched.
	gotTok, _, err := accounts.Login(ctx, "bob", "first-pw")
	require.NoError(t, err)
	assert.Equal(t, tok.Key, gotTok.Key)
}

func TestLogin_BadCredentials(t *testing.T) {
	var (
		ctx      = context.Background()
		repo     = newTestRepo(t)
		accounts = feedreg.NewAccounts(repo)
	)

	_, err := accounts.Register(ctx, "carol", "right-pw")
	require.NoError(t, err)

	// Wrong password and unknown username look identical to the caller.
	_, _, err = accounts.Login(ctx, "carol", "wrong-pw")
	assert.ErrorIs(t, err, feedreg.ErrBadCredentials)

	_, _, err = accounts.Login(ctx, "nobody", "right-pw")
	assert.ErrorIs(t, err, feedreg.ErrBadCredentials)
}

func TestPasswordStoredHashed(t *testing.T) {
	var (
		ctx      = context.Background()
		repo     = newTestRepo(t)
		accounts = feedreg.NewAccounts(repo)
	)

	_, err := accounts.Register(ctx, "dave", "plaintext-pw")
	require.NoError(t, err)

	usr, err := repo.UserByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.NotContains(t, usr.PasswordHash, "plaintext-pw")
}
