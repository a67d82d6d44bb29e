package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmoran/feedreg/internal/feedreg"
)

func TestCreateUser_DuplicateUsername(t *testing.T) {
	var (
		ctx  = context.Background()
		repo = newTestRepo(t)
	)

	_, err := repo.CreateUser(ctx, "taken", "hash-one")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "taken", "hash-two")
	assert.ErrorIs(t, err, feedreg.ErrConflict)
}

func TestTokens_RoundTrip(t *testing.T) {
	var (
		ctx  = context.Background()
		repo = newTestRepo(t)
	)

	usr, err := repo.CreateUser(ctx, "tokenuser", "hash")
	require.NoError(t, err)

	tok := feedreg.Token{Key: "aaaabbbbccccddddeeeeffff0000111122223333", UserID: usr.ID}
	require.NoError(t, repo.InsertToken(ctx, tok))

	got, err := repo.TokenForUser(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, tok.Key, got.Key)

	uid, err := repo.UserIDForToken(ctx, tok.Key)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, uid)
}

func TestTokens_NotFound(t *testing.T) {
	var (
		ctx  = context.Background()
		repo = newTestRepo(t)
	)

	_, err := repo.TokenForUser(ctx, "nobody-usr")
	assert.ErrorIs(t, err, feedreg.ErrNotFound)

	_, err = repo.UserIDForToken(ctx, "not-a-real-key")
	assert.ErrorIs(t, err, feedreg.ErrNotFound)
}
