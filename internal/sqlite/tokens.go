package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lmoran/feedreg/internal/feedreg"
)

func (r Repo) InsertToken(ctx context.Context, tok feedreg.Token) error {
	const q = `INSERT INTO tokens (key, user_id) VALUES (:key, :user_id);`

	if _, err := r.db.NamedExecContext(ctx, q, tok); err != nil {
		return fmt.Errorf("error inserting token: %s", err)
	}

	return nil
}

func (r Repo) TokenForUser(ctx context.Context, userID string) (feedreg.Token, error) {
	const q = `SELECT * FROM tokens WHERE user_id = ?;`

	var tok feedreg.Token
	err := r.db.GetContext(ctx, &tok, q, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return feedreg.Token{}, feedreg.ErrNotFound
	}
	if err != nil {
		return feedreg.Token{}, fmt.Errorf("error fetching token: %s", err)
	}

	return tok, nil
}

func (r Repo) UserIDForToken(ctx context.Context, key string) (string, error) {
	const q = `SELECT user_id FROM tokens WHERE key = ?;`

	var userID string
	err := r.db.GetContext(ctx, &userID, q, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", feedreg.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error fetching token: %s", err)
	}

	return userID, nil
}
