package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/lmoran/feedreg/internal/feedreg"
)

const userNamespace = "-usr"

func (r Repo) CreateUser(ctx context.Context, username, passwordHash string) (feedreg.User, error) {
	const q = `INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?);`

	id := uuid.NewString() + userNamespace
	_, err := r.db.ExecContext(ctx, q, id, username, passwordHash)
	if sqliteErr := (&sqlite.Error{}); errors.As(err, &sqliteErr) && sqliteErr.Code() == 2067 {
		return feedreg.User{}, fmt.Errorf("username already taken: %w", feedreg.ErrConflict)
	}
	if err != nil {
		return feedreg.User{}, fmt.Errorf("error inserting user: %s", err)
	}

	return r.user(ctx, id)
}

func (r Repo) user(ctx context.Context, id string) (feedreg.User, error) {
	const q = `SELECT * FROM users WHERE id = ?;`

	var usr feedreg.User
	err := r.db.GetContext(ctx, &usr, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return feedreg.User{}, feedreg.ErrNotFound
	}
	if err != nil {
		return feedreg.User{}, fmt.Errorf("error fetching user: %s", err)
	}

	return usr, nil
}

func (r Repo) UserByUsername(ctx context.Context, username string) (feedreg.User, error) {
	const q = `SELECT * FROM users WHERE username = ?;`

	var usr feedreg.User
	err := r.db.GetContext(ctx, &usr, q, username)
	if errors.Is(err, sql.ErrNoRows) {
		return feedreg.User{}, feedreg.ErrNotFound
	}
	if err != nil {
		return feedreg.User{}, fmt.Errorf("error fetching user: %s", err)
	}

	return usr, nil
}
