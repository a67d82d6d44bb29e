// Package feedreg holds the domain model for the feed registration
// service: users, their bearer tokens, and the feeds they follow.
package feedreg

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConflict = errors.New("resource already exists")
	ErrNotFound = errors.New("resource not found")

	// ErrBadCredentials covers both an unknown username and a wrong
	// password so a caller can't probe for which usernames exist.
	ErrBadCredentials = errors.New("unable to authenticate with provided credentials")
)

type (
	// User is a registered account. The password is only ever held as
	// a bcrypt hash.
	User struct {
		ID           string    `db:"id"`
		Username     string    `db:"username"`
		PasswordHash string    `db:"password_hash"`
		CreatedAt    time.Time `db:"created_at"`
		UpdatedAt    time.Time `db:"updated_at"`
	}

	// Token is the opaque bearer credential for a user, minted once at
	// registration and reused for every login after that.
	Token struct {
		Key       string    `db:"key"`
		UserID    string    `db:"user_id"`
		CreatedAt time.Time `db:"created_at"`
	}

	// Feed represents a subscribable RSS feed url. The url is the
	// identifying key; there is at most one row per distinct url.
	//
	// Title is nullable because a feed row exists before its title is
	// assigned.
	Feed struct {
		ID        string    `db:"id"`
		Title     *string   `db:"title"`
		URL       string    `db:"url"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}

	// Repository is the persistence surface the services run on.
	Repository interface {
		CreateUser(ctx context.Context, username, passwordHash string) (User, error)
		UserByUsername(ctx context.Context, username string) (User, error)

		InsertToken(ctx context.Context, tok Token) error
		TokenForUser(ctx context.Context, userID string) (Token, error)
		UserIDForToken(ctx context.Context, key string) (string, error)

		Feed(ctx context.Context, id string) (Feed, error)
		FeedByURL(ctx context.Context, url string) (Feed, error)
		InsertFeed(ctx context.Context, url string) (Feed, error)
		SetFeedTitle(ctx context.Context, id string, title string) error
		AddFollower(ctx context.Context, feedID, userID string) error
		FeedsForUser(ctx context.Context, userID string) ([]Feed, error)
	}
)
