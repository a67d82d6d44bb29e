package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/lmoran/feedreg/internal/feedreg"
)

const (
	feedNamespace     = "-fd"
	followerNamespace = "-flw"
)

func (r Repo) Feed(ctx context.Context, id string) (feedreg.Feed, error) {
	const q = `SELECT * FROM feeds WHERE id = ?;`

	var feed feedreg.Feed
	err := r.db.GetContext(ctx, &feed, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return feedreg.Feed{}, feedreg.ErrNotFound
	}
	if err != nil {
		return feedreg.Feed{}, fmt.Errorf("error fetching feed: %s", err)
	}

	return feed, nil
}

func (r Repo) FeedByURL(ctx context.Context, url string) (feedreg.Feed, error) {
	const q = `SELECT * FROM feeds WHERE url = ?;`

	var feed feedreg.Feed
	err := r.db.GetContext(ctx, &feed, q, url)
	if errors.Is(err, sql.ErrNoRows) {
		return feedreg.Feed{}, feedreg.ErrNotFound
	}
	if err != nil {
		return feedreg.Feed{}, fmt.Errorf("error fetching feed: %s", err)
	}

	return feed, nil
}

func (r Repo) InsertFeed(ctx context.Context, url string) (feedreg.Feed, error) {
	const q = `INSERT INTO feeds (id, url) VALUES (:id, :url);`

	f := feedreg.Feed{
		ID:  fmt.Sprintf("%s%s", uuid.NewString(), feedNamespace),
		URL: url,
	}
	_, err := r.db.NamedExecContext(ctx, q, f)
	if sqliteErr := (&sqlite.Error{}); errors.As(err, &sqliteErr) && sqliteErr.Code() == 2067 {
		return feedreg.Feed{}, fmt.Errorf("feed already exists: %w", feedreg.ErrConflict)
	}
	if err != nil {
		return feedreg.Feed{}, fmt.Errorf("error inserting feed: %s", err)
	}

	return r.Feed(ctx, f.ID)
}

func (r Repo) SetFeedTitle(ctx context.Context, id string, title string) error {
	const q = `UPDATE feeds SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`

	if _, err := r.db.ExecContext(ctx, q, title, id); err != nil {
		return fmt.Errorf("error updating feed title: %s", err)
	}

	return nil
}

func (r Repo) AddFollower(ctx context.Context, feedID, userID string) error {
	const q = `INSERT OR IGNORE INTO feed_followers (id, user_id, feed_id) VALUES (?, ?, ?);`

	id := fmt.Sprintf("%s%s", uuid.NewString(), followerNamespace)
	if _, err := r.db.ExecContext(ctx, q, id, userID, feedID); err != nil {
		return fmt.Errorf("error adding follower: %w", err)
	}

	return nil
}

// FeedsForUser retrieves the feeds a user follows, ordered by title
// with creation order breaking ties. created_at alone has one-second
// granularity, so rowid settles feeds created within the same second.
func (r Repo) FeedsForUser(ctx context.Context, userID string) ([]feedreg.Feed, error) {
	query, args, err := sq.Select("feeds.*").
		From("feeds").
		Join("feed_followers ON feed_followers.feed_id = feeds.id").
		Where(sq.Eq{"feed_followers.user_id": userID}).
		OrderBy("feeds.title ASC", "feeds.created_at ASC", "feeds.rowid ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error constructing sql: %s", err)
	}

	feeds := []feedreg.Feed{}
	if err := r.db.SelectContext(ctx, &feeds, query, args...); err != nil {
		return nil, fmt.Errorf("error fetching feeds: %s", err)
	}

	return feeds, nil
}
