package feedreg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// Feeds handles feed registration and per-user listings.
type Feeds struct {
	repo Repository
}

func NewFeeds(repo Repository) *Feeds {
	return &Feeds{repo: repo}
}

// AddFeed finds the feed with the exact url or creates it, then writes
// the caller's title and records the caller as a follower.
//
// The url is matched verbatim: no case folding, no trailing-slash or
// scheme normalization. The title write happens on reuse too, so the
// most recent caller's title is what every follower sees.
func (f *Feeds) AddFeed(ctx context.Context, userID, url, title string) (Feed, error) {
	var feed Feed

	// Two writers racing to create the same url: the loser hits the
	// unique index and comes around again to find the winner's row.
	b := retry.WithMaxRetries(3, retry.NewConstant(10*time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		got, err := f.repo.FeedByURL(ctx, url)
		if errors.Is(err, ErrNotFound) {
			got, err = f.repo.InsertFeed(ctx, url)
			if errors.Is(err, ErrConflict) {
				return retry.RetryableError(err)
			}
		}
		if err != nil {
			return err
		}

		feed = got
		return nil
	})
	if err != nil {
		return Feed{}, fmt.Errorf("error finding or creating feed: %w", err)
	}

	if err := f.repo.SetFeedTitle(ctx, feed.ID, title); err != nil {
		return Feed{}, err
	}

	// Idempotent: re-adding a feed the user already follows is a no-op.
	if err := f.repo.AddFollower(ctx, feed.ID, userID); err != nil {
		return Feed{}, err
	}

	return f.repo.Feed(ctx, feed.ID)
}

// ListFeeds returns every feed the user follows, ordered by title
// ascending. A user following nothing gets an empty slice.
func (f *Feeds) ListFeeds(ctx context.Context, userID string) ([]Feed, error) {
	return f.repo.FeedsForUser(ctx, userID)
}
