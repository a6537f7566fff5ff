package digest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/rss-digest/app/subscriptions"
	"github.com/samber/lo"
)

// SyncStore makes the set of feeds tracked by store equal to the feeds in
// list and returns the URLs it added and removed.
func SyncStore(ctx context.Context, store FeedSyncer, list *subscriptions.List) ([]string, []string, error) {
	stored, err := store.ListFeeds(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list stored feeds: %w", err)
	}

	toAdd, toRemove := lo.Difference(list.URLs(), stored)

	for _, url := range toAdd {
		if _, err := store.AddFeed(ctx, url); err != nil {
			return nil, nil, fmt.Errorf("failed to add feed %s to store: %w", url, err)
		}
	}

	for _, url := range toRemove {
		if _, err := store.RemoveFeed(ctx, url); err != nil {
			return nil, nil, fmt.Errorf("failed to remove feed %s from store: %w", url, err)
		}
	}

	if len(toAdd) > 0 || len(toRemove) > 0 {
		slog.Debug("Entry store synced with subscriptions", "added", len(toAdd), "removed", len(toRemove))
	}

	return toAdd, toRemove, nil
}
