package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	ProfileKeyPrefix   = "profile:%s"
	PostKeyPrefix      = "post:%d"
	FeedSliceKeyPrefix = "feed:limit:%d:offset:%d"
	FeedVersionKey     = "feed:version"
)

const (
	UserTTL    = 5 * time.Minute
	ProfileTTL = 5 * time.Minute
	PostTTL    = 30 * time.Minute
	FeedTTL    = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(ProfileKeyPrefix, username)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FeedSliceKey(limit, offset int) string {
	return fmt.Sprintf(FeedSliceKeyPrefix, limit, offset)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed bumps the feed version, orphaning every cached feed
// slice at once. Cheaper than scanning for feed:* keys.
func InvalidateFeed(ctx context.Context) {
	if client != nil {
		client.Incr(ctx, FeedVersionKey)
	}
}

// FeedVersion returns the current feed cache version, zero when Redis
// is unavailable.
func FeedVersion(ctx context.Context) int64 {
	if client == nil {
		return 0
	}
	v, err := client.Get(ctx, FeedVersionKey).Int64()
	if err != nil {
		return 0
	}
	return v
}

// VersionedFeedSliceKey builds a feed slice key bound to the current
// feed version so stale slices die with the version bump. The key
// carries the exact limit and offset; two requests share a cache entry
// only when they ask for the same window.
func VersionedFeedSliceKey(ctx context.Context, limit, offset int) string {
	return fmt.Sprintf("feed:v%d:limit:%d:offset:%d", FeedVersion(ctx), limit, offset)
}
