package service

import "context"

// Feed event types emitted by the interaction services.
const (
	EventPostCreated    = "post_created"
	EventPostUpdated    = "post_updated"
	EventPostDeleted    = "post_deleted"
	EventLikeToggled    = "like_toggled"
	EventCommentAdded   = "comment_added"
	EventUserFollowed   = "user_followed"
	EventUserUnfollowed = "user_unfollowed"
)

// FeedEventPublisher broadcasts interaction events to feed stream
// subscribers. Implementations must be non-blocking; publishing is
// best-effort and never fails the triggering operation.
type FeedEventPublisher interface {
	PublishFeedEvent(ctx context.Context, eventType string, payload any)
}

func publish(ctx context.Context, p FeedEventPublisher, eventType string, payload any) {
	if p != nil {
		p.PublishFeedEvent(ctx, eventType, payload)
	}
}
