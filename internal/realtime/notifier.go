// Package realtime streams feed events to connected clients. Events
// fan out through Redis pub/sub so every API instance sees writes made
// on any other instance.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const feedBroadcastChannel = "feed:events"

// FeedEvent is the wire envelope for one feed update.
type FeedEvent struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// Notifier publishes feed events into Redis channels. A nil Redis
// client turns every publish into a no-op so tests and single-node
// setups run without Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishFeedEvent broadcasts a domain event to all feed subscribers.
// It satisfies the service layer's event publisher contract, so errors
// are logged rather than returned; a lost event never fails a write.
func (n *Notifier) PublishFeedEvent(ctx context.Context, eventType string, payload any) {
	if n.rdb == nil {
		return
	}
	event := FeedEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
	b, err := json.Marshal(event)
	if err != nil {
		log.Printf("feed event marshal failed (%s): %v", eventType, err)
		return
	}
	if err := n.rdb.Publish(ctx, feedBroadcastChannel, string(b)).Err(); err != nil {
		log.Printf("feed event publish failed (%s): %v", eventType, err)
	}
}

// PublishUser sends a payload to a single user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// StartFeedSubscriber subscribes to the feed broadcast channel and all
// per-user channels, invoking onMessage for each incoming message. The
// subscription ends when ctx is canceled.
func (n *Notifier) StartFeedSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, feedBroadcastChannel, "feed:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in FeedSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user's feed stream.
func UserChannel(userID uint) string {
	return "feed:user:" + strconv.FormatUint(uint64(userID), 10)
}
