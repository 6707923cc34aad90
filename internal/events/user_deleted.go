// Package events consumes user and course lifecycle events published by the
// host on Redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

// UserDeleted is published by the host once a user account is removed.
type UserDeleted struct {
	UserID uuid.UUID `json:"user_id"`
}

type favoritesPurger interface {
	DeleteUserFavorites(ctx context.Context, userID uuid.UUID) error
}

type UserDeletedConsumer struct {
	log     logger.Log
	client  *redis.Client
	channel string
	purger  favoritesPurger
}

func NewUserDeletedConsumer(log logger.Log, client *redis.Client, channel string, purger favoritesPurger) *UserDeletedConsumer {
	return &UserDeletedConsumer{log: log, client: client, channel: channel, purger: purger}
}

// Run handles user_deleted messages until ctx is done or the subscription
// is closed.
func (c *UserDeletedConsumer) Run(ctx context.Context) error {
	return listen(ctx, c.log, c.client, c.channel, c.handle)
}

func (c *UserDeletedConsumer) handle(ctx context.Context, payload string) error {
	var event UserDeleted
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return fmt.Errorf("decode user_deleted event: %w", err)
	}
	if event.UserID == uuid.Nil {
		return fmt.Errorf("user_deleted event without user_id")
	}
	return c.purger.DeleteUserFavorites(ctx, event.UserID)
}

// PublishUserDeleted announces a removed user on channel.
func PublishUserDeleted(ctx context.Context, client *redis.Client, channel string, userID uuid.UUID) error {
	data, err := json.Marshal(UserDeleted{UserID: userID})
	if err != nil {
		return err
	}
	return client.Publish(ctx, channel, data).Err()
}
