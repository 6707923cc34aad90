package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zenny/moodle-theme-snap/pkg/logger"
)

type handlerFunc func(ctx context.Context, payload string) error

// listen subscribes to channel and passes every payload to handle. Handler
// errors are logged and do not stop the loop.
func listen(ctx context.Context, log logger.Log, client *redis.Client, channel string, handle handlerFunc) error {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}
	log.Info("listening for events", "channel", channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			if err := handle(ctx, msg.Payload); err != nil {
				log.ErrorErr("failed to handle event", err, "channel", channel, "payload", msg.Payload)
			}
		}
	}
}
