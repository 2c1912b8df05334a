package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LogGraphChanges subscribes to both graph topics and logs each change until
// ctx is done. It is the in-process consumer used when kafka is not configured.
func LogGraphChanges(ctx context.Context, logger *slog.Logger, subscriber message.Subscriber) error {
	for _, topic := range []string{TopicEntitiesCreated, TopicRelationsCreated} {
		messages, err := subscriber.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}

		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				var change GraphChange
				if err := json.Unmarshal(msg.Payload, &change); err != nil {
					logger.Warn("Dropping malformed graph change",
						"topic", topic,
						"message_uuid", msg.UUID,
						"error", err,
					)
				} else {
					logger.Info("Graph changed",
						"topic", topic,
						"kind", change.Kind,
						"count", change.Count,
						"keys", change.Keys,
					)
				}
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}
