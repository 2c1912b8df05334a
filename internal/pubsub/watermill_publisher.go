package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// watermillPublisher implements the Publisher interface on any watermill publisher
type watermillPublisher struct {
	logger    *slog.Logger
	publisher message.Publisher
}

// NewKafkaWatermillPublisher publishes to the given kafka brokers
func NewKafkaWatermillPublisher(logger *slog.Logger, brokers []string) (*watermillPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return nil, err
	}
	return newWatermillPublisher(logger, publisher), nil
}

// NewGoChannelWatermillPublisher publishes to in-process subscribers only. It is
// used when no kafka brokers are configured.
func NewGoChannelWatermillPublisher(logger *slog.Logger) (*watermillPublisher, *gochannel.GoChannel) {
	channel := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	return newWatermillPublisher(logger, channel), channel
}

func newWatermillPublisher(logger *slog.Logger, publisher message.Publisher) *watermillPublisher {
	return &watermillPublisher{
		logger:    logger,
		publisher: publisher,
	}
}

func (p *watermillPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	watermillMsg := message.NewMessage(watermill.NewUUID(), msg)
	watermillMsg.SetContext(ctx)
	p.logger.Debug("Publishing message", "topic", topic, "message_uuid", watermillMsg.UUID)
	return p.publisher.Publish(topic, watermillMsg)
}

func (p *watermillPublisher) Close(_ context.Context) error {
	return p.publisher.Close()
}
