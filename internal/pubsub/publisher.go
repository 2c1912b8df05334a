package pubsub

import "context"

// Publisher sends graph change notifications to whoever listens on a topic
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=publisher.go -destination=../../mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// Publish publishes a message to a topic
	Publish(ctx context.Context, topic string, message []byte) error

	// Close flushes and closes the publisher
	Close(ctx context.Context) error
}
