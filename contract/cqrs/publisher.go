package cqrs

import "context"

//go:generate go run go.uber.org/mock/mockgen -destination=../../mocks/mock_publisher.go -package=mocks github.com/next-trace/scg-mediator/contract/cqrs NotificationPublisher

// Topical is implemented by notifications that name the broker topic they are relayed to.
type Topical interface {
	Topic() string
}

// PublishOptions controls how a relayed notification is published.
type PublishOptions struct {
	Topic   string
	Key     string
	Headers map[string]string
}

// NotificationPublisher abstracts publishing a notification payload to a broker.
// Library users provide an implementation that maps to Kafka/NATS/RabbitMQ etc.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, n Message, opts PublishOptions) error
}
