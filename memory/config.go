package memory

import (
	"fmt"
	"log/slog"

	"github.com/next-trace/scg-mediator/adapters/inmemory"
	"github.com/next-trace/scg-mediator/adapters/kafka"
	"github.com/next-trace/scg-mediator/adapters/nats"
	"github.com/next-trace/scg-mediator/adapters/rabbitmq"
	"github.com/next-trace/scg-mediator/config"
	"github.com/next-trace/scg-mediator/contract/cqrs"
	"github.com/next-trace/scg-mediator/mediator"
)

// Behaviors returns the behaviors enabled by cfg, outermost first: tracing, logging, validation.
func Behaviors(cfg config.Mediator, log *slog.Logger) []mediator.Behavior {
	var bs []mediator.Behavior

	if cfg.Tracing {
		bs = append(bs, mediator.Tracing(nil))
	}

	if cfg.DecorateLogging {
		bs = append(bs, mediator.Logging(log))
	}

	if cfg.Validation {
		bs = append(bs, mediator.Validation(nil))
	}

	return bs
}

// FromConfig is like New but applies the behaviors enabled by cfg.
func FromConfig(cfg config.Mediator, log *slog.Logger, handlers ...mediator.Handler) (*mediator.Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := mediator.NewRegistry(log)

	if err := mediator.Setup(r, handlers, mediator.WithBehaviors(Behaviors(cfg, log)...)); err != nil {
		return nil, err
	}

	return mediator.NewSender(r, log), nil
}

// Publisher builds the relay publisher selected by cfg.Relay together with its cleanup.
// RelayNone yields a nil publisher.
func Publisher(cfg config.Mediator) (cqrs.NotificationPublisher, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Relay {
	case config.RelayInMemory:
		return inmemory.New(), func() {}, nil
	case config.RelayNATS:
		return publisher(nats.NewWithNATS(nats.Config{
			URL:           cfg.NATS.URL,
			Name:          cfg.NATS.Name,
			ConnTimeout:   cfg.NATS.ConnTimeout,
			MaxReconnects: cfg.NATS.MaxReconnects,
		}))
	case config.RelayKafka:
		return publisher(kafka.NewWithKgo(kafka.Config{Brokers: cfg.Kafka.Brokers, ClientID: cfg.Kafka.ClientID}))
	case config.RelayRabbitMQ:
		return publisher(rabbitmq.NewWithAMQPConn(rabbitmq.Config{
			URL:         cfg.RabbitMQ.URL,
			ConnTimeout: cfg.RabbitMQ.ConnTimeout,
		}))
	case config.RelayNone, "":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("memory: unknown relay %q", cfg.Relay)
	}
}

// publisher avoids returning a typed nil adapter inside a non-nil interface.
func publisher[P cqrs.NotificationPublisher](p P, cleanup func(), err error) (cqrs.NotificationPublisher, func(), error) {
	if err != nil {
		return nil, nil, err
	}

	return p, cleanup, nil
}
