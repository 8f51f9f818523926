//go:generate go run go.uber.org/mock/mockgen -source=kafka.go -destination=../../mocks/mock_kafka_writer.go -package=mocks -mock_names=Writer=MockKafkaWriter

package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/relay"
)

// Writer is a minimal Kafka-like writer interface.
// Users can adapt segmentio/kafka-go or any other client to this.
type Writer interface {
	Write(ctx context.Context, topic string, key, value []byte, headers map[string]string) error
}

// Adapter publishes relayed notifications using an injected Writer.
type Adapter struct {
	Writer Writer
}

var _ cqrs.NotificationPublisher = (*Adapter)(nil)

// New creates a new Kafka adapter instance with the provided writer.
func New(w Writer) *Adapter { return &Adapter{Writer: w} }

// PublishNotification writes n as a JSON record keyed by opts.Key to the topic named by opts.Topic.
func (a *Adapter) PublishNotification(ctx context.Context, n cqrs.Message, opts cqrs.PublishOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if a.Writer == nil {
		return fmt.Errorf("kafka publish: no writer: %w", berr.ErrPublishFailed)
	}

	val, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("kafka publish serialize: %w", errors.Join(berr.ErrSerializationFailed, err))
	}

	topic := relay.Topic(n, opts.Topic)

	var key []byte
	if opts.Key != "" {
		key = []byte(opts.Key)
	}

	if err = a.Writer.Write(ctx, topic, key, val, copyHeaders(opts.Headers)); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("kafka publish to %q: %w", topic, errors.Join(berr.ErrPublishFailed, err))
	}

	return nil
}

func copyHeaders(in map[string]string) map[string]string {
	h := make(map[string]string, len(in))
	for k, v := range in {
		h[k] = v
	}

	return h
}
