//go:generate go run go.uber.org/mock/mockgen -source=rabbitmq.go -destination=../../mocks/mock_rabbitmq_publisher.go -package=mocks -mock_names=Publisher=MockAMQPPublisher

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/relay"
)

// HeaderKey carries the message key alongside the routing key.
const HeaderKey = "key"

// PubMsg is one AMQP publishing.
type PubMsg struct {
	Exchange   string
	RoutingKey string
	Body       []byte
	Headers    map[string]string
}

// Publisher sends a PubMsg to a broker.
type Publisher interface {
	Publish(ctx context.Context, m PubMsg) error
}

// Adapter publishes relayed notifications to Exchange using the topic as routing key.
type Adapter struct {
	Publisher Publisher
	Exchange  string
}

var _ cqrs.NotificationPublisher = (*Adapter)(nil)

// New returns an Adapter publishing to the default exchange.
func New(p Publisher) *Adapter { return &Adapter{Publisher: p} }

// PublishNotification publishes n as JSON with routing key opts.Topic.
func (a *Adapter) PublishNotification(ctx context.Context, n cqrs.Message, opts cqrs.PublishOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if a.Publisher == nil {
		return fmt.Errorf("rabbitmq publish: no publisher: %w", berr.ErrPublishFailed)
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("rabbitmq publish serialize: %w", errors.Join(berr.ErrSerializationFailed, err))
	}

	msg := PubMsg{
		Exchange:   a.Exchange,
		RoutingKey: relay.Topic(n, opts.Topic),
		Body:       body,
		Headers:    publishHeaders(opts),
	}

	if err := a.Publisher.Publish(ctx, msg); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("rabbitmq publish to %q: %w", msg.RoutingKey, errors.Join(berr.ErrPublishFailed, err))
	}

	return nil
}

// copy headers to avoid mutating caller-provided map
func publishHeaders(o cqrs.PublishOptions) map[string]string {
	h := make(map[string]string, len(o.Headers)+1)
	for k, v := range o.Headers {
		h[k] = v
	}

	if o.Key != "" {
		h[HeaderKey] = o.Key
	}

	return h
}

func publishing(m PubMsg, mode uint8) amqp.Publishing {
	var h amqp.Table
	if len(m.Headers) > 0 {
		h = amqp.Table{}
		for k, v := range m.Headers {
			h[k] = v
		}
	}

	return amqp.Publishing{
		DeliveryMode: mode,
		Headers:      h,
		ContentType:  "application/json",
		Body:         m.Body,
	}
}

type amqpChannelPublisher struct{ ch *amqp.Channel }

func (p amqpChannelPublisher) Publish(ctx context.Context, m PubMsg) error {
	return p.ch.PublishWithContext(ctx, m.Exchange, m.RoutingKey, false, false, publishing(m, amqp.Transient))
}

// NewWithAMQPChannel returns an Adapter publishing through an existing channel to exchange.
func NewWithAMQPChannel(ch *amqp.Channel, exchange string) *Adapter {
	return &Adapter{Publisher: amqpChannelPublisher{ch: ch}, Exchange: exchange}
}
