//go:generate go run go.uber.org/mock/mockgen -source=nats.go -destination=../../mocks/mock_nats_client.go -package=mocks -mock_names=Client=MockNATSClient

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/relay"
)

// HeaderKey carries the message key, since NATS subjects have no key of their own.
const HeaderKey = "key"

// Client is a minimal NATS-like publisher interface decoupled from any concrete library.
// Users can provide a wrapper around their NATS connection to satisfy this.
type Client interface {
	// Publish publishes a message to a subject with optional headers.
	Publish(ctx context.Context, subject string, data []byte, headers map[string]string) error
}

// Adapter publishes relayed notifications using an injected NATS-like Client.
type Adapter struct {
	Client Client
}

var _ cqrs.NotificationPublisher = (*Adapter)(nil)

// New creates a new NATS adapter instance with the provided client.
func New(c Client) *Adapter { return &Adapter{Client: c} }

// PublishNotification publishes n as JSON to the subject named by opts.Topic.
func (a *Adapter) PublishNotification(ctx context.Context, n cqrs.Message, opts cqrs.PublishOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if a.Client == nil {
		return fmt.Errorf("nats publish: no client: %w", berr.ErrPublishFailed)
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("nats publish serialize: %w", errors.Join(berr.ErrSerializationFailed, err))
	}

	subject := relay.Topic(n, opts.Topic)

	if err := a.Client.Publish(ctx, subject, body, publishHeaders(opts)); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("nats publish to %q: %w", subject, errors.Join(berr.ErrPublishFailed, err))
	}

	return nil
}

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
