package relay

import (
	"context"
	"fmt"
	"maps"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
)

// Header names set on every relayed notification.
const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderMessageType   = "x-message-type"
)

// TopicPrefix prefixes the default topic of a notification without a Topic method.
const TopicPrefix = "notifications."

type options struct {
	topic      string
	headers    map[string]string
	propagator cqrs.HeaderPropagator
}

// Option configures a relay handler.
type Option func(*options)

// WithTopic overrides the topic for every relayed notification.
func WithTopic(topic string) Option {
	return func(o *options) { o.topic = topic }
}

// WithHeaders adds static headers to every relayed notification.
func WithHeaders(h map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(h))
		}

		maps.Copy(o.headers, h)
	}
}

// WithPropagator injects trace context into the headers of every relayed notification.
func WithPropagator(p cqrs.HeaderPropagator) Option {
	return func(o *options) { o.propagator = p }
}

type handler[N cqrs.Notification] struct {
	pub  cqrs.NotificationPublisher
	opts options
}

// Notifications returns a NotificationHandler that publishes every N it handles through pub.
//
// The topic is the WithTopic override, else the notification's Topic method, else
// TopicPrefix followed by the type name. The correlation id is used as the message key.
func Notifications[N cqrs.Notification](pub cqrs.NotificationPublisher, opts ...Option) cqrs.NotificationHandler[N] {
	h := &handler[N]{pub: pub, opts: options{propagator: cqrs.NopHeaderPropagator{}}}
	for _, f := range opts {
		f(&h.opts)
	}

	return h
}

func (h *handler[N]) Handle(ctx context.Context, n N) error {
	if h.pub == nil {
		return fmt.Errorf("relay %T: no publisher: %w", n, berr.ErrPublishFailed)
	}

	id := n.CorrelationID().String()

	headers := make(map[string]string, len(h.opts.headers)+4)
	maps.Copy(headers, h.opts.headers)
	headers[HeaderCorrelationID] = id
	headers[HeaderMessageType] = TypeName(n)

	if h.opts.propagator != nil {
		h.opts.propagator.Inject(ctx, headers)
	}

	return h.pub.PublishNotification(ctx, n, cqrs.PublishOptions{
		Topic:   Topic(n, h.opts.topic),
		Key:     id,
		Headers: headers,
	})
}

// Topic resolves the topic of n: override if set, else n.Topic() for Topical
// notifications, else TopicPrefix plus the type name.
func Topic(n cqrs.Message, override string) string {
	if override != "" {
		return override
	}

	if t, ok := n.(cqrs.Topical); ok && t.Topic() != "" {
		return t.Topic()
	}

	return TopicPrefix + TypeName(n)
}

// TypeName returns the unqualified type name of v, dereferencing pointers.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil {
		return ""
	}

	return t.Name()
}

// OTelPropagator injects the span context of ctx using an OpenTelemetry propagator.
// A zero value uses the global propagator.
type OTelPropagator struct {
	Propagator propagation.TextMapPropagator
}

var _ cqrs.HeaderPropagator = OTelPropagator{}

func (p OTelPropagator) Inject(ctx context.Context, headers map[string]string) {
	prop := p.Propagator
	if prop == nil {
		prop = otel.GetTextMapPropagator()
	}

	prop.Inject(ctx, propagation.MapCarrier(headers))
}
