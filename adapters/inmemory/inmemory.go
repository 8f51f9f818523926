package inmemory

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	"github.com/next-trace/scg-mediator/relay"
)

// Published is one recorded notification.
type Published struct {
	Topic        string
	Key          string
	Headers      map[string]string
	Notification cqrs.Message
}

// Adapter is a thread-safe in-memory cqrs.NotificationPublisher.
// It records published notifications for testing and examples.
type Adapter struct {
	mu        sync.Mutex
	published []Published
}

var _ cqrs.NotificationPublisher = (*Adapter)(nil)

// New creates a new in-memory adapter instance.
func New() *Adapter { return &Adapter{} }

func (a *Adapter) PublishNotification(ctx context.Context, n cqrs.Message, opts cqrs.PublishOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := Published{
		Topic:        relay.Topic(n, opts.Topic),
		Key:          opts.Key,
		Headers:      make(map[string]string, len(opts.Headers)),
		Notification: n,
	}
	for k, v := range opts.Headers {
		p.Headers[k] = v
	}

	a.mu.Lock()
	a.published = append(a.published, p)
	a.mu.Unlock()

	return nil
}

// Published returns a copy of everything published so far, in order.
func (a *Adapter) Published() []Published {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]Published(nil), a.published...)
}

// Topic returns the notifications published to topic, in order.
func (a *Adapter) Topic(topic string) []Published {
	return lo.Filter(a.Published(), func(p Published, _ int) bool { return p.Topic == topic })
}

// Reset discards the recorded notifications.
func (a *Adapter) Reset() {
	a.mu.Lock()
	a.published = nil
	a.mu.Unlock()
}
