package rabbitmq

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	berr "github.com/next-trace/scg-mediator/contract/errors"
)

// Concrete AMQP connection-backed constructor and publisher wrapper with auto-reconnect.

const (
	// NotificationExchange is the topic exchange declared by NewWithAMQPConn.
	NotificationExchange = "notifications"
	exchangeKind         = "topic"
	maxBackoff           = 30 * time.Second
)

type Config struct {
	URL         string
	ConnTimeout time.Duration
}

type reconnectingPublisher struct {
	cfg Config

	mu sync.RWMutex
	ch *amqp.Channel
	// ready is closed while ch is usable and replaced on disconnect
	ready chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

func newReconnectingPublisher(cfg Config) *reconnectingPublisher {
	rp := &reconnectingPublisher{
		cfg:    cfg,
		ready:  make(chan struct{}),
		closed: make(chan struct{}),
	}

	go rp.run()

	return rp
}

func (rp *reconnectingPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	for {
		rp.mu.RLock()
		ch, ready := rp.ch, rp.ready
		rp.mu.RUnlock()

		if ch != nil {
			return ch, nil
		}

		select {
		case <-ready:
		case <-rp.closed:
			return nil, fmt.Errorf("%w: rabbitmq publisher closed", berr.ErrPublishFailed)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (rp *reconnectingPublisher) Publish(ctx context.Context, m PubMsg) error {
	ch, err := rp.channel(ctx)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, m.Exchange, m.RoutingKey, false, false, publishing(m, amqp.Persistent))
}

func (rp *reconnectingPublisher) dial() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(rp.cfg.URL, amqp.Config{
		Locale:     "en_US",
		Properties: amqp.Table{"product": "scg-mediator"},
		Dial:       amqp.DefaultDial(rp.cfg.ConnTimeout),
	})
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, nil, err
	}

	if err := ch.ExchangeDeclare(NotificationExchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, nil, err
	}

	return conn, ch, nil
}

func (rp *reconnectingPublisher) run() {
	backoff := time.Second

	for {
		conn, ch, err := rp.dial()
		if err != nil {
			// exponential backoff with jitter
			sleep := min(backoff+rand.N(backoff/2), maxBackoff) //nolint:gosec // non-crypto RNG is acceptable for backoff jitter

			t := time.NewTimer(sleep)
			select {
			case <-rp.closed:
				t.Stop()

				return
			case <-t.C:
			}

			backoff = min(backoff*2, maxBackoff)

			continue
		}

		backoff = time.Second

		connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
		chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))

		rp.mu.Lock()
		rp.ch = ch
		close(rp.ready)
		rp.mu.Unlock()

		stop := awaitClose(rp.closed, connClosed, chClosed)

		if !stop {
			rp.mu.Lock()
			rp.ch = nil
			rp.ready = make(chan struct{})
			rp.mu.Unlock()
		}

		_ = ch.Close()
		_ = conn.Close()

		if stop {
			return
		}
	}
}

// awaitClose blocks until the publisher is closed or the broker closes either the
// connection or the channel. It reports whether the publisher itself was closed.
func awaitClose(closed <-chan struct{}, connClosed, chClosed <-chan *amqp.Error) bool {
	select {
	case <-closed:
		return true
	case <-connClosed:
	case <-chClosed:
	}

	return false
}

func (rp *reconnectingPublisher) close() {
	rp.closeOnce.Do(func() { close(rp.closed) })
}

// NewWithAMQPConn dials RabbitMQ with auto-reconnect, declares NotificationExchange
// and returns an Adapter publishing to it together with a cleanup.
func NewWithAMQPConn(cfg Config) (*Adapter, func(), error) {
	if cfg.URL == "" {
		return nil, nil, fmt.Errorf("%w: rabbitmq url required", berr.ErrPublishFailed)
	}

	pub := newReconnectingPublisher(cfg)

	return &Adapter{Publisher: pub, Exchange: NotificationExchange}, pub.close, nil
}
