package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/next-trace/scg-mediator/adapters/rabbitmq"
	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/mocks"
)

type orderPlaced struct {
	cqrs.NotificationBase
	OrderID string
}

func (orderPlaced) Topic() string { return "orders.placed" }

func TestRabbitMQ_PublishNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockAMQPPublisher(ctrl)
	ad := &rabbitmq.Adapter{Publisher: pub, Exchange: rabbitmq.NotificationExchange}

	n := orderPlaced{NotificationBase: cqrs.NewNotification(), OrderID: "7"}
	caller := map[string]string{"ph": "pv"}

	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m rabbitmq.PubMsg) error {
		assert.Equal(t, "notifications", m.Exchange)
		assert.Equal(t, "orders.placed", m.RoutingKey)
		assert.Equal(t, "pv", m.Headers["ph"])
		assert.Equal(t, "rk", m.Headers[rabbitmq.HeaderKey])

		var got orderPlaced
		require.NoError(t, json.Unmarshal(m.Body, &got))
		assert.Equal(t, n, got)

		m.Headers["ph"] = "mutated"

		return nil
	})

	require.NoError(t, ad.PublishNotification(t.Context(), n,
		cqrs.PublishOptions{Key: "rk", Headers: caller}))
	assert.Equal(t, "pv", caller["ph"])
}

func TestRabbitMQ_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockAMQPPublisher(ctrl)
	ad := rabbitmq.New(pub)
	n := orderPlaced{NotificationBase: cqrs.NewNotification()}

	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("closed"))
	require.ErrorIs(t, ad.PublishNotification(t.Context(), n, cqrs.PublishOptions{}), berr.ErrPublishFailed)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, ad.PublishNotification(ctx, n, cqrs.PublishOptions{}), context.Canceled)

	require.ErrorIs(t, rabbitmq.New(nil).PublishNotification(t.Context(), n, cqrs.PublishOptions{}), berr.ErrPublishFailed)
}

func TestNewWithAMQPConn_EmptyURL(t *testing.T) {
	_, _, err := rabbitmq.NewWithAMQPConn(rabbitmq.Config{})
	require.ErrorIs(t, err, berr.ErrPublishFailed)
}
