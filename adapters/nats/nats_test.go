package nats_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/next-trace/scg-mediator/adapters/nats"
	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/mocks"
)

type orderPlaced struct {
	cqrs.NotificationBase
	OrderID string `json:"order_id"`
}

func (orderPlaced) Topic() string { return "orders.placed" }

type orderShipped struct {
	cqrs.NotificationBase
}

type badPayload struct {
	cqrs.NotificationBase
	C chan int
}

func TestNATS_PublishNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockNATSClient(ctrl)
	ad := nats.New(client)

	n := orderPlaced{NotificationBase: cqrs.NewNotification(), OrderID: "42"}

	client.EXPECT().
		Publish(gomock.Any(), "orders.placed", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, headers map[string]string) error {
			var body map[string]any
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Equal(t, "42", body["order_id"])
			assert.Equal(t, n.CorrelationID().String(), body["correlation_id"])
			assert.Equal(t, "k", headers[nats.HeaderKey])
			assert.Equal(t, "v", headers["h"])

			return nil
		})

	err := ad.PublishNotification(t.Context(), n, cqrs.PublishOptions{Key: "k", Headers: map[string]string{"h": "v"}})
	require.NoError(t, err)
}

func TestNATS_SubjectResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockNATSClient(ctrl)
	ad := nats.New(client)

	gomock.InOrder(
		client.EXPECT().Publish(gomock.Any(), "override", gomock.Any(), gomock.Any()).Return(nil),
		client.EXPECT().Publish(gomock.Any(), "notifications.orderShipped", gomock.Any(), gomock.Any()).Return(nil),
	)

	require.NoError(t, ad.PublishNotification(t.Context(),
		orderPlaced{NotificationBase: cqrs.NewNotification()}, cqrs.PublishOptions{Topic: "override"}))
	require.NoError(t, ad.PublishNotification(t.Context(),
		orderShipped{NotificationBase: cqrs.NewNotification()}, cqrs.PublishOptions{}))
}

func TestNATS_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockNATSClient(ctrl)
	ad := nats.New(client)
	n := orderShipped{NotificationBase: cqrs.NewNotification()}

	client.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("down"))
	err := ad.PublishNotification(t.Context(), n, cqrs.PublishOptions{})
	require.ErrorIs(t, err, berr.ErrPublishFailed)

	client.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)
	err = ad.PublishNotification(t.Context(), n, cqrs.PublishOptions{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotErrorIs(t, err, berr.ErrPublishFailed)

	err = ad.PublishNotification(t.Context(), badPayload{NotificationBase: cqrs.NewNotification()}, cqrs.PublishOptions{})
	require.ErrorIs(t, err, berr.ErrSerializationFailed)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	require.ErrorIs(t, ad.PublishNotification(ctx, n, cqrs.PublishOptions{}), context.Canceled)

	require.ErrorIs(t, nats.New(nil).PublishNotification(t.Context(), n, cqrs.PublishOptions{}), berr.ErrPublishFailed)
}

func TestNewWithNATS_EmptyURL(t *testing.T) {
	_, _, err := nats.NewWithNATS(nats.Config{})
	require.ErrorIs(t, err, berr.ErrPublishFailed)
}
