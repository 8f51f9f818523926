package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/logger"
)

// Sender dispatches messages to the handlers of a Registry.
//
// For every dispatch it records "dispatching message" before resolving the handler,
// "message dispatched" after the handler returns successfully and "dispatch failed" when
// resolution or the handler fails. Handler errors are returned unchanged.
//
// Sender is stateless apart from its Registry and is safe for concurrent use.
type Sender struct {
	registry *Registry
	log      *slog.Logger
}

var _ cqrs.Sender = (*Sender)(nil)

// NewSender constructs a Sender over r. A nil logger discards output.
func NewSender(r *Registry, log *slog.Logger) *Sender {
	return &Sender{registry: r, log: logger.OrDiscard(log)}
}

// Registry returns the registry the Sender dispatches to.
func (s *Sender) Registry() *Registry { return s.registry }

// SendCommand dispatches cmd to its CommandHandler.
func (s *Sender) SendCommand(ctx context.Context, cmd cqrs.Command) error {
	_, err := s.send(ctx, cqrs.KindCommand, cmd, nil)

	return err
}

// SendNotification dispatches n to its NotificationHandler.
func (s *Sender) SendNotification(ctx context.Context, n cqrs.Notification) error {
	_, err := s.send(ctx, cqrs.KindNotification, n, nil)

	return err
}

// SendCommandResult dispatches cmd to its CommandResultHandler and returns the result.
func SendCommandResult[R any](ctx context.Context, s *Sender, cmd cqrs.CommandWithResult[R]) (R, error) {
	return sendFor[R](ctx, s, cqrs.KindCommandResult, cmd)
}

// SendQuery dispatches q to its QueryHandler and returns the result.
func SendQuery[R any](ctx context.Context, s *Sender, q cqrs.Query[R]) (R, error) {
	return sendFor[R](ctx, s, cqrs.KindQuery, q)
}

// SendNotificationResult dispatches n to its NotificationResultHandler and returns the result.
func SendNotificationResult[R any](ctx context.Context, s *Sender, n cqrs.NotificationWithResult[R]) (R, error) {
	return sendFor[R](ctx, s, cqrs.KindNotificationResult, n)
}

func sendFor[R any](ctx context.Context, s *Sender, kind cqrs.Kind, msg cqrs.Message) (R, error) {
	var zero R

	res, err := s.send(ctx, kind, msg, reflect.TypeFor[R]())
	if err != nil {
		return zero, err
	}

	if res == nil {
		return zero, nil
	}

	r, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("send %s %s: result %T: %w", kind, typeName(msg), res, berr.ErrHandlerTypeMismatch)
	}

	return r, nil
}

func (s *Sender) send(ctx context.Context, kind cqrs.Kind, msg cqrs.Message, result reflect.Type) (any, error) {
	if isNil(msg) {
		return nil, fmt.Errorf("send %s: %w", kind, berr.ErrNilMessage)
	}

	c := Contract{Kind: kind, Message: reflect.TypeOf(msg), Result: result}
	attrs := []slog.Attr{
		logger.Kind(kind.Tag()),
		logger.MessageType(c.Message.String()),
		logger.CorrelationID(msg.CorrelationID()),
	}

	if msg.CorrelationID() == uuid.Nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "message has no correlation id", attrs...)
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "dispatching message", attrs...)

	start := time.Now()

	res, err := s.invoke(ctx, c, msg)
	if err != nil {
		s.log.LogAttrs(ctx, slog.LevelError, "dispatch failed", append(attrs, logger.Error(err))...)

		return nil, err
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "message dispatched", append(attrs, logger.Elapsed(start))...)

	return res, nil
}

func (s *Sender) invoke(ctx context.Context, c Contract, msg cqrs.Message) (any, error) {
	h, invoke, err := s.registry.lookup(c)
	if err != nil {
		return nil, fmt.Errorf("send %s %s: %w", c.Kind, c.Message, err)
	}

	return invoke(ctx, h, msg)
}

func isNil(msg cqrs.Message) bool {
	if msg == nil {
		return true
	}

	v := reflect.ValueOf(msg)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
