package mediator

import (
	"context"
	"reflect"

	"github.com/next-trace/scg-mediator/contract/cqrs"
)

// Behavior is a cross-cutting concern applied around a handler invocation.
//
// A Behavior must call next exactly once to forward the call, and must return the result
// and error of next unchanged unless it deliberately short-circuits (for example on a
// validation failure). A Behavior is applied at most once per contract; identity is the
// dynamic type of the Behavior value.
type Behavior interface {
	Name() string
	Handle(ctx context.Context, call Call, next Next) (any, error)
}

// Next invokes the wrapped handler.
type Next func(ctx context.Context) (any, error)

// Call describes the message being handled.
type Call struct {
	Kind    cqrs.Kind
	Message cqrs.Message
}

// MessageType returns the package-qualified type name of the message.
func (c Call) MessageType() string { return typeName(c.Message) }

// decorated is implemented by every decorator so the chain can be walked.
type decorated interface {
	behavior() Behavior
	inner() any
}

// WrapCommand returns a CommandHandler[C] that runs h inside b.
func WrapCommand[C cqrs.Command](h cqrs.CommandHandler[C], b Behavior) cqrs.CommandHandler[C] {
	return &commandDecorator[C]{next: h, b: b}
}

// WrapCommandResult returns a CommandResultHandler[C, R] that runs h inside b.
func WrapCommandResult[C cqrs.CommandWithResult[R], R any](
	h cqrs.CommandResultHandler[C, R],
	b Behavior,
) cqrs.CommandResultHandler[C, R] {
	return &commandResultDecorator[C, R]{next: h, b: b}
}

// WrapQuery returns a QueryHandler[Q, R] that runs h inside b.
func WrapQuery[Q cqrs.Query[R], R any](h cqrs.QueryHandler[Q, R], b Behavior) cqrs.QueryHandler[Q, R] {
	return &queryDecorator[Q, R]{next: h, b: b}
}

// WrapNotification returns a NotificationHandler[N] that runs h inside b.
func WrapNotification[N cqrs.Notification](h cqrs.NotificationHandler[N], b Behavior) cqrs.NotificationHandler[N] {
	return &notificationDecorator[N]{next: h, b: b}
}

// WrapNotificationResult returns a NotificationResultHandler[N, R] that runs h inside b.
func WrapNotificationResult[N cqrs.NotificationWithResult[R], R any](
	h cqrs.NotificationResultHandler[N, R],
	b Behavior,
) cqrs.NotificationResultHandler[N, R] {
	return &notificationResultDecorator[N, R]{next: h, b: b}
}

type commandDecorator[C cqrs.Command] struct {
	next cqrs.CommandHandler[C]
	b    Behavior
}

func (d *commandDecorator[C]) Handle(ctx context.Context, c C) error {
	_, err := d.b.Handle(ctx, Call{Kind: cqrs.KindCommand, Message: c}, func(ctx context.Context) (any, error) {
		return nil, d.next.Handle(ctx, c)
	})

	return err
}

func (d *commandDecorator[C]) behavior() Behavior { return d.b }
func (d *commandDecorator[C]) inner() any         { return d.next }

type commandResultDecorator[C cqrs.CommandWithResult[R], R any] struct {
	next cqrs.CommandResultHandler[C, R]
	b    Behavior
}

func (d *commandResultDecorator[C, R]) Handle(ctx context.Context, c C) (R, error) {
	return around(ctx, d.b, Call{Kind: cqrs.KindCommandResult, Message: c}, func(ctx context.Context) (R, error) {
		return d.next.Handle(ctx, c)
	})
}

func (d *commandResultDecorator[C, R]) behavior() Behavior { return d.b }
func (d *commandResultDecorator[C, R]) inner() any         { return d.next }

type queryDecorator[Q cqrs.Query[R], R any] struct {
	next cqrs.QueryHandler[Q, R]
	b    Behavior
}

func (d *queryDecorator[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	return around(ctx, d.b, Call{Kind: cqrs.KindQuery, Message: q}, func(ctx context.Context) (R, error) {
		return d.next.Handle(ctx, q)
	})
}

func (d *queryDecorator[Q, R]) behavior() Behavior { return d.b }
func (d *queryDecorator[Q, R]) inner() any         { return d.next }

type notificationDecorator[N cqrs.Notification] struct {
	next cqrs.NotificationHandler[N]
	b    Behavior
}

func (d *notificationDecorator[N]) Handle(ctx context.Context, n N) error {
	_, err := d.b.Handle(ctx, Call{Kind: cqrs.KindNotification, Message: n}, func(ctx context.Context) (any, error) {
		return nil, d.next.Handle(ctx, n)
	})

	return err
}

func (d *notificationDecorator[N]) behavior() Behavior { return d.b }
func (d *notificationDecorator[N]) inner() any         { return d.next }

type notificationResultDecorator[N cqrs.NotificationWithResult[R], R any] struct {
	next cqrs.NotificationResultHandler[N, R]
	b    Behavior
}

func (d *notificationResultDecorator[N, R]) Handle(ctx context.Context, n N) (R, error) {
	return around(ctx, d.b, Call{Kind: cqrs.KindNotificationResult, Message: n}, func(ctx context.Context) (R, error) {
		return d.next.Handle(ctx, n)
	})
}

func (d *notificationResultDecorator[N, R]) behavior() Behavior { return d.b }
func (d *notificationResultDecorator[N, R]) inner() any         { return d.next }

// around runs fn inside b and keeps the typed result of fn. A behavior that
// short-circuits without calling next yields the zero R.
func around[R any](ctx context.Context, b Behavior, call Call, fn func(context.Context) (R, error)) (R, error) {
	var res R

	_, err := b.Handle(ctx, call, func(ctx context.Context) (any, error) {
		var err error
		res, err = fn(ctx)

		return res, err
	})

	return res, err
}

// hasBehavior reports whether a behavior of the same dynamic type as b already wraps h.
func hasBehavior(h any, b Behavior) bool {
	want := reflect.TypeOf(b)

	for {
		d, ok := h.(decorated)
		if !ok {
			return false
		}

		if reflect.TypeOf(d.behavior()) == want {
			return true
		}

		h = d.inner()
	}
}

// behaviorNames lists the behaviors wrapping h, outermost first.
func behaviorNames(h any) []string {
	var names []string

	for {
		d, ok := h.(decorated)
		if !ok {
			return names
		}

		names = append(names, d.behavior().Name())
		h = d.inner()
	}
}
