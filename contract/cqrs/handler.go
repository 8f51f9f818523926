package cqrs

import "context"

// CommandHandler handles commands of type C.
// Implementations must be safe for concurrent use by multiple goroutines.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, c C) error
}

// CommandResultHandler handles commands of type C and returns a result of type R.
type CommandResultHandler[C CommandWithResult[R], R any] interface {
	Handle(ctx context.Context, c C) (R, error)
}

// QueryHandler handles queries of type Q and returns a result of type R.
// Implementations must be safe for concurrent use by multiple goroutines.
type QueryHandler[Q Query[R], R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// NotificationHandler handles notifications of type N.
type NotificationHandler[N Notification] interface {
	Handle(ctx context.Context, n N) error
}

// NotificationResultHandler handles notifications of type N and returns a result of type R.
type NotificationResultHandler[N NotificationWithResult[R], R any] interface {
	Handle(ctx context.Context, n N) (R, error)
}

// CommandHandlerFunc adapts a function to CommandHandler.
type CommandHandlerFunc[C Command] func(ctx context.Context, c C) error

func (f CommandHandlerFunc[C]) Handle(ctx context.Context, c C) error { return f(ctx, c) }

// CommandResultHandlerFunc adapts a function to CommandResultHandler.
type CommandResultHandlerFunc[C CommandWithResult[R], R any] func(ctx context.Context, c C) (R, error)

func (f CommandResultHandlerFunc[C, R]) Handle(ctx context.Context, c C) (R, error) { return f(ctx, c) }

// QueryHandlerFunc adapts a function to QueryHandler.
type QueryHandlerFunc[Q Query[R], R any] func(ctx context.Context, q Q) (R, error)

func (f QueryHandlerFunc[Q, R]) Handle(ctx context.Context, q Q) (R, error) { return f(ctx, q) }

// NotificationHandlerFunc adapts a function to NotificationHandler.
type NotificationHandlerFunc[N Notification] func(ctx context.Context, n N) error

func (f NotificationHandlerFunc[N]) Handle(ctx context.Context, n N) error { return f(ctx, n) }

// NotificationResultHandlerFunc adapts a function to NotificationResultHandler.
type NotificationResultHandlerFunc[N NotificationWithResult[R], R any] func(ctx context.Context, n N) (R, error)

func (f NotificationResultHandlerFunc[N, R]) Handle(ctx context.Context, n N) (R, error) {
	return f(ctx, n)
}
