package mediator

import (
	"errors"
	"slices"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	"github.com/next-trace/scg-mediator/logger"
)

// Handler is a deferred registration consumed by Setup.
type Handler func(r *Registry) error

// Command defers RegisterCommand.
func Command[C cqrs.Command](h cqrs.CommandHandler[C]) Handler {
	return func(r *Registry) error { return RegisterCommand(r, h) }
}

// CommandResult defers RegisterCommandResult.
func CommandResult[C cqrs.CommandWithResult[R], R any](h cqrs.CommandResultHandler[C, R]) Handler {
	return func(r *Registry) error { return RegisterCommandResult(r, h) }
}

// Query defers RegisterQuery.
func Query[Q cqrs.Query[R], R any](h cqrs.QueryHandler[Q, R]) Handler {
	return func(r *Registry) error { return RegisterQuery(r, h) }
}

// Notification defers RegisterNotification.
func Notification[N cqrs.Notification](h cqrs.NotificationHandler[N]) Handler {
	return func(r *Registry) error { return RegisterNotification(r, h) }
}

// NotificationResult defers RegisterNotificationResult.
func NotificationResult[N cqrs.NotificationWithResult[R], R any](h cqrs.NotificationResultHandler[N, R]) Handler {
	return func(r *Registry) error { return RegisterNotificationResult(r, h) }
}

type setupOptions struct {
	behaviors   []Behavior
	decorations []decoration
	keepOpen    bool
}

type decoration struct {
	contract Contract
	behavior Behavior
}

// SetupOption configures Setup.
type SetupOption func(*setupOptions)

// WithBehaviors applies behaviors to every registered handler. The first behavior
// is the outermost and runs first.
func WithBehaviors(b ...Behavior) SetupOption {
	return func(o *setupOptions) { o.behaviors = append(o.behaviors, b...) }
}

// WithDecoration applies b to the handler registered for c only. It is applied
// inside the behaviors given to WithBehaviors.
func WithDecoration(c Contract, b Behavior) SetupOption {
	return func(o *setupOptions) { o.decorations = append(o.decorations, decoration{contract: c, behavior: b}) }
}

// WithoutSeal leaves the Registry open for further registration after Setup.
func WithoutSeal() SetupOption {
	return func(o *setupOptions) { o.keepOpen = true }
}

// Setup runs the startup phase: it registers every handler, applies the configured
// decorations and seals the Registry.
//
// A failing registration or decoration does not stop the others; all failures are
// logged and returned joined. Registering the same handler implementation twice is a
// no-op, so a repeated discovery pass is harmless.
func Setup(r *Registry, handlers []Handler, opts ...SetupOption) error {
	var o setupOptions
	for _, f := range opts {
		f(&o)
	}

	var errs []error

	for _, h := range handlers {
		if err := h(r); err != nil {
			r.log.Error("handler registration failed", logger.Error(err))
			errs = append(errs, err)
		}
	}

	for _, d := range o.decorations {
		if err := r.Decorate(d.contract, d.behavior); err != nil {
			errs = append(errs, err)
		}
	}

	// Innermost first, so the first behavior ends up outermost.
	for _, b := range slices.Backward(o.behaviors) {
		if err := r.DecorateAll(b); err != nil {
			errs = append(errs, err)
		}
	}

	if !o.keepOpen {
		r.Seal()
	}

	return errors.Join(errs...)
}
