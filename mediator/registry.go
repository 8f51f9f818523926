package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/samber/lo"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/logger"
)

// Registry maps each Contract to exactly one handler.
//
// Registry is safe for concurrent use. Registration and decoration are expected to
// happen once at startup, before Seal; lookups take a read lock only.
type Registry struct {
	mu sync.RWMutex

	entries map[Contract]*entry
	order   []Contract
	sealed  bool

	log *slog.Logger
}

type entry struct {
	contract Contract
	impl     reflect.Type

	// base is the handler as registered; handler is base or the outermost decorator around it.
	base    any
	handler any
	invoke  func(ctx context.Context, h any, msg cqrs.Message) (any, error)
	wrap    func(h any, b Behavior) any
}

// Registration describes one registry entry.
type Registration struct {
	Contract       Contract
	Implementation string
	// Decorators lists applied behavior names, outermost first.
	Decorators []string
}

// NewRegistry constructs an empty Registry. A nil logger discards output.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		entries: make(map[Contract]*entry),
		log:     logger.OrDiscard(log),
	}
}

// RegisterCommand binds h as the handler of command type C.
func RegisterCommand[C cqrs.Command](r *Registry, h cqrs.CommandHandler[C]) error {
	return r.register(&entry{
		contract: CommandContract[C](),
		handler:  h,
		invoke: func(ctx context.Context, h any, msg cqrs.Message) (any, error) {
			handler, c, err := assertCall[cqrs.CommandHandler[C], C](h, msg)
			if err != nil {
				return nil, err
			}

			return nil, handler.Handle(ctx, c)
		},
		wrap: func(h any, b Behavior) any {
			return WrapCommand(h.(cqrs.CommandHandler[C]), b)
		},
	})
}

// RegisterCommandResult binds h as the handler of command type C yielding R.
func RegisterCommandResult[C cqrs.CommandWithResult[R], R any](r *Registry, h cqrs.CommandResultHandler[C, R]) error {
	return r.register(&entry{
		contract: CommandResultContract[C, R](),
		handler:  h,
		invoke: func(ctx context.Context, h any, msg cqrs.Message) (any, error) {
			handler, c, err := assertCall[cqrs.CommandResultHandler[C, R], C](h, msg)
			if err != nil {
				return nil, err
			}

			return handler.Handle(ctx, c)
		},
		wrap: func(h any, b Behavior) any {
			return WrapCommandResult(h.(cqrs.CommandResultHandler[C, R]), b)
		},
	})
}

// RegisterQuery binds h as the handler of query type Q yielding R.
func RegisterQuery[Q cqrs.Query[R], R any](r *Registry, h cqrs.QueryHandler[Q, R]) error {
	return r.register(&entry{
		contract: QueryContract[Q, R](),
		handler:  h,
		invoke: func(ctx context.Context, h any, msg cqrs.Message) (any, error) {
			handler, q, err := assertCall[cqrs.QueryHandler[Q, R], Q](h, msg)
			if err != nil {
				return nil, err
			}

			return handler.Handle(ctx, q)
		},
		wrap: func(h any, b Behavior) any {
			return WrapQuery(h.(cqrs.QueryHandler[Q, R]), b)
		},
	})
}

// RegisterNotification binds h as the handler of notification type N.
func RegisterNotification[N cqrs.Notification](r *Registry, h cqrs.NotificationHandler[N]) error {
	return r.register(&entry{
		contract: NotificationContract[N](),
		handler:  h,
		invoke: func(ctx context.Context, h any, msg cqrs.Message) (any, error) {
			handler, n, err := assertCall[cqrs.NotificationHandler[N], N](h, msg)
			if err != nil {
				return nil, err
			}

			return nil, handler.Handle(ctx, n)
		},
		wrap: func(h any, b Behavior) any {
			return WrapNotification(h.(cqrs.NotificationHandler[N]), b)
		},
	})
}

// RegisterNotificationResult binds h as the handler of notification type N yielding R.
func RegisterNotificationResult[N cqrs.NotificationWithResult[R], R any](
	r *Registry,
	h cqrs.NotificationResultHandler[N, R],
) error {
	return r.register(&entry{
		contract: NotificationResultContract[N, R](),
		handler:  h,
		invoke: func(ctx context.Context, h any, msg cqrs.Message) (any, error) {
			handler, n, err := assertCall[cqrs.NotificationResultHandler[N, R], N](h, msg)
			if err != nil {
				return nil, err
			}

			return handler.Handle(ctx, n)
		},
		wrap: func(h any, b Behavior) any {
			return WrapNotificationResult(h.(cqrs.NotificationResultHandler[N, R]), b)
		},
	})
}

func assertCall[H any, M cqrs.Message](h any, msg cqrs.Message) (H, M, error) {
	handler, ok := h.(H)
	if !ok {
		var (
			zh H
			zm M
		)

		return zh, zm, fmt.Errorf("invoke %T: handler %T: %w", msg, h, berr.ErrHandlerTypeMismatch)
	}

	m, ok := msg.(M)
	if !ok {
		var zm M

		return handler, zm, fmt.Errorf("invoke %T: %w", msg, berr.ErrHandlerTypeMismatch)
	}

	return handler, m, nil
}

func (r *Registry) register(e *entry) error {
	c := e.contract

	if c.Message.Kind() == reflect.Interface {
		return fmt.Errorf("register %s: message type must be concrete: %w", c, berr.ErrHandlerTypeMismatch)
	}

	if e.handler == nil {
		return fmt.Errorf("register %s: nil handler: %w", c, berr.ErrHandlerTypeMismatch)
	}

	e.impl = reflect.TypeOf(e.handler)
	e.base = e.handler

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("register %s: %w", c, berr.ErrRegistrySealed)
	}

	if cur, exists := r.entries[c]; exists {
		if sameHandler(cur.base, e.base) {
			r.log.Debug("handler already registered",
				logger.Contract(c.String()), logger.Implementation(e.impl.String()))

			return nil
		}

		return fmt.Errorf("register %s with %s (bound to %s): %w", c, e.impl, cur.impl, berr.ErrHandlerExists)
	}

	r.entries[c] = e
	r.order = append(r.order, c)

	r.log.Info("handler registered", logger.Contract(c.String()), logger.Implementation(e.impl.String()))

	return nil
}

// sameHandler reports whether a and b are the same handler value. Handlers that
// cannot be compared, funcs included, are never the same.
func sameHandler(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.ValueOf(a).Comparable() {
		return false
	}

	return a == b
}

// Decorate wraps the handler registered for c with b. Applying a behavior whose
// dynamic type already wraps the handler is a no-op. Decorating a contract with no
// registered handler fails with ErrDecorationConflict.
func (r *Registry) Decorate(c Contract, b Behavior) error {
	if b == nil {
		return fmt.Errorf("decorate %s: nil behavior: %w", c, berr.ErrDecorationConflict)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("decorate %s with %s: %w", c, b.Name(), berr.ErrRegistrySealed)
	}

	e, ok := r.entries[c]
	if !ok {
		r.log.Warn("decorator skipped: no handler registered",
			logger.Contract(c.String()), logger.Decorator(b.Name()))

		return fmt.Errorf("decorate %s with %s: %w", c, b.Name(), berr.ErrDecorationConflict)
	}

	r.decorate(e, b)

	return nil
}

// DecorateAll wraps every registered handler with b, in registration order.
func (r *Registry) DecorateAll(b Behavior) error {
	if b == nil {
		return fmt.Errorf("decorate all: nil behavior: %w", berr.ErrDecorationConflict)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("decorate all with %s: %w", b.Name(), berr.ErrRegistrySealed)
	}

	for _, c := range r.order {
		r.decorate(r.entries[c], b)
	}

	return nil
}

func (r *Registry) decorate(e *entry, b Behavior) {
	if hasBehavior(e.handler, b) {
		r.log.Debug("decorator skipped: already applied",
			logger.Contract(e.contract.String()), logger.Decorator(b.Name()))

		return
	}

	e.handler = e.wrap(e.handler, b)

	r.log.Info("decorator applied", logger.Contract(e.contract.String()), logger.Decorator(b.Name()))
}

// Seal ends the startup phase. Later Register and Decorate calls fail with ErrRegistrySealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sealed
}

// Resolve returns the handler registered for c, decorated if behaviors were applied.
func (r *Registry) Resolve(c Contract) (any, error) {
	h, _, err := r.lookup(c)

	return h, err
}

// Resolve returns the handler registered for c as H, typically the handler interface
// the contract names:
//
//	h, err := mediator.Resolve[cqrs.QueryHandler[GetUser, User]](reg, mediator.QueryContract[GetUser, User]())
func Resolve[H any](r *Registry, c Contract) (H, error) {
	var zero H

	h, err := r.Resolve(c)
	if err != nil {
		return zero, err
	}

	typed, ok := h.(H)
	if !ok {
		return zero, fmt.Errorf("resolve %s as %s: %w", c, reflect.TypeFor[H](), berr.ErrHandlerTypeMismatch)
	}

	return typed, nil
}

func (r *Registry) lookup(c Contract) (any, func(context.Context, any, cqrs.Message) (any, error), error) {
	r.mu.RLock()
	e, ok := r.entries[c]

	var h any
	if ok {
		h = e.handler
	}
	r.mu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("resolve %s: %w", c, berr.ErrHandlerNotFound)
	}

	return h, e.invoke, nil
}

// Registrations lists the registry entries in registration order.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.order, func(c Contract, _ int) Registration {
		e := r.entries[c]

		return Registration{
			Contract:       c,
			Implementation: e.impl.String(),
			Decorators:     behaviorNames(e.handler),
		}
	})
}

// Len returns the number of registered contracts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
