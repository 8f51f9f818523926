package mediator_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	"github.com/next-trace/scg-mediator/mediator"
)

type createUser struct {
	cqrs.CommandBase
	UserName string `validate:"required"`
}

type createUserHandler struct {
	calls *atomic.Int32
	got   *atomic.Value
	err   error
}

func (h createUserHandler) Handle(_ context.Context, c createUser) error {
	if h.calls != nil {
		h.calls.Add(1)
	}

	if h.got != nil {
		h.got.Store(c.UserName)
	}

	return h.err
}

type otherCreateUserHandler struct{}

func (otherCreateUserHandler) Handle(context.Context, createUser) error { return nil }

type user struct {
	ID   int
	Name string
}

type getUser struct {
	cqrs.QueryBase[user]
	ID int
}

type getUserHandler struct{}

func (getUserHandler) Handle(_ context.Context, q getUser) (user, error) {
	if q.ID == 0 {
		return user{}, errUnknownUser
	}

	return user{ID: q.ID, Name: "Alice"}, nil
}

type renameUser struct {
	cqrs.CommandBaseOf[int]
	Name string
}

type renameUserHandler struct{}

func (renameUserHandler) Handle(_ context.Context, c renameUser) (int, error) { return len(c.Name), nil }

type userCreated struct {
	cqrs.NotificationBase
	UserName string
}

type userAudited struct {
	cqrs.NotificationBaseOf[bool]
	UserName string
}

type userAuditedHandler struct{}

func (userAuditedHandler) Handle(_ context.Context, n userAudited) (bool, error) { return n.UserName != "", nil }

var errUnknownUser = errors.New("unknown user")

// recorder is a slog.Handler that keeps every record.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

func newRecorder() (*recorder, *slog.Logger) {
	r := &recorder{}

	return r, slog.New(r)
}

func (*recorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *recorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec.Clone())

	return nil
}

func (r *recorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *recorder) WithGroup(string) slog.Handler      { return r }

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Message)
	}

	return out
}

func (r *recorder) count(msg string) int {
	n := 0

	for _, m := range r.messages() {
		if m == msg {
			n++
		}
	}

	return n
}

// attrs returns the string attributes of the first record with the given message.
func (r *recorder) attrs(msg string) map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.Message != msg {
			continue
		}

		out := make(map[string]string)

		rec.Attrs(func(a slog.Attr) bool {
			out[a.Key] = a.Value.String()

			return true
		})

		return out
	}

	return nil
}

func (r *recorder) levelOf(msg string) (slog.Level, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.Message == msg {
			return rec.Level, true
		}
	}

	return 0, false
}

// stamp is a Behavior that appends its name to a shared trace. Each instantiation
// is a distinct behavior type.
type stamp[T any] struct {
	name  string
	trace *[]string
}

type (
	outer struct{}
	inner struct{}
)

func (s stamp[T]) Name() string { return s.name }

func (s stamp[T]) Handle(ctx context.Context, _ mediator.Call, next mediator.Next) (any, error) {
	*s.trace = append(*s.trace, s.name)

	return next(ctx)
}
