package memory

import (
	"log/slog"

	"github.com/next-trace/scg-mediator/mediator"
)

// New constructs an in-process mediator: every handler is registered, wrapped with the
// logging behavior and the registry is sealed. A nil logger discards output.
func New(log *slog.Logger, handlers ...mediator.Handler) (*mediator.Sender, error) {
	r := mediator.NewRegistry(log)

	if err := mediator.Setup(r, handlers, mediator.WithBehaviors(mediator.Logging(log))); err != nil {
		return nil, err
	}

	return mediator.NewSender(r, log), nil
}
