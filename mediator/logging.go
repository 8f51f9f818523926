package mediator

import (
	"context"
	"log/slog"

	"github.com/next-trace/scg-mediator/logger"
)

type loggingBehavior struct {
	log *slog.Logger
}

// Logging returns a Behavior that records "handling message" before the handler runs
// and "message handled" after it returns successfully. A failing handler produces no
// completion record; its error is returned unchanged. A nil logger discards output.
func Logging(log *slog.Logger) Behavior {
	return &loggingBehavior{log: logger.OrDiscard(log)}
}

func (*loggingBehavior) Name() string { return "logging" }

func (b *loggingBehavior) Handle(ctx context.Context, call Call, next Next) (any, error) {
	attrs := callAttrs(call)

	b.log.LogAttrs(ctx, slog.LevelInfo, "handling message", attrs...)

	res, err := next(ctx)
	if err != nil {
		return res, err
	}

	b.log.LogAttrs(ctx, slog.LevelInfo, "message handled", attrs...)

	return res, nil
}

// callAttrs returns the kind tag, message type and correlation id of a call.
func callAttrs(call Call) []slog.Attr {
	return []slog.Attr{
		logger.Kind(call.Kind.Tag()),
		logger.MessageType(call.MessageType()),
		logger.CorrelationID(call.Message.CorrelationID()),
	}
}
