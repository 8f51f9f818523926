package mediator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/next-trace/scg-mediator"

type tracingBehavior struct {
	tracer trace.Tracer
}

// Tracing returns a Behavior that wraps each handler invocation in an internal span.
// A nil provider uses the global TracerProvider.
func Tracing(tp trace.TracerProvider) Behavior {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &tracingBehavior{tracer: tp.Tracer(tracerName)}
}

func (*tracingBehavior) Name() string { return "tracing" }

func (b *tracingBehavior) Handle(ctx context.Context, call Call, next Next) (any, error) {
	ctx, span := b.tracer.Start(ctx, call.Kind.String()+" "+call.MessageType(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("mediator.kind", call.Kind.Tag()),
			attribute.String("mediator.message_type", call.MessageType()),
			attribute.String("mediator.correlation_id", call.Message.CorrelationID().String()),
		),
	)
	defer span.End()

	res, err := next(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return res, err
	}

	return res, nil
}
