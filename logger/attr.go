package logger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Kind creates the dispatch tag attribute (COMMAND, QUERY, NOTIFICATION).
func Kind(tag string) slog.Attr {
	return slog.String("kind", tag)
}

// MessageType creates an attribute for the concrete message type name.
func MessageType(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("message_type", name)
}

// CorrelationID creates an attribute for a message correlation id. uuid.Nil is
// logged as-is so messages built without a constructor stay visible.
func CorrelationID(id uuid.UUID) slog.Attr {
	return slog.String("correlation_id", id.String())
}

// Contract creates an attribute for a handler contract description.
func Contract(name string) slog.Attr {
	return slog.String("contract", name)
}

// Implementation creates an attribute for a handler implementation type name.
func Implementation(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("implementation", name)
}

// Decorator creates an attribute naming a decorator behavior.
func Decorator(name string) slog.Attr {
	return slog.String("decorator", name)
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Elapsed calculates the duration since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}
