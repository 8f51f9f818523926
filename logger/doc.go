// Package logger builds the slog.Logger used by the mediator and provides attribute
// helpers for dispatch records.
//
// Attribute helpers return an empty slog.Attr for nil or empty values, so calls like
// log.Info("msg", logger.Error(err)) need no nil checks.
package logger
