package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/next-trace/scg-mediator/logger"
)

func TestNew_JSONFormatAndLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Format: "json", Output: &buf})

	log.Info("dropped")
	log.Warn("kept", slog.String("k", "v"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestNew_DefaultsToTextInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "nonsense", Format: "xml", Output: &buf})

	log.Debug("dropped")
	log.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}

func TestOrDiscard(t *testing.T) {
	t.Parallel()

	l := logger.OrDiscard(nil)
	require.NotNil(t, l)
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))

	own := slog.Default()
	assert.Same(t, own, logger.OrDiscard(own))
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	assert.Equal(t, "kind", logger.Kind("QUERY").Key)
	assert.Equal(t, "main.GetUser", logger.MessageType("main.GetUser").Value.String())
	assert.Equal(t, id.String(), logger.CorrelationID(id).Value.String())
	assert.Equal(t, "contract", logger.Contract("QueryHandler[a, b]").Key)
	assert.Equal(t, "decorator", logger.Decorator("logging").Key)

	err := errors.New("boom")
	assert.Equal(t, err, logger.Error(err).Value.Any())

	assert.Equal(t, uuid.Nil.String(), logger.CorrelationID(uuid.Nil).Value.String())
	assert.True(t, logger.MessageType("").Equal(slog.Attr{}))
	assert.True(t, logger.Implementation("").Equal(slog.Attr{}))
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))

	start := time.Now().Add(-50 * time.Millisecond)
	assert.GreaterOrEqual(t, logger.Elapsed(start).Value.Duration(), 50*time.Millisecond)
}
