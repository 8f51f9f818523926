package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/next-trace/scg-mediator/config"
)

func TestLoad_Defaults(t *testing.T) {
	var cfg config.Mediator
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.DecorateLogging)
	assert.False(t, cfg.Validation)
	assert.Equal(t, config.RelayNone, cfg.Relay)
	assert.Equal(t, 2*time.Second, cfg.NATS.ConnTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MEDIATOR_LOG_LEVEL", "debug")
	t.Setenv("MEDIATOR_LOG_FORMAT", "json")
	t.Setenv("MEDIATOR_RELAY", "kafka")
	t.Setenv("MEDIATOR_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("MEDIATOR_DECORATE_LOGGING", "false")

	var cfg config.Mediator
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.DecorateLogging)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.NoError(t, cfg.Validate())
}

func TestMediator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Mediator
		wantErr bool
	}{
		{name: "none", cfg: config.Mediator{Relay: config.RelayNone}},
		{name: "inmemory", cfg: config.Mediator{Relay: config.RelayInMemory}},
		{name: "nats without url", cfg: config.Mediator{Relay: config.RelayNATS}, wantErr: true},
		{name: "nats", cfg: config.Mediator{Relay: config.RelayNATS, NATS: config.NATS{URL: "nats://x"}}},
		{name: "kafka without brokers", cfg: config.Mediator{Relay: config.RelayKafka}, wantErr: true},
		{name: "rabbitmq without url", cfg: config.Mediator{Relay: config.RelayRabbitMQ}, wantErr: true},
		{name: "unknown", cfg: config.Mediator{Relay: "smtp"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
