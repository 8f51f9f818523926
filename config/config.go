package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/next-trace/scg-mediator/logger"
)

var loadDotEnv = sync.OnceValue(func() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
})

// Load parses environment variables into cfg, which must be a pointer to a struct.
func Load[T any](cfg *T) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config %T: %w", cfg, err)
	}

	return nil
}

// MustLoad is like Load but panics on failure. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Relay transports understood by Mediator.Relay.
const (
	RelayNone     = "none"
	RelayInMemory = "inmemory"
	RelayNATS     = "nats"
	RelayKafka    = "kafka"
	RelayRabbitMQ = "rabbitmq"
)

// Mediator is the configuration consumed by the example application and the memory factory.
type Mediator struct {
	Log logger.Config `envPrefix:"MEDIATOR_"`

	// DecorateLogging applies the logging decorator to every registered handler.
	DecorateLogging bool `env:"MEDIATOR_DECORATE_LOGGING" envDefault:"true"`
	// Validation applies struct-tag validation before every handler.
	Validation bool `env:"MEDIATOR_VALIDATE" envDefault:"false"`
	// Tracing opens an OpenTelemetry span around every handler.
	Tracing bool `env:"MEDIATOR_TRACING" envDefault:"false"`

	Relay    string   `env:"MEDIATOR_RELAY" envDefault:"none"`
	NATS     NATS     `envPrefix:"MEDIATOR_NATS_"`
	Kafka    Kafka    `envPrefix:"MEDIATOR_KAFKA_"`
	RabbitMQ RabbitMQ `envPrefix:"MEDIATOR_AMQP_"`
}

type NATS struct {
	URL           string        `env:"URL"`
	Name          string        `env:"NAME" envDefault:"scg-mediator"`
	ConnTimeout   time.Duration `env:"CONN_TIMEOUT" envDefault:"2s"`
	MaxReconnects int           `env:"MAX_RECONNECTS" envDefault:"60"`
}

type Kafka struct {
	Brokers  []string `env:"BROKERS" envSeparator:","`
	ClientID string   `env:"CLIENT_ID" envDefault:"scg-mediator"`
}

type RabbitMQ struct {
	URL         string        `env:"URL"`
	ConnTimeout time.Duration `env:"CONN_TIMEOUT" envDefault:"5s"`
}

// Validate reports configuration combinations that cannot work.
func (m Mediator) Validate() error {
	switch m.Relay {
	case RelayNone, RelayInMemory, "":
		return nil
	case RelayNATS:
		if m.NATS.URL == "" {
			return errors.New("config: MEDIATOR_NATS_URL is required for the nats relay")
		}
	case RelayKafka:
		if len(m.Kafka.Brokers) == 0 {
			return errors.New("config: MEDIATOR_KAFKA_BROKERS is required for the kafka relay")
		}
	case RelayRabbitMQ:
		if m.RabbitMQ.URL == "" {
			return errors.New("config: MEDIATOR_AMQP_URL is required for the rabbitmq relay")
		}
	default:
		return fmt.Errorf("config: unknown relay %q", m.Relay)
	}

	return nil
}
