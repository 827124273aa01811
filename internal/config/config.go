// Package config loads the bridge's YAML configuration and applies
// environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sink types accepted in sink.type.
const (
	SinkLog   = "log"
	SinkHTTP  = "http"
	SinkKafka = "kafka"
	SinkMQTT  = "mqtt"
	SinkNoop  = "noop"
)

type Config struct {
	Listen string     `yaml:"listen"`
	Log    LogConfig  `yaml:"log"`
	Sink   SinkConfig `yaml:"sink"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SinkConfig struct {
	Type  string      `yaml:"type"`
	HTTP  HTTPConfig  `yaml:"http"`
	Kafka KafkaConfig `yaml:"kafka"`
	MQTT  MQTTConfig  `yaml:"mqtt"`
}

type HTTPConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	APIKey       string        `yaml:"apiKey"`
	APIKeyHeader string        `yaml:"apiKeyHeader"`
	Timeout      time.Duration `yaml:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"clientId"`
	TopicPrefix string `yaml:"topicPrefix"`
	QoS         byte   `yaml:"qos"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen: ":8080",
		Log:    LogConfig{Level: "info", Format: "text"},
		Sink: SinkConfig{
			Type: SinkLog,
			HTTP: HTTPConfig{APIKeyHeader: "X-API-Key", Timeout: 5 * time.Second},
			MQTT: MQTTConfig{ClientID: "answers-bridge", TopicPrefix: "answers"},
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies ANSWERS_*
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	str("ANSWERS_LISTEN", &c.Listen)
	str("ANSWERS_LOG_LEVEL", &c.Log.Level)
	str("ANSWERS_LOG_FORMAT", &c.Log.Format)
	str("ANSWERS_SINK_TYPE", &c.Sink.Type)
	str("ANSWERS_HTTP_ENDPOINT", &c.Sink.HTTP.Endpoint)
	str("ANSWERS_HTTP_API_KEY", &c.Sink.HTTP.APIKey)
	str("ANSWERS_HTTP_API_KEY_HEADER", &c.Sink.HTTP.APIKeyHeader)
	str("ANSWERS_KAFKA_TOPIC", &c.Sink.Kafka.Topic)
	str("ANSWERS_MQTT_BROKER", &c.Sink.MQTT.Broker)
	str("ANSWERS_MQTT_CLIENT_ID", &c.Sink.MQTT.ClientID)
	str("ANSWERS_MQTT_TOPIC_PREFIX", &c.Sink.MQTT.TopicPrefix)

	if v, ok := lookup("ANSWERS_KAFKA_BROKERS"); ok {
		c.Sink.Kafka.Brokers = splitList(v)
	}
	if v, ok := lookup("ANSWERS_HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ANSWERS_HTTP_TIMEOUT: %w", err)
		}
		c.Sink.HTTP.Timeout = d
	}
	if v, ok := lookup("ANSWERS_MQTT_QOS"); ok {
		q, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return fmt.Errorf("ANSWERS_MQTT_QOS: %w", err)
		}
		c.Sink.MQTT.QoS = byte(q)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the selected sink has what it needs.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}

	switch c.Sink.Type {
	case SinkLog, SinkNoop:
	case SinkHTTP:
		if c.Sink.HTTP.Endpoint == "" {
			return errors.New("sink.http.endpoint is required")
		}
	case SinkKafka:
		if len(c.Sink.Kafka.Brokers) == 0 {
			return errors.New("sink.kafka.brokers is required")
		}
		if c.Sink.Kafka.Topic == "" {
			return errors.New("sink.kafka.topic is required")
		}
	case SinkMQTT:
		if c.Sink.MQTT.Broker == "" {
			return errors.New("sink.mqtt.broker is required")
		}
		if c.Sink.MQTT.QoS > 2 {
			return fmt.Errorf("sink.mqtt.qos must be 0, 1 or 2, got %d", c.Sink.MQTT.QoS)
		}
	default:
		return fmt.Errorf("unknown sink type %q", c.Sink.Type)
	}
	return nil
}
