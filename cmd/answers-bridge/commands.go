package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	answers "github.com/Tap30/answers-go"
	"github.com/Tap30/answers-go/adapters"
	"github.com/Tap30/answers-go/internal/config"
	"github.com/Tap30/answers-go/internal/server"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "answers-bridge",
		Short:         "Forward hybrid-app analytics commands to an analytics sink",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config")

	root.AddCommand(newServeCmd(&configPath), newSendCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Accept commands over HTTP until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cfg, os.Stderr)
			fwd, closeSink, err := buildForwarder(cfg, logger)
			if err != nil {
				return err
			}
			defer closeSink()

			return server.New(fwd, logger).ListenAndServe(ctx, cfg.Listen)
		},
	}
}

func newSendCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "send <action> [json]",
		Short: "Forward one command and print the acknowledgment",
		Long: "Forward one command. The payload is read from the second argument,\n" +
			"or from stdin when it is omitted or \"-\".",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			payload, err := readPayload(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			fwd, closeSink, err := buildForwarder(cfg, logger)
			if err != nil {
				return err
			}
			defer closeSink()

			result := fwd.Invoke(cmd.Context(), args[0], payload)
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		},
	}
}

// readPayload decodes the invocation arguments with the same rule the server
// applies: an argument array or a single command object. A missing payload,
// or JSON of any other shape, yields no arguments and so an empty command.
// Only malformed JSON is an error.
func readPayload(stdin io.Reader, args []string) ([]any, error) {
	var raw string
	if len(args) == 2 && args[1] != "-" {
		raw = args[1]
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
	}

	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	return server.Args(payload), nil
}

func newLogger(cfg *config.Config, w io.Writer) answers.LoggerAdapter {
	level := adapters.ParseLogLevel(cfg.Log.Level)
	return adapters.NewSlogLoggerAdapter(adapters.NewSlogLogger(w, cfg.Log.Format, level))
}

// buildForwarder wires the configured transport into a forwarder. The returned
// func releases the transport's resources.
func buildForwarder(cfg *config.Config, logger answers.LoggerAdapter) (*answers.Forwarder, func(), error) {
	closeFn := func() {}

	var sink answers.EventSink
	switch cfg.Sink.Type {
	case config.SinkNoop:
		sink = adapters.NewNoOpSink()
	default:
		transport, closer, err := buildTransport(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn = closer
		tracking, err := adapters.NewTrackingSink(transport)
		if err != nil {
			closer()
			return nil, nil, err
		}
		sink = tracking
	}

	fwd, err := answers.NewForwarder(answers.ForwarderConfig{Sink: sink, LoggerAdapter: logger})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return fwd, closeFn, nil
}

const mqttConnectTimeout = 10 * time.Second

func buildTransport(cfg *config.Config, logger answers.LoggerAdapter) (answers.Transport, func(), error) {
	sc := cfg.Sink
	switch sc.Type {
	case config.SinkHTTP:
		headers := map[string]string{}
		if sc.HTTP.APIKey != "" {
			headers[sc.HTTP.APIKeyHeader] = sc.HTTP.APIKey
		}
		return adapters.NewNetHTTPTransport(sc.HTTP.Endpoint, headers, sc.HTTP.Timeout), func() {}, nil
	case config.SinkKafka:
		k := adapters.NewKafkaTransport(sc.Kafka.Brokers, sc.Kafka.Topic)
		return k, func() {
			if err := k.Close(); err != nil {
				logger.Warn("Failed to close kafka writer: %v", err)
			}
		}, nil
	case config.SinkMQTT:
		client, err := adapters.ConnectMQTT(sc.MQTT.Broker, sc.MQTT.ClientID, mqttConnectTimeout)
		if err != nil {
			return nil, nil, err
		}
		return adapters.NewMQTTTransport(client, sc.MQTT.TopicPrefix, sc.MQTT.QoS), func() {
			client.Disconnect(250)
		}, nil
	case config.SinkLog:
		return adapters.NewLogTransport(logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown sink type %q", sc.Type)
	}
}
