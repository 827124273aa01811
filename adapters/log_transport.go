package adapters

import (
	"context"
	"encoding/json"
	"fmt"
)

// LogTransport writes every event to a logger at INFO level instead of
// delivering it. Useful for local development and dry runs.
type LogTransport struct {
	logger LoggerAdapter
}

var _ Transport = (*LogTransport)(nil)

// NewLogTransport creates a transport writing through logger.
func NewLogTransport(logger LoggerAdapter) *LogTransport {
	return &LogTransport{logger: logger}
}

func (l *LogTransport) Send(_ context.Context, event Event) error {
	attrs, err := json.Marshal(event.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal attributes: %w", err)
	}
	l.logger.Info("event %s id=%s attributes=%s", event.Name, event.ID, attrs)
	return nil
}
