package adapters

// NoOpLoggerAdapter implements LoggerAdapter with no-op methods
type NoOpLoggerAdapter struct{}

var _ LoggerAdapter = (*NoOpLoggerAdapter)(nil)

// NewNoOpLoggerAdapter creates a new no-op logger
func NewNoOpLoggerAdapter() *NoOpLoggerAdapter {
	return &NoOpLoggerAdapter{}
}

func (n *NoOpLoggerAdapter) Debug(string, ...any) {}
func (n *NoOpLoggerAdapter) Info(string, ...any)  {}
func (n *NoOpLoggerAdapter) Warn(string, ...any)  {}
func (n *NoOpLoggerAdapter) Error(string, ...any) {}
