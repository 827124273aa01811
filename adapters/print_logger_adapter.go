package adapters

import (
	"log"
)

// PrintLoggerAdapter implements LoggerAdapter using standard log package
type PrintLoggerAdapter struct {
	level  LogLevel
	logger *log.Logger
}

var _ LoggerAdapter = (*PrintLoggerAdapter)(nil)

// NewPrintLoggerAdapter creates a new print logger with the specified level
func NewPrintLoggerAdapter(level LogLevel) *PrintLoggerAdapter {
	return &PrintLoggerAdapter{level: level, logger: log.Default()}
}

func (p *PrintLoggerAdapter) shouldLog(level LogLevel) bool {
	return levelRank[level] >= levelRank[p.level]
}

func (p *PrintLoggerAdapter) print(level LogLevel, message string, args []any) {
	if p.shouldLog(level) {
		p.logger.Printf("["+string(level)+"] [Answers] "+message, args...)
	}
}

func (p *PrintLoggerAdapter) Debug(message string, args ...any) { p.print(LogLevelDebug, message, args) }
func (p *PrintLoggerAdapter) Info(message string, args ...any)  { p.print(LogLevelInfo, message, args) }
func (p *PrintLoggerAdapter) Warn(message string, args ...any)  { p.print(LogLevelWarn, message, args) }
func (p *PrintLoggerAdapter) Error(message string, args ...any) { p.print(LogLevelError, message, args) }
