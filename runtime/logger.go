package runtime

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the runtime package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the runtime package's logger.
// This must be called before creating any runtimes.
func SetLogger(l *zap.Logger) {
	logger = l
}

// logPrinter sends console output to the package logger.
type logPrinter struct{}

func (logPrinter) Log(s string)   { Logger().Info(s, zap.String("source", "console")) }
func (logPrinter) Warn(s string)  { Logger().Warn(s, zap.String("source", "console")) }
func (logPrinter) Error(s string) { Logger().Error(s, zap.String("source", "console")) }
