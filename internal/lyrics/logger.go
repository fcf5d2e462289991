package lyrics

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Logger adapts a zerolog.Logger to genius.Logger
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a genius.Logger that writes to log
func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "genius").Logger()}
}

// Debugf logs a request-level message at debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msg(fmt.Sprintf(format, args...))
}

// Infof logs a progress message at info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
