package badger

import (
	"strings"

	"github.com/rs/zerolog"
)

// Logger adapts a zerolog logger to the badger.Logger interface.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log.With().Str("component", "badger").Logger()}
}

func (l *Logger) Errorf(msg string, args ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(msg), args...)
}

func (l *Logger) Warningf(msg string, args ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(msg), args...)
}

func (l *Logger) Infof(msg string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(msg), args...)
}

func (l *Logger) Debugf(msg string, args ...interface{}) {
	l.log.Trace().Msgf(strings.TrimSpace(msg), args...)
}
