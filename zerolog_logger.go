package client

import "github.com/rs/zerolog"

// ZerologLogger adapts a [zerolog.Logger] to the [RequestLogger] interface.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger returns a [RequestLogger] writing to logger. Every entry is
// tagged with component=clearpass.
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger.With().Str("component", "clearpass").Logger()}
}

func (l *ZerologLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf(format, v...)
}

func (l *ZerologLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *ZerologLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}
