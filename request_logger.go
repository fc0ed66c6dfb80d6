package client

// RequestLogger is the interface used by [Client] for logging HTTP requests
// and errors. It matches the resty logger interface, so the same value also
// receives the transport's own warnings and debug output.
//
// Implement this interface to integrate with your logging library and supply
// the implementation via [WithRequestLogger]. [NewZerologLogger] provides a
// ready-made adapter for zerolog.
type RequestLogger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

// NoopLogger is a [RequestLogger] that silently discards all log messages.
// It is the default logger used when no logger is provided to [New].
type NoopLogger struct{}

func (l *NoopLogger) Errorf(_ string, _ ...any) {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Debugf(_ string, _ ...any) {}
