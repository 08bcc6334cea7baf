// Package logger exposes the structured logging abstraction used by
// the go-command packages, so that applications can plug in their
// logging library of choice (see package zaplogger).
package logger

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// With builds a Field out of the key and value provided.
func With(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is a structured, leveled logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Debug logs a debug message on l. A nil Logger discards the message.
func Debug(l Logger, msg string, fields ...Field) {
	if l != nil {
		l.Debug(msg, fields...)
	}
}

// Info logs an info message on l. A nil Logger discards the message.
func Info(l Logger, msg string, fields ...Field) {
	if l != nil {
		l.Info(msg, fields...)
	}
}

// Error logs an error message on l. A nil Logger discards the message.
func Error(l Logger, msg string, fields ...Field) {
	if l != nil {
		l.Error(msg, fields...)
	}
}
