// Package zaplogger adapts a go.uber.org/zap logger to the logger.Logger interface.
package zaplogger

import (
	"go.uber.org/zap"

	"github.com/get-eventually/go-command/logger"
)

var _ logger.Logger = &Logger{}

// Logger is a zap.Logger implementing the logger.Logger interface.
type Logger zap.Logger

func zapFields(fields []logger.Field) []zap.Field {
	result := make([]zap.Field, 0, len(fields))

	for _, field := range fields {
		if err, ok := field.Value.(error); ok {
			result = append(result, zap.NamedError(field.Key, err))
			continue
		}

		result = append(result, zap.Any(field.Key, field.Value))
	}

	return result
}

// Debug implements the logger.Logger interface.
func (l *Logger) Debug(msg string, fields ...logger.Field) {
	(*zap.Logger)(l).Debug(msg, zapFields(fields)...)
}

// Info implements the logger.Logger interface.
func (l *Logger) Info(msg string, fields ...logger.Field) {
	(*zap.Logger)(l).Info(msg, zapFields(fields)...)
}

// Error implements the logger.Logger interface.
func (l *Logger) Error(msg string, fields ...logger.Field) {
	(*zap.Logger)(l).Error(msg, zapFields(fields)...)
}

// Wrap returns the zap.Logger as a logger.Logger.
func Wrap(l *zap.Logger) *Logger {
	return (*Logger)(l)
}
