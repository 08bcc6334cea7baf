package logger

import (
	"fmt"
	"strings"
	"testing"
)

var _ Logger = Test{}

// Test is a Logger that prints entries through a testing.TB instance,
// so that they only show up for failing or verbose tests.
type Test struct{ tb testing.TB }

// NewTest returns a new Logger backed by the provided testing.TB.
func NewTest(tb testing.TB) Test {
	return Test{tb: tb}
}

func (t Test) log(level, msg string, fields []Field) {
	t.tb.Helper()

	var sb strings.Builder
	for _, field := range fields {
		fmt.Fprintf(&sb, " %s=%v", field.Key, field.Value)
	}

	t.tb.Logf("[%s] %s%s", level, msg, sb.String())
}

// Debug implements the logger.Logger interface.
func (t Test) Debug(msg string, fields ...Field) { t.log("debug", msg, fields) }

// Info implements the logger.Logger interface.
func (t Test) Info(msg string, fields ...Field) { t.log("info", msg, fields) }

// Error implements the logger.Logger interface.
func (t Test) Error(msg string, fields ...Field) { t.log("error", msg, fields) }
