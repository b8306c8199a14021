// Package logger is the small key/value logger used across git-ombl.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

type Logger interface {
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// New returns a Logger writing one line per call to wr. Args are
// alternating key/value pairs.
func New(wr io.Writer) Logger {
	return &writerLogger{wr: wr}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return discard{}
}

type writerLogger struct {
	wr io.Writer
	mu sync.Mutex
}

func (l *writerLogger) Info(msg string, args ...interface{}) {
	l.log("INFO", msg, args)
}

func (l *writerLogger) Debug(msg string, args ...interface{}) {
	l.log("DEBUG", msg, args)
}

func (l *writerLogger) log(kind string, msg string, args []interface{}) {
	line := kind + " " + msg
	if len(args) != 0 {
		line += " " + formatArgs(args)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.wr, line)
}

func formatArgs(args []interface{}) string {
	if len(args)%2 != 0 {
		return fmt.Sprintf("INVALID_ARGS=%v", args)
	}
	parts := make([]string, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			k = fmt.Sprintf("%v", args[i])
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[i+1]))
	}
	return strings.Join(parts, " ")
}

type discard struct{}

func (discard) Info(msg string, args ...interface{})  {}
func (discard) Debug(msg string, args ...interface{}) {}
