package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("trace finished", "events", 3, "limited", false)
	l.Debug("walk finished", "examined", 10)

	out := buf.String()
	assert.Contains(t, out, "INFO trace finished events=3 limited=false\n")
	assert.Contains(t, out, "DEBUG walk finished examined=10\n")
}

func TestWriterLoggerOddArgs(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Info("oops", "only-key")
	assert.Contains(t, buf.String(), "INVALID_ARGS")
}

func TestDiscard(t *testing.T) {
	// must not panic and must write nowhere
	Discard().Info("nothing", "k", "v")
	Discard().Debug("nothing")
}
