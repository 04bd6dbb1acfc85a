package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferLogger_CapturesMessages(t *testing.T) {
	l := NewBufferLogger()

	l.Info("hello %s", "world")
	l.Warn("watch out")
	l.Error("boom %d", 42)
	l.Debug("trace")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "info", Message: "hello world"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "warn", Message: "watch out"}, l.Messages[1])
	assert.Equal(t, LogMessage{Level: "error", Message: "boom 42"}, l.Messages[2])
	assert.Equal(t, LogMessage{Level: "debug", Message: "trace"}, l.Messages[3])
}

func TestBufferLogger_HasLevel(t *testing.T) {
	l := NewBufferLogger()
	assert.False(t, l.HasLevel("warn"))

	l.Warn("uh oh")
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
}

func TestNoop_DoesNotPanic(t *testing.T) {
	l := Noop()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}

func TestNewEnvLogger_DebugGatedByEnv(t *testing.T) {
	// Just exercise both paths; output goes to the standard logger.
	t.Setenv("ANTMON_DEBUG", "")
	l := NewEnvLogger("[test]")
	l.Debug("suppressed")

	t.Setenv("ANTMON_DEBUG", "1")
	l.Debug("printed")
}
