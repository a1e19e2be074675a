package log

import (
	"bytes"
	"testing"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
)

func TestGologLogger(t *testing.T) {
	var buf bytes.Buffer
	gl := golog.New()
	gl.SetOutput(&buf)
	gl.SetLevel("debug")

	logger := NewGologLogger(gl)
	logger.SetLevel(LevelDebug)

	t.Run("Levels are forwarded", func(t *testing.T) {
		logger.Debug("debug %s", "msg")
		logger.Info("info %s", "msg")
		logger.Warn("warn %s", "msg")
		logger.Error("error %s", "msg")

		out := buf.String()
		assert.Contains(t, out, "debug msg")
		assert.Contains(t, out, "info msg")
		assert.Contains(t, out, "warn msg")
		assert.Contains(t, out, "error msg")
	})

	t.Run("Level filters", func(t *testing.T) {
		buf.Reset()
		logger.SetLevel(LevelError)
		logger.Info("should not appear")
		logger.Error("should appear")

		out := buf.String()
		assert.NotContains(t, out, "should not appear")
		assert.Contains(t, out, "should appear")
		assert.Equal(t, LevelError, logger.GetLevel())
	})
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LevelWarn)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept %d", 1)
	logger.Error("kept %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "[WARN] kept 1")
	assert.Contains(t, out, "[ERROR] kept 2")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "NONE", LevelNone.String())
}
