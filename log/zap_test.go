// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// extractMessage returns the message of the first log entry in the buffer
func extractMessage(data []byte) (string, error) {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(firstLine(data), &entry); err != nil {
		return "", err
	}
	var msg string
	if err := json.Unmarshal(entry["msg"], &msg); err != nil {
		return "", err
	}
	return msg, nil
}

// extractLevel returns the level of the first log entry in the buffer
func extractLevel(data []byte) (string, error) {
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(firstLine(data), &entry); err != nil {
		return "", err
	}
	var level string
	if err := json.Unmarshal(entry["level"], &level); err != nil {
		return "", err
	}
	return level, nil
}

func firstLine(data []byte) []byte {
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		return data[:idx]
	}
	return data
}

func TestZapLogger(t *testing.T) {
	t.Run("With debug level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debug("test debug")
		actual, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, "test debug", actual)

		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, strings.ToLower(DebugLevel.String()), lvl)
	})
	t.Run("With info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)

		// debug entries are suppressed
		logger.Debugf("hidden %s", "entry")
		require.Zero(t, buffer.Len())

		logger.Infof("test %s", "info")
		actual, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, "test info", actual)
	})
	t.Run("With warning level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)

		logger.Warn("test warning")
		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, "warn", lvl)
	})
	t.Run("With error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)

		logger.Errorf("test %s", "error")
		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, strings.ToLower(ErrorLevel.String()), lvl)
	})
	t.Run("With invalid level defaults to info", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(Level(42), buffer)
		require.Equal(t, InfoLevel, logger.LogLevel())
	})
	t.Run("With no writer defaults to stdout", func(t *testing.T) {
		logger := NewZap(InfoLevel)
		require.Len(t, logger.LogOutput(), 1)
	})
}

func TestLogWith(t *testing.T) {
	t.Run("With adds structured fields to output", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("actor", "counter", "attempts", 3).Info("started successfully")

		var entry map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(firstLine(buffer.Bytes()), &entry))
		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		require.Equal(t, "started successfully", msg)
		require.Contains(t, entry, "actor")
		require.Contains(t, entry, "attempts")
	})
	t.Run("With returns same logger when keyValues empty", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		withLogger := logger.With()
		assert.Equal(t, logger, withLogger)
	})
	t.Run("With odd keyValues uses _ for orphan", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")

		var entry map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(firstLine(buffer.Bytes()), &entry))
		require.Contains(t, entry, "a")
		require.Contains(t, entry, "_")
	})
	t.Run("With skips non-string keys", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		withLogger := logger.With(42, "value")
		assert.Equal(t, logger, withLogger)
	})
	t.Run("DiscardLogger.With returns DiscardLogger", func(t *testing.T) {
		result := DiscardLogger.With("actor", "test")
		assert.Equal(t, DiscardLogger, result)
	})
}

func TestDiscardLogger(t *testing.T) {
	// none of these should produce output or panic
	DiscardLogger.Debug("debug")
	DiscardLogger.Debugf("debug %d", 1)
	DiscardLogger.Info("info")
	DiscardLogger.Infof("info %d", 1)
	DiscardLogger.Warn("warn")
	DiscardLogger.Warnf("warn %d", 1)
	DiscardLogger.Error("error")
	DiscardLogger.Errorf("error %d", 1)

	assert.Equal(t, InfoLevel, DiscardLogger.LogLevel())
	assert.NotNil(t, DiscardLogger.StdLogger())
	assert.Len(t, DiscardLogger.LogOutput(), 1)

	assert.Panics(t, func() { DiscardLogger.Panic("boom") })
	assert.Panics(t, func() { DiscardLogger.Panicf("boom %d", 1) })
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARNING", WarningLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "FATAL", FatalLevel.String())
	assert.Equal(t, "PANIC", PanicLevel.String())
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "UNKNOWN", InvalidLevel.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestStdLogger(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	std := logger.StdLogger()
	require.NotNil(t, std)

	std.Print("through std logger")
	msg, err := extractMessage(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, "through std logger", msg)
}
