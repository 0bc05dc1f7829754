package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestCreateLogFilePath(t *testing.T) {
	ts := NewMockClocker().Now()
	assert.Equal(t, filepath.Join("logs", "20230702.000000.prod.log"), CreateLogFilePath("logs", true, ts))
	assert.Equal(t, filepath.Join("logs", "20230702.000000.dev.log"), CreateLogFilePath("logs", false, ts))
}

func TestRSyncWrite(t *testing.T) {
	dir := t.TempDir()
	clock := NewMockClocker()
	w := NewRSyncWriter(&Config{LogFolder: dir, LogMaxSize: 1, IsProduction: true}, clock)
	defer w.Close()

	t.Run("sync before any write", func(t *testing.T) {
		assert.NoError(t, w.Sync())
	})

	t.Run("reject too large entry", func(t *testing.T) {
		_, err := w.Write(make([]byte, 2*1048576))
		assert.Error(t, err)
	})

	t.Run("rotate on max size", func(t *testing.T) {
		chunk := []byte(strings.Repeat("x", 700*1024))
		n, err := w.Write(chunk)
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)

		clock.MockNow = clock.MockNow.Add(time.Second)
		_, err = w.Write(chunk)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestSetupLogging(t *testing.T) {
	dir := t.TempDir()
	config := &Config{
		IsProduction: true,
		LogLevel:     zapcore.InfoLevel,
		LogFolder:    dir,
		LogMaxSize:   1,
		GitCommit:    "abc123",
	}
	clock := NewMockClocker()
	w := NewRSyncWriter(config, clock)
	defer w.Close()

	logger, flusher := SetupLogging(config, w, NewTickClock(clock), "s:test")
	logger.Debug("hidden")
	logger.Info("The library is empty.")
	require.NoError(t, flusher())

	data, err := os.ReadFile(filepath.Join(dir, "20230702.000000.prod.log"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"msg":"The library is empty."`)
	assert.Contains(t, content, `"app.session":"s:test"`)
	assert.Contains(t, content, `"app.commit":"abc123"`)
	assert.Contains(t, content, `"ts":"2023-07-02T00:00:00.000Z"`)
	assert.NotContains(t, content, "hidden")
}

func TestNewConsoleCore(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := zap.New(NewConsoleCore(zapcore.InfoLevel, zapcore.AddSync(buf)), zap.AddCaller())

	logger.Debug("hidden")
	logger.Info("Title: Dune, Author: Herbert, Year: 1965")

	assert.Equal(t, "INFO\tTitle: Dune, Author: Herbert, Year: 1965\n", buf.String())
}

func TestSetupLogging_Development(t *testing.T) {
	dir := t.TempDir()
	config := &Config{
		LogLevel:   zapcore.InfoLevel,
		LogFolder:  dir,
		LogMaxSize: 1,
	}
	clock := NewMockClocker()
	w := NewRSyncWriter(config, clock)
	defer w.Close()

	logger, flusher := SetupLogging(config, w, NewTickClock(clock), "s:dev")
	logger.Info("The library is empty.")
	require.NoError(t, flusher())

	data, err := os.ReadFile(filepath.Join(dir, "20230702.000000.dev.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"The library is empty."`)
	assert.Contains(t, string(data), `"app.session":"s:dev"`)
}
