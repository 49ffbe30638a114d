package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/idraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	logger.now = func() time.Time { return time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC) }
	defer func() { _ = logger.Close() }()

	logger.Info("submit", "created issue #1")

	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, "[2025-12-30 09:32:51] [INFO] [submit] created issue #1\n", string(content))
	assert.Equal(t, domain.LogPath(dataDir), logger.Path())
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("draft", "debug message")
	logger.Info("draft", "info message")
	logger.Warn("store", "warn message")
	logger.Error("auth", "error message")

	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	s := string(content)
	assert.NotContains(t, s, "debug message")
	assert.NotContains(t, s, "info message")
	assert.Contains(t, s, "[WARN] [store] warn message")
	assert.Contains(t, s, "[ERROR] [auth] error message")
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)

	logger.Error("submit", "nothing is written")

	assert.Equal(t, "", logger.Path())
	assert.NoError(t, logger.Close())
}

func TestLogger_Appends(t *testing.T) {
	dataDir := t.TempDir()

	first := New(dataDir, slog.LevelInfo)
	first.Info("draft", "one")
	require.NoError(t, first.Close())

	second := New(dataDir, slog.LevelInfo)
	second.Info("draft", "two")
	require.NoError(t, second.Close())

	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "one"))
	assert.True(t, strings.HasSuffix(lines[1], "two"))
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("auth", "callback")
		}()
	}
	wg.Wait()

	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(string(content), "[auth] callback\n"))
}
