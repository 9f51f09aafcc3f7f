package iologger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/config"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, config.LogConfig{Format: "json", Level: "warn"})
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))

	slog.New(h).Warn("refresh", "rows", 3)
	assert.Contains(t, buf.String(), `"rows":3`)

	buf.Reset()
	h = NewHandler(&buf, config.LogConfig{Format: "text", Level: "debug"})
	slog.New(h).Debug("cascade", "nodes", 2)
	assert.Contains(t, buf.String(), "nodes=2")
}

func TestInitFile(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first")
	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second")

	bs, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(bs), "first")
	assert.Contains(t, string(bs), "second")

	err = Init(filepath.Join(dir, "missing"), cfg, false)
	require.Error(t, err)
	assert.Equal(t, errcode.CreateLogFileError, errcode.Code(err))
}
