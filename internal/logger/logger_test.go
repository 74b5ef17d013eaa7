package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trogers1052/lumber-futures/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New(config.LogConfig{Level: "loud", Format: "json", Output: "stdout"})
		require.Error(t, err)
	})

	t.Run("writes to file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(config.LogConfig{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)
		l.Info().Msg("hello")
		assert.FileExists(t, path)
	})
}

func TestJSONFormatFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, zerolog.WarnLevel, "json")

	l.Info().Msg("dropped")
	l.Warn().Str("path", "/graph").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "/graph", entry["path"])
}
