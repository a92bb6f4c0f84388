package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRollingFileDestination(t *testing.T) {
	t.Run("requires dir and base name", func(t *testing.T) {
		_, err := NewRollingFileDestination(RollingConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgConfigInvalid)
	})

	t.Run("empty level set defaults to all", func(t *testing.T) {
		r, err := NewRollingFileDestination(RollingConfig{Dir: t.TempDir(), BaseName: "app"})
		require.NoError(t, err)
		defer r.Close()
		assert.Equal(t, AllLevels(), r.AcceptedLevels())
	})
}

func TestRollingFileDestination_Log(t *testing.T) {
	t.Run("writes the shared record format", func(t *testing.T) {
		dir := t.TempDir()
		r, err := NewRollingFileDestination(RollingConfig{Dir: dir, BaseName: "app", MaxSizeMB: 1})
		require.NoError(t, err)
		defer r.Close()

		r.Log("com.example", "net", LevelWarning, "slow", New(map[string]any{"ms": 1200}))

		raw, err := os.ReadFile(filepath.Join(dir, "app"+logFileExt))
		require.NoError(t, err)
		line := strings.TrimSuffix(string(raw), "\n")
		assert.Regexp(t, fileLineRe, line)
		assert.True(t, strings.HasSuffix(line, "[net] slow ms=1200"), line)
	})

	t.Run("level gate produces no file", func(t *testing.T) {
		dir := t.TempDir()
		r, err := NewRollingFileDestination(RollingConfig{
			Dir:      dir,
			BaseName: "app",
			Levels:   Levels(LevelError),
		})
		require.NoError(t, err)
		defer r.Close()

		r.Log("com.example", "net", LevelInfo, "dropped", Metadata{})

		_, statErr := os.Stat(filepath.Join(dir, "app"+logFileExt))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("nil destination", func(t *testing.T) {
		var r *RollingFileDestination
		require.NotPanics(t, func() {
			r.Log("app", "cat", LevelInfo, "x", Metadata{})
		})
		assert.NoError(t, r.Close())
	})
}
