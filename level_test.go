package logbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelDebug < LevelInfo)
	assert.True(t, LevelInfo < LevelNotice)
	assert.True(t, LevelNotice < LevelWarning)
	assert.True(t, LevelWarning < LevelError)
	assert.True(t, LevelError < LevelCritical)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "NOTICE", LevelNotice.String())
	assert.Equal(t, "CRITICAL", LevelCritical.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestParseLevel(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		cases := map[string]Level{
			"debug":    LevelDebug,
			"INFO":     LevelInfo,
			"Notice":   LevelNotice,
			"warning":  LevelWarning,
			"warn":     LevelWarning,
			" error ":  LevelError,
			"critical": LevelCritical,
		}
		for in, want := range cases {
			got, err := ParseLevel(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseLevel("verbose")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verbose")
	})
}

func TestLevelSet(t *testing.T) {
	t.Run("explicit members", func(t *testing.T) {
		s := Levels(LevelWarning, LevelError)
		assert.True(t, s.Contains(LevelWarning))
		assert.True(t, s.Contains(LevelError))
		assert.False(t, s.Contains(LevelDebug))
		assert.False(t, s.Contains(LevelInfo))
		assert.False(t, s.Contains(LevelCritical))
	})

	t.Run("all levels", func(t *testing.T) {
		s := AllLevels()
		for l := LevelDebug; l <= LevelCritical; l++ {
			assert.True(t, s.Contains(l), l)
		}
	})

	t.Run("from minimum", func(t *testing.T) {
		s := LevelsFrom(LevelWarning)
		assert.False(t, s.Contains(LevelInfo))
		assert.False(t, s.Contains(LevelNotice))
		assert.True(t, s.Contains(LevelWarning))
		assert.True(t, s.Contains(LevelCritical))
	})

	t.Run("slice is ordered", func(t *testing.T) {
		s := Levels(LevelCritical, LevelDebug, LevelWarning)
		assert.Equal(t, []Level{LevelDebug, LevelWarning, LevelCritical}, s.Slice())
	})

	t.Run("zero set is empty", func(t *testing.T) {
		var s LevelSet
		assert.False(t, s.Contains(LevelError))
		assert.Nil(t, s.Slice())
	})
}
