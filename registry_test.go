package logbook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closableDestination tracks Close calls for registry teardown tests.
type closableDestination struct {
	captureDestination
	closeErr    error
	closedCount int
}

func (c *closableDestination) Close() error {
	c.closedCount++
	return c.closeErr
}

func TestNewRegistry(t *testing.T) {
	t.Run("requires a subsystem", func(t *testing.T) {
		_, err := NewRegistry("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgEmptySubsystem)
	})

	t.Run("binds subsystem and destinations", func(t *testing.T) {
		dest := newCaptureDestination(AllLevels())
		reg, err := NewRegistry("com.example.app", dest)
		require.NoError(t, err)
		assert.Equal(t, "com.example.app", reg.Subsystem())
		assert.Len(t, reg.Destinations(), 1)
	})
}

func TestRegistry_Category(t *testing.T) {
	t.Run("same name shares one router", func(t *testing.T) {
		reg, err := NewRegistry("com.example.app")
		require.NoError(t, err)

		a := reg.Category("network")
		b := reg.Category("network")
		assert.Same(t, a.router, b.router)

		c := reg.Category("storage")
		assert.NotSame(t, a.router, c.router)
	})

	t.Run("logger carries subsystem and category", func(t *testing.T) {
		dest := newCaptureDestination(AllLevels())
		reg, err := NewRegistry("com.example.app", dest)
		require.NoError(t, err)

		log := reg.Category("network")
		assert.Equal(t, "network", log.Category())
		log.Info("up")

		records := dest.captured()
		require.Len(t, records, 1)
		assert.Equal(t, "com.example.app", records[0].subsystem)
		assert.Equal(t, "network", records[0].category)
	})

	t.Run("nil registry yields a usable no-op", func(t *testing.T) {
		var reg *Registry
		log := reg.Category("anything")
		require.NotNil(t, log)
		assert.NotPanics(t, func() { log.Error("dropped") })
	})
}

func TestLogger_LevelHelpers(t *testing.T) {
	dest := newCaptureDestination(AllLevels())
	reg, err := NewRegistry("app", dest)
	require.NoError(t, err)
	log := reg.Category("cat")

	log.Debug("d")
	log.Info("i")
	log.Notice("n")
	log.Warning("w")
	log.Error("e")
	log.Critical("c")

	records := dest.captured()
	require.Len(t, records, 6)
	want := []Level{LevelDebug, LevelInfo, LevelNotice, LevelWarning, LevelError, LevelCritical}
	for i, r := range records {
		assert.Equal(t, want[i], r.level)
	}
}

func TestLogger_OptionalMetadata(t *testing.T) {
	dest := newCaptureDestination(AllLevels())
	reg, err := NewRegistry("app", dest)
	require.NoError(t, err)
	log := reg.Category("cat")

	log.Info("bare")
	log.Info("tagged", New(map[string]any{"k": "v"}))

	records := dest.captured()
	require.Len(t, records, 2)
	assert.Zero(t, records[0].meta.Len())
	assert.Equal(t, 1, records[1].meta.Len())
}

func TestRegistry_Close(t *testing.T) {
	t.Run("closes closable destinations", func(t *testing.T) {
		closable := &closableDestination{captureDestination: captureDestination{levels: AllLevels()}}
		plain := newCaptureDestination(AllLevels())
		reg, err := NewRegistry("app", closable, plain)
		require.NoError(t, err)

		require.NoError(t, reg.Close())
		assert.Equal(t, 1, closable.closedCount)
	})

	t.Run("idempotent", func(t *testing.T) {
		closable := &closableDestination{captureDestination: captureDestination{levels: AllLevels()}}
		reg, err := NewRegistry("app", closable)
		require.NoError(t, err)

		require.NoError(t, reg.Close())
		require.NoError(t, reg.Close())
		assert.Equal(t, 1, closable.closedCount)
	})

	t.Run("collects destination errors", func(t *testing.T) {
		boom := errors.New("flush failed")
		closable := &closableDestination{
			captureDestination: captureDestination{levels: AllLevels()},
			closeErr:           boom,
		}
		reg, err := NewRegistry("app", closable)
		require.NoError(t, err)

		assert.ErrorIs(t, reg.Close(), boom)
	})

	t.Run("closed registry yields no-op loggers", func(t *testing.T) {
		dest := newCaptureDestination(AllLevels())
		reg, err := NewRegistry("app", dest)
		require.NoError(t, err)
		require.NoError(t, reg.Close())

		log := reg.Category("cat")
		log.Info("dropped")
		assert.Empty(t, dest.captured())
	})

	t.Run("nil registry", func(t *testing.T) {
		var reg *Registry
		assert.NoError(t, reg.Close())
	})
}
