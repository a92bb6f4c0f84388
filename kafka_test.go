package logbook

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKafkaDestination(t *testing.T) {
	t.Run("requires brokers and topic", func(t *testing.T) {
		_, err := NewKafkaDestination(KafkaConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgConfigInvalid)
	})

	t.Run("builds without connecting", func(t *testing.T) {
		d, err := NewKafkaDestination(KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "app-logs",
			Levels:  Levels(LevelError, LevelCritical),
		})
		require.NoError(t, err)
		defer d.Close()
		assert.True(t, d.AcceptedLevels().Contains(LevelCritical))
		assert.False(t, d.AcceptedLevels().Contains(LevelInfo))
	})
}

func TestKafkaRecordPayload(t *testing.T) {
	t.Run("shape and sorted metadata", func(t *testing.T) {
		rec := newKafkaRecord("com.example", "net", LevelError, "down",
			New(map[string]any{"b": 1, "a": "x"}))

		_, err := uuid.Parse(rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "ERROR", rec.Level)

		data, err := json.Marshal(rec)
		require.NoError(t, err)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, "com.example", parsed["subsystem"])
		assert.Equal(t, "net", parsed["category"])
		assert.Equal(t, "down", parsed["message"])
		assert.Contains(t, string(data), `"metadata":{"a":"x","b":1}`)
	})

	t.Run("empty metadata is omitted", func(t *testing.T) {
		rec := newKafkaRecord("com.example", "net", LevelInfo, "up", Metadata{})
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "metadata")
	})

	t.Run("ids are unique per record", func(t *testing.T) {
		a := newKafkaRecord("s", "c", LevelInfo, "m", Metadata{})
		b := newKafkaRecord("s", "c", LevelInfo, "m", Metadata{})
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestKafkaDestination_LevelGate(t *testing.T) {
	// A filtered record must be rejected before any writer work; a nil
	// writer proves no publish path was reached.
	d := &KafkaDestination{levels: Levels(LevelError), topic: "t"}
	require.NotPanics(t, func() {
		d.Log("app", "cat", LevelInfo, "dropped", Metadata{})
	})

	var nilDest *KafkaDestination
	require.NotPanics(t, func() {
		nilDest.Log("app", "cat", LevelError, "x", Metadata{})
	})
	assert.NoError(t, nilDest.Close())
}
