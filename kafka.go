package logbook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// KafkaConfig configures a KafkaDestination.
type KafkaConfig struct {
	Brokers []string `validate:"required,min=1"`
	Topic   string   `validate:"required"`
	Levels  LevelSet
}

// kafkaRecord is the JSON document published per accepted record.
type kafkaRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Subsystem string          `json:"subsystem"`
	Category  string          `json:"category"`
	Level     string          `json:"level"`
	Message   string          `json:"message"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// KafkaDestination publishes records to a Kafka topic through an async
// writer, keyed by subsystem so records from one subsystem stay in
// partition order. Fire-and-forget: publish errors are swallowed and
// counted, never surfaced to the logging call site.
type KafkaDestination struct {
	levels LevelSet
	topic  string
	writer *kafka.Writer
}

// NewKafkaDestination validates cfg and builds the sink. No connection is
// attempted until the first accepted record.
func NewKafkaDestination(cfg KafkaConfig) (*KafkaDestination, error) {
	if err := validateStruct(&cfg); err != nil {
		return nil, err
	}
	d := &KafkaDestination{
		levels: levelsOrAll(cfg.Levels),
		topic:  cfg.Topic,
	}
	d.writer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
		Completion: func(_ []kafka.Message, err error) {
			if err != nil {
				ioErrors.WithLabelValues(d.topic).Inc()
			}
		},
	}
	return d, nil
}

func (d *KafkaDestination) AcceptedLevels() LevelSet {
	if d == nil {
		return 0
	}
	return d.levels
}

func (d *KafkaDestination) Log(subsystem, category string, level Level, message string, meta Metadata) {
	if d == nil || d.writer == nil || !d.levels.Contains(level) {
		return
	}

	value, err := json.Marshal(newKafkaRecord(subsystem, category, level, message, meta))
	if err != nil {
		ioErrors.WithLabelValues(d.topic).Inc()
		return
	}

	err = d.writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(subsystem),
			Value: value,
			Time:  time.Now(),
		},
	)
	if err != nil {
		ioErrors.WithLabelValues(d.topic).Inc()
	}
}

// Close flushes and closes the underlying writer.
func (d *KafkaDestination) Close() error {
	if d == nil || d.writer == nil {
		return nil
	}
	return d.writer.Close()
}

func newKafkaRecord(subsystem, category string, level Level, message string, meta Metadata) kafkaRecord {
	rec := kafkaRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Subsystem: subsystem,
		Category:  category,
		Level:     level.String(),
		Message:   message,
	}
	if meta.Len() > 0 {
		rec.Metadata = json.RawMessage(meta.JSON())
	}
	return rec
}
