package logbook

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Destination type discriminators used in configuration files.
const (
	DestConsole = "console"
	DestFile    = "file"
	DestRolling = "rolling"
	DestKafka   = "kafka"
)

// Config is the declarative YAML surface for building a Registry.
//
//	subsystem: com.example.app
//	destinations:
//	  - type: console
//	    levels: [info, warning, error, critical]
//	  - type: file
//	    dir: /var/log/example
//	    base_name: diagnostics
//	    max_messages: 800
type Config struct {
	Subsystem    string              `yaml:"subsystem" validate:"required"`
	Destinations []DestinationConfig `yaml:"destinations" validate:"required,min=1,dive"`
}

// DestinationConfig describes one destination entry, discriminated by
// Type. Levels is optional; empty means all levels.
type DestinationConfig struct {
	Type   string   `yaml:"type" validate:"required,oneof=console file rolling kafka"`
	Levels []string `yaml:"levels" validate:"omitempty,dive,oneof=debug info notice warning error critical"`

	// file and rolling
	Dir      string `yaml:"dir"`
	BaseName string `yaml:"base_name"`

	// file
	MaxMessages int `yaml:"max_messages" validate:"omitempty,gt=0"`

	// rolling
	MaxSizeMB  int  `yaml:"max_size_mb" validate:"omitempty,gt=0"`
	MaxBackups int  `yaml:"max_backups" validate:"omitempty,gte=0"`
	MaxAgeDays int  `yaml:"max_age_days" validate:"omitempty,gte=0"`
	Compress   bool `yaml:"compress"`

	// kafka
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validateStruct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Build constructs the Registry described by the config. Configuration
// errors surface here, never from logging calls.
func (c *Config) Build() (*Registry, error) {
	if c == nil {
		return nil, errors.New(errMsgNilConfig)
	}

	dests := make([]Destination, 0, len(c.Destinations))
	for i, dc := range c.Destinations {
		d, err := dc.build()
		if err != nil {
			return nil, fmt.Errorf("destination %d (%s): %w", i, dc.Type, err)
		}
		dests = append(dests, d)
	}
	return NewRegistry(c.Subsystem, dests...)
}

func (dc DestinationConfig) build() (Destination, error) {
	levels, err := parseLevels(dc.Levels)
	if err != nil {
		return nil, err
	}

	switch dc.Type {
	case DestConsole:
		return NewConsoleDestination(levels), nil

	case DestFile:
		if dc.Dir == emptyString {
			return nil, errors.New(errMsgMissingFileDir)
		}
		if dc.BaseName == emptyString {
			return nil, errors.New(errMsgMissingBaseName)
		}
		return NewFileDestination(FileConfig{
			Dir:         dc.Dir,
			BaseName:    dc.BaseName,
			MaxMessages: dc.MaxMessages,
			Levels:      levels,
		})

	case DestRolling:
		if dc.Dir == emptyString {
			return nil, errors.New(errMsgMissingFileDir)
		}
		if dc.BaseName == emptyString {
			return nil, errors.New(errMsgMissingBaseName)
		}
		return NewRollingFileDestination(RollingConfig{
			Dir:        dc.Dir,
			BaseName:   dc.BaseName,
			MaxSizeMB:  dc.MaxSizeMB,
			MaxBackups: dc.MaxBackups,
			MaxAgeDays: dc.MaxAgeDays,
			Compress:   dc.Compress,
			Levels:     levels,
		})

	case DestKafka:
		if len(dc.Brokers) == 0 {
			return nil, errors.New(errMsgMissingBrokers)
		}
		if dc.Topic == emptyString {
			return nil, errors.New(errMsgMissingTopic)
		}
		return NewKafkaDestination(KafkaConfig{
			Brokers: dc.Brokers,
			Topic:   dc.Topic,
			Levels:  levels,
		})
	}
	return nil, errors.New(errMsgUnknownDestType)
}

// parseLevels converts the optional level-name list; empty means all.
func parseLevels(names []string) (LevelSet, error) {
	if len(names) == 0 {
		return AllLevels(), nil
	}
	levels := make([]Level, 0, len(names))
	for _, n := range names {
		l, err := ParseLevel(n)
		if err != nil {
			return 0, err
		}
		levels = append(levels, l)
	}
	return Levels(levels...), nil
}
