package logbook

import (
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RollingConfig configures a RollingFileDestination. Dir and BaseName are
// required; the rotation knobs map straight onto lumberjack.
type RollingConfig struct {
	Dir        string `validate:"required"`
	BaseName   string `validate:"required"`
	MaxSizeMB  int    `validate:"omitempty,gt=0"`
	MaxBackups int    `validate:"omitempty,gte=0"`
	MaxAgeDays int    `validate:"omitempty,gte=0"`
	Compress   bool
	Levels     LevelSet
}

// RollingFileDestination is a plain-text sink with size-based rotation for
// long-lived deployments where a line-bounded store is too small. It uses
// the same record format as FileDestination but rotates whole files by
// size instead of pruning lines. Writes are synchronous and best-effort.
type RollingFileDestination struct {
	levels LevelSet
	name   string

	mu sync.Mutex
	w  *lumberjack.Logger
}

// NewRollingFileDestination validates cfg and builds the sink. The file is
// created lazily by lumberjack on first write.
func NewRollingFileDestination(cfg RollingConfig) (*RollingFileDestination, error) {
	if err := validateStruct(&cfg); err != nil {
		return nil, err
	}
	return &RollingFileDestination{
		levels: levelsOrAll(cfg.Levels),
		name:   cfg.BaseName,
		w: &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, cfg.BaseName+logFileExt),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		},
	}, nil
}

func (r *RollingFileDestination) AcceptedLevels() LevelSet {
	if r == nil {
		return 0
	}
	return r.levels
}

func (r *RollingFileDestination) Log(subsystem, category string, level Level, message string, meta Metadata) {
	if r == nil || !r.levels.Contains(level) {
		return
	}
	line := formatLine(time.Now(), level, category, message, meta)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.w.Write([]byte(line + "\n")); err != nil {
		ioErrors.WithLabelValues(r.name).Inc()
	}
}

// Close closes the current rotation file.
func (r *RollingFileDestination) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Close()
}

func levelsOrAll(s LevelSet) LevelSet {
	if s == 0 {
		return AllLevels()
	}
	return s
}
