package logbook

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Level is a log severity. Levels are totally ordered:
// debug < info < notice < warning < error < critical.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarning
	LevelError
	LevelCritical
)

// Pre-computed names, indexed by Level.
var levelNames = [...]string{"DEBUG", "INFO", "NOTICE", "WARNING", "ERROR", "CRITICAL"}

// String returns the upper-case name of the level as it appears in file
// records and console output.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLevel parses a case-insensitive level name ("debug" .. "critical").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "notice":
		return LevelNotice, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	}
	return LevelDebug, errors.New(errMsgUnknownLevel + " (" + s + ")")
}

// zerologLevel maps a Level to the nearest zerolog severity. Notice has no
// native counterpart and maps to info; critical maps to fatal but is always
// emitted via WithLevel so the process never exits.
func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo, LevelNotice:
		return zerolog.InfoLevel
	case LevelWarning:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelCritical:
		return zerolog.FatalLevel
	}
	return zerolog.NoLevel
}

// LevelSet is an immutable set of levels used as a destination's hard gate.
// The zero value is the empty set, which accepts nothing.
type LevelSet uint8

// Levels builds a set containing exactly the given levels.
func Levels(levels ...Level) LevelSet {
	var s LevelSet
	for _, l := range levels {
		s |= 1 << l
	}
	return s
}

// AllLevels returns the set accepting every level.
func AllLevels() LevelSet {
	return LevelsFrom(LevelDebug)
}

// LevelsFrom returns the set of every level at or above min.
func LevelsFrom(min Level) LevelSet {
	var s LevelSet
	for l := min; l <= LevelCritical; l++ {
		s |= 1 << l
	}
	return s
}

// Contains reports whether l is a member of the set.
func (s LevelSet) Contains(l Level) bool {
	return s&(1<<l) != 0
}

// Slice returns the members in ascending severity order.
func (s LevelSet) Slice() []Level {
	var out []Level
	for l := LevelDebug; l <= LevelCritical; l++ {
		if s.Contains(l) {
			out = append(out, l)
		}
	}
	return out
}
