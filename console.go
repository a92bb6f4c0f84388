package logbook

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ConsoleDestination writes records synchronously to the terminal. On an
// interactive stderr it routes through zerolog's console writer with the
// level mapped to the nearest native severity; in constrained environments
// (stderr not a terminal, or LOGBOOK_PLAIN set) it falls back to a plain
// formatted line on stdout. Delivery is best-effort, no buffering, no
// retry.
type ConsoleDestination struct {
	levels LevelSet
	plain  bool
	out    io.Writer // plain-mode writer
	logger zerolog.Logger
}

// NewConsoleDestination builds a console sink accepting the given levels.
func NewConsoleDestination(levels LevelSet) *ConsoleDestination {
	plain := os.Getenv("LOGBOOK_PLAIN") != emptyString ||
		!isatty.IsTerminal(os.Stderr.Fd())
	return newConsoleDestination(levels, plain, os.Stdout)
}

func newConsoleDestination(levels LevelSet, plain bool, out io.Writer) *ConsoleDestination {
	return &ConsoleDestination{
		levels: levelsOrAll(levels),
		plain:  plain,
		out:    out,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
}

func (c *ConsoleDestination) AcceptedLevels() LevelSet {
	if c == nil {
		return 0
	}
	return c.levels
}

func (c *ConsoleDestination) Log(subsystem, category string, level Level, message string, meta Metadata) {
	if c == nil || !c.levels.Contains(level) {
		return
	}

	if c.plain {
		if meta.Len() > 0 {
			_, _ = fmt.Fprintf(c.out, "[%s][%s][%s] %s %s\n", level, subsystem, category, message, meta.Formatted())
		} else {
			_, _ = fmt.Fprintf(c.out, "[%s][%s][%s] %s\n", level, subsystem, category, message)
		}
		return
	}

	ev := c.logger.WithLevel(level.zerologLevel()).
		Str("subsystem", subsystem).
		Str("category", category)
	if meta.Len() > 0 {
		ev = ev.RawJSON("metadata", []byte(meta.JSON()))
	}
	ev.Msg(message)
}
