package logbook

import (
	"strings"
	"time"
)

// Destination is a sink that receives log records. Implementations must
// uphold the level gate themselves: a record whose level is not in
// AcceptedLevels produces no observable effect, and Log must never panic
// or surface an error to the call site. Structured metadata support is
// optional; sinks without it log the message only.
type Destination interface {
	// AcceptedLevels is the destination's immutable level filter.
	AcceptedLevels() LevelSet

	// Log delivers one record. Best-effort: failures are swallowed.
	Log(subsystem, category string, level Level, message string, meta Metadata)
}

// formatLine renders the on-disk record format shared by the file-backed
// destinations:
//
//	<timestamp>\t[<LEVEL>]\t[<category>] <message>
//
// Formatted metadata, when present and wanted, is appended after the
// message. Newlines in the message are flattened to keep the store
// line-oriented.
func formatLine(ts time.Time, level Level, category, message string, meta Metadata) string {
	var b strings.Builder
	b.WriteString(ts.Format(fileTimeLayout))
	b.WriteString("\t[")
	b.WriteString(level.String())
	b.WriteString("]\t[")
	b.WriteString(category)
	b.WriteString("] ")
	b.WriteString(flattenNewlines(message))
	if meta.Len() > 0 {
		b.WriteByte(' ')
		b.WriteString(flattenNewlines(meta.Formatted()))
	}
	return b.String()
}

func flattenNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
