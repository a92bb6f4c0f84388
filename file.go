package logbook

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// fileQueueSize bounds the fire-and-forget write queue. A full queue drops
// the record rather than blocking the caller.
const fileQueueSize = 1024

var (
	// ErrClosed is returned by explicit FileDestination operations after
	// Close.
	ErrClosed = errors.New(errMsgClosed)

	errCloseTimeout = errors.New(errMsgCloseTimeout)
)

// FileConfig configures a FileDestination. Dir and BaseName are required;
// the store lives at Dir/BaseName.log. Zero values select the defaults:
// MaxMessages 800, all levels accepted, 5s close timeout.
type FileConfig struct {
	Dir          string `validate:"required"`
	BaseName     string `validate:"required"`
	MaxMessages  int    `validate:"omitempty,gt=0"`
	Levels       LevelSet
	CloseTimeout time.Duration
}

// FileDestination is a durable, size-bounded, FIFO-pruned append-only log
// store. All file I/O is funneled through a single worker goroutine, so at
// most one file operation executes at a time and concurrent loggers never
// interleave or lose writes. Log is fire-and-forget; ReadLines, ReadAll,
// Clear and EnsureExists are synchronous and observe every write enqueued
// before them.
//
// The file and its parent directory are created lazily on first write or
// via EnsureExists. Scheduled-write I/O errors are swallowed and counted;
// nothing propagates to the logging call site.
type FileDestination struct {
	path         string
	maxMessages  int
	levels       LevelSet
	name         string // metrics label
	closeTimeout time.Duration

	mu     sync.RWMutex
	closed atomic.Bool
	jobs   chan func()
	done   chan struct{}

	// Owned by the worker goroutine. Mirrors the on-disk line set once
	// loaded so steady-state writes skip the re-read; the bytes written
	// stay identical to a naive read-append-trim-rewrite cycle.
	lines  []string
	loaded bool
}

// NewFileDestination validates cfg, applies defaults and starts the worker.
func NewFileDestination(cfg FileConfig) (*FileDestination, error) {
	if err := validateStruct(&cfg); err != nil {
		return nil, err
	}
	if cfg.MaxMessages == 0 {
		cfg.MaxMessages = defaultMaxMessages
	}
	if cfg.Levels == 0 {
		cfg.Levels = AllLevels()
	}
	if cfg.CloseTimeout == 0 {
		cfg.CloseTimeout = defaultCloseTimeout
	}

	d := &FileDestination{
		path:         filepath.Join(cfg.Dir, cfg.BaseName+logFileExt),
		maxMessages:  cfg.MaxMessages,
		levels:       cfg.Levels,
		name:         cfg.BaseName,
		closeTimeout: cfg.CloseTimeout,
		jobs:         make(chan func(), fileQueueSize),
		done:         make(chan struct{}),
	}
	go d.run()
	return d, nil
}

// Path returns the full path of the backing file.
func (d *FileDestination) Path() string {
	if d == nil {
		return emptyString
	}
	return d.path
}

func (d *FileDestination) AcceptedLevels() LevelSet {
	if d == nil {
		return 0
	}
	return d.levels
}

// Log formats the record and schedules the write on the worker. It returns
// immediately; callers needing persisted-and-confirmed semantics should
// follow up with ReadLines. Records below the level gate are rejected
// before any work is queued.
func (d *FileDestination) Log(subsystem, category string, level Level, message string, meta Metadata) {
	if d == nil || !d.levels.Contains(level) {
		return
	}
	line := formatLine(time.Now(), level, category, message, meta)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed.Load() {
		return
	}
	select {
	case d.jobs <- func() { d.write(line) }:
	default:
		recordsDropped.WithLabelValues(d.name).Inc()
	}
}

// ReadLines returns all persisted records, oldest first. A missing file
// yields an empty slice and a nil error.
func (d *FileDestination) ReadLines() ([]string, error) {
	type result struct {
		lines []string
		err   error
	}
	ch := make(chan result, 1)
	if err := d.submit(func() {
		lines, err := d.snapshot()
		ch <- result{lines: lines, err: err}
	}); err != nil {
		return nil, err
	}
	r := <-ch
	return r.lines, r.err
}

// ReadAll returns the raw file content as one string. A missing file
// yields the empty string and a nil error.
func (d *FileDestination) ReadAll() (string, error) {
	lines, err := d.ReadLines()
	if err != nil {
		return emptyString, err
	}
	if len(lines) == 0 {
		return emptyString, nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// Clear deletes the backing file. It succeeds when the file was deleted or
// never existed; subsequent writes recreate the file lazily.
func (d *FileDestination) Clear() error {
	ch := make(chan error, 1)
	if err := d.submit(func() {
		err := os.Remove(d.path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			ch <- err
			return
		}
		d.lines = nil
		d.loaded = true
		ch <- nil
	}); err != nil {
		return err
	}
	return <-ch
}

// EnsureExists creates the parent directory (recursively) and an empty
// file if absent, returning the resulting path.
func (d *FileDestination) EnsureExists() (string, error) {
	ch := make(chan error, 1)
	if err := d.submit(func() {
		if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
			ch <- err
			return
		}
		f, err := os.OpenFile(d.path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			ch <- err
			return
		}
		ch <- f.Close()
	}); err != nil {
		return emptyString, err
	}
	if err := <-ch; err != nil {
		return emptyString, err
	}
	return d.path, nil
}

// Close stops intake and waits up to the configured timeout for queued
// operations to drain. It is safe to call Close multiple times.
func (d *FileDestination) Close() error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	if !d.closed.CompareAndSwap(false, true) {
		d.mu.Unlock()
		return nil
	}
	close(d.jobs)
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-time.After(d.closeTimeout):
		return errCloseTimeout
	}
}

// submit enqueues a synchronous job, blocking until there is queue room.
// The send happens under the read lock so Close cannot close the channel
// mid-send.
func (d *FileDestination) submit(job func()) error {
	if d == nil {
		return ErrClosed
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed.Load() {
		return ErrClosed
	}
	d.jobs <- job
	return nil
}

// run is the single serialization point: jobs execute one at a time in
// enqueue order until Close drains the queue.
func (d *FileDestination) run() {
	for job := range d.jobs {
		job()
	}
	close(d.done)
}

// load populates the in-memory mirror from disk. Worker-only.
func (d *FileDestination) load() error {
	if d.loaded {
		return nil
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.lines = nil
			d.loaded = true
			return nil
		}
		return err
	}
	content := strings.TrimSuffix(string(data), "\n")
	if content == emptyString {
		d.lines = nil
	} else {
		d.lines = strings.Split(content, "\n")
	}
	d.loaded = true
	return nil
}

// snapshot returns a copy of the current line set. Worker-only.
func (d *FileDestination) snapshot() ([]string, error) {
	if err := d.load(); err != nil {
		return nil, err
	}
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out, nil
}

// write appends one line, trims to the newest maxMessages and atomically
// replaces the file. Worker-only; all errors are swallowed and counted so
// a failed write can never destabilize the host.
func (d *FileDestination) write(line string) {
	if err := d.load(); err != nil {
		ioErrors.WithLabelValues(d.name).Inc()
		return
	}

	d.lines = append(d.lines, line)
	if over := len(d.lines) - d.maxMessages; over > 0 {
		kept := make([]string, d.maxMessages)
		copy(kept, d.lines[over:])
		d.lines = kept
		recordsEvicted.WithLabelValues(d.name).Add(float64(over))
	}

	if err := d.flush(); err != nil {
		ioErrors.WithLabelValues(d.name).Inc()
		// Disk may have diverged from the mirror; re-read next time.
		d.loaded = false
		return
	}
	recordsWritten.WithLabelValues(d.name).Inc()
}

// flush writes the joined line set to a unique temp file in the same
// directory and renames it over the store, so a concurrent reader never
// observes a partially written file.
func (d *FileDestination) flush() error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := d.path + ".tmp-" + uuid.NewString()
	data := []byte(strings.Join(d.lines, "\n") + "\n")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, d.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
