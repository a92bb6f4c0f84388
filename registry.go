package logbook

import (
	"errors"
	"io"
	"sync"

	"go.uber.org/atomic"
)

// Registry is the facade: it binds a subsystem to a destination list and
// resolves named category loggers. Routers are created lazily, one per
// category name, and shared between callers. The registry is an explicit
// map, not a reflective lookup, so the set of categories in use is plain
// Go code at every call site.
type Registry struct {
	subsystem    string
	destinations []Destination

	mu      sync.RWMutex
	routers map[string]*CategoryRouter
	closed  atomic.Bool
}

// NewRegistry builds a registry bound to subsystem (typically the bundle
// or package id) with the given destination list shared by every category.
func NewRegistry(subsystem string, destinations ...Destination) (*Registry, error) {
	if subsystem == emptyString {
		return nil, errors.New(errMsgEmptySubsystem)
	}
	dests := make([]Destination, len(destinations))
	copy(dests, destinations)
	return &Registry{
		subsystem:    subsystem,
		destinations: dests,
		routers:      make(map[string]*CategoryRouter),
	}, nil
}

// Subsystem returns the bound subsystem identifier.
func (r *Registry) Subsystem() string {
	if r == nil {
		return emptyString
	}
	return r.subsystem
}

// Destinations returns a copy of the shared destination list.
func (r *Registry) Destinations() []Destination {
	if r == nil {
		return nil
	}
	out := make([]Destination, len(r.destinations))
	copy(out, r.destinations)
	return out
}

// Category resolves the logger for the named category, creating its router
// on first use. A nil or closed registry yields a no-op logger, so call
// sites never need a nil check.
func (r *Registry) Category(name string) *Logger {
	if r == nil || r.closed.Load() {
		return &Logger{}
	}

	r.mu.RLock()
	router, ok := r.routers[name]
	r.mu.RUnlock()
	if ok {
		return &Logger{subsystem: r.subsystem, router: router}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Double-check after acquiring the write lock
	if router, ok = r.routers[name]; !ok {
		router = NewCategoryRouter(name, r.destinations...)
		r.routers[name] = router
	}
	return &Logger{subsystem: r.subsystem, router: router}
}

// Close closes every destination that supports closing and marks the
// registry closed; subsequent Category calls yield no-op loggers. It is
// safe to call Close multiple times.
func (r *Registry) Close() error {
	if r == nil {
		return nil
	}
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	for _, d := range r.destinations {
		if c, ok := d.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Logger is a category logger bound to (subsystem, category, destination
// list). The zero value is a usable no-op.
type Logger struct {
	subsystem string
	router    *CategoryRouter
}

// Log emits one record at the given level. Metadata is optional; when
// several are passed, the first non-empty one is used.
func (l *Logger) Log(level Level, message string, meta ...Metadata) {
	if l == nil || l.router == nil {
		return
	}
	l.router.Log(l.subsystem, level, message, firstMeta(meta))
}

func (l *Logger) Debug(message string, meta ...Metadata)    { l.Log(LevelDebug, message, meta...) }
func (l *Logger) Info(message string, meta ...Metadata)     { l.Log(LevelInfo, message, meta...) }
func (l *Logger) Notice(message string, meta ...Metadata)   { l.Log(LevelNotice, message, meta...) }
func (l *Logger) Warning(message string, meta ...Metadata)  { l.Log(LevelWarning, message, meta...) }
func (l *Logger) Error(message string, meta ...Metadata)    { l.Log(LevelError, message, meta...) }
func (l *Logger) Critical(message string, meta ...Metadata) { l.Log(LevelCritical, message, meta...) }

// Category returns the bound category name.
func (l *Logger) Category() string {
	if l == nil {
		return emptyString
	}
	return l.router.Category()
}

func firstMeta(meta []Metadata) Metadata {
	for _, m := range meta {
		if m.Len() > 0 {
			return m
		}
	}
	return Metadata{}
}
