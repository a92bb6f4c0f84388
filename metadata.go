package logbook

import (
	"encoding/json"
	stderrs "errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

type valueKind uint8

const (
	kindNull valueKind = iota
	kindString
	kindInt
	kindFloat
	kindBool
	kindArray
	kindObject
)

// Value is a tagged metadata value: string, int, float, bool, an array of
// values or a map of values. Values are immutable once constructed.
type Value struct {
	kind valueKind
	str  string
	num  int64
	fl   float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

func String(s string) Value   { return Value{kind: kindString, str: s} }
func Int(n int64) Value       { return Value{kind: kindInt, num: n} }
func Float(f float64) Value   { return Value{kind: kindFloat, fl: f} }
func Bool(b bool) Value       { return Value{kind: kindBool, b: b} }
func Array(vs ...Value) Value { return Value{kind: kindArray, arr: vs} }

func Object(m map[string]Value) Value {
	return Value{kind: kindObject, obj: m}
}

// MarshalJSON implements json.Marshaler; map keys come out sorted because
// encoding/json sorts map[string]Value keys.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindString:
		return json.Marshal(v.str)
	case kindInt:
		return json.Marshal(v.num)
	case kindFloat:
		return json.Marshal(v.fl)
	case kindBool:
		return json.Marshal(v.b)
	case kindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case kindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.obj)
	}
	return []byte("null"), nil
}

// formatTo renders the human-readable form: strings quoted, arrays in
// [...], objects in {...} with keys sorted.
func (v Value) formatTo(b *strings.Builder) {
	switch v.kind {
	case kindString:
		b.WriteString(strconv.Quote(v.str))
	case kindInt:
		b.WriteString(strconv.FormatInt(v.num, 10))
	case kindFloat:
		b.WriteString(strconv.FormatFloat(v.fl, 'g', -1, 64))
	case kindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case kindArray:
		b.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			e.formatTo(b)
		}
		b.WriteByte(']')
	case kindObject:
		b.WriteByte('{')
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteByte('=')
			v.obj[k].formatTo(b)
		}
		b.WriteByte('}')
	default:
		b.WriteString("nil")
	}
}

// Metadata is an immutable mapping from string keys to tagged values.
// The zero value is empty and safe to use. Construct via New or Builder;
// serialization is deterministic (keys sorted ascending) regardless of
// construction order.
type Metadata struct {
	fields map[string]Value
}

// New converts a plain map into Metadata. Values are converted with the
// same rules as AnyValue; duplicate keys cannot occur in a Go map, and for
// literals the usual last-write-wins applies before New ever sees them.
func New(m map[string]any) Metadata {
	if len(m) == 0 {
		return Metadata{}
	}
	fields := make(map[string]Value, len(m))
	for k, v := range m {
		fields[k] = AnyValue(v)
	}
	return Metadata{fields: fields}
}

// Len returns the number of keys.
func (m Metadata) Len() int { return len(m.fields) }

// Get returns the value stored under key.
func (m Metadata) Get(key string) (Value, bool) {
	v, ok := m.fields[key]
	return v, ok
}

// Keys returns all keys in ascending order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m.fields))
	for k := range m.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Formatted renders space-joined key=value pairs with keys sorted
// ascending. Empty metadata renders as the empty string.
func (m Metadata) Formatted() string {
	if len(m.fields) == 0 {
		return emptyString
	}
	var b strings.Builder
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		m.fields[k].formatTo(&b)
	}
	return b.String()
}

// JSON renders the metadata as a JSON object with keys sorted ascending.
// Serialization never fails the log call: any encoding error degrades to
// "{}".
func (m Metadata) JSON() string {
	if len(m.fields) == 0 {
		return "{}"
	}
	data, err := json.Marshal(m.fields)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Builder assembles Metadata with typed field methods. Builders are not
// safe for concurrent use; the Metadata they produce is.
type Builder struct {
	fields map[string]Value
}

func NewBuilder() *Builder {
	return &Builder{fields: make(map[string]Value)}
}

func (b *Builder) Str(key, val string) *Builder {
	b.fields[key] = String(val)
	return b
}

func (b *Builder) Strs(key string, vals []string) *Builder {
	arr := make([]Value, len(vals))
	for i, v := range vals {
		arr[i] = String(v)
	}
	b.fields[key] = Array(arr...)
	return b
}

func (b *Builder) Int(key string, val int) *Builder {
	b.fields[key] = Int(int64(val))
	return b
}

func (b *Builder) Int64(key string, val int64) *Builder {
	b.fields[key] = Int(val)
	return b
}

func (b *Builder) Float64(key string, val float64) *Builder {
	b.fields[key] = Float(val)
	return b
}

func (b *Builder) Bool(key string, val bool) *Builder {
	b.fields[key] = Bool(val)
	return b
}

func (b *Builder) Time(key string, val time.Time) *Builder {
	b.fields[key] = String(val.Format(time.RFC3339Nano))
	return b
}

func (b *Builder) Dur(key string, val time.Duration) *Builder {
	b.fields[key] = String(val.String())
	return b
}

// Any converts an arbitrary value via AnyValue.
func (b *Builder) Any(key string, val any) *Builder {
	b.fields[key] = AnyValue(val)
	return b
}

// Dict adds a nested object built by fn.
func (b *Builder) Dict(key string, fn func(*Builder)) *Builder {
	nested := NewBuilder()
	fn(nested)
	b.fields[key] = Object(nested.fields)
	return b
}

// Err records err under "error" and enriches the entry with the unwrap
// chain (outermost -> root), the root cause and a joined history string.
// A nil err is a no-op.
func (b *Builder) Err(err error) *Builder {
	if err == nil {
		return b
	}
	b.fields["error"] = String(err.Error())
	chain := errorChain(err)
	if len(chain) > 1 {
		arr := make([]Value, len(chain))
		for i, msg := range chain {
			arr[i] = String(msg)
		}
		b.fields["error_chain"] = Array(arr...)
		b.fields["error_root"] = String(chain[len(chain)-1])
		b.fields["error_history"] = String(joinChain(chain))
	}
	return b
}

// Build returns the accumulated fields as immutable Metadata. The builder
// must not be reused afterwards.
func (b *Builder) Build() Metadata {
	if len(b.fields) == 0 {
		return Metadata{}
	}
	return Metadata{fields: b.fields}
}

// errorChain walks err's unwrap chain and returns the messages from
// outermost to innermost. It guards against excessive depth and repeated
// messages to avoid cycles.
func errorChain(err error) []string {
	const maxDepth = 50
	var chain []string
	seen := map[string]bool{}

	for err != nil && len(chain) < maxDepth {
		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		err = stderrs.Unwrap(err)
	}
	return chain
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	return strings.Join(chain, " -> ")
}
