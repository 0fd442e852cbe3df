package integrity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is an explicit or implied null (YAML `~`, empty value).
	KindNull Kind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindInt is an integer scalar.
	KindInt
	// KindFloat is a floating point scalar.
	KindFloat
	// KindString is a string scalar.
	KindString
	// KindTimestamp is a date or datetime scalar.
	KindTimestamp
	// KindSeq is an ordered sequence.
	KindSeq
	// KindMap is a mapping with ordered entries.
	KindMap
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTimestamp:
		return "timestamp"
	case KindSeq:
		return "list"
	case KindMap:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is an immutable node of loaded dataset content.
//
// The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	t       time.Time
	items   []Value
	entries []Entry
}

// Entry is a single key/value pair of a mapping. Keys are Values so that
// non-string keys survive loading and can be reported.
type Entry struct {
	Key   Value
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Timestamp returns a timestamp value. raw is the literal as written in the
// source document and is used for display.
func Timestamp(t time.Time, raw string) Value {
	return Value{kind: KindTimestamp, t: t, s: raw}
}

// Seq returns a sequence of the given items.
func Seq(items ...Value) Value {
	return Value{kind: KindSeq, items: items}
}

// Map returns a mapping with entries in the given order.
func Map(entries ...Entry) Value {
	return Value{kind: KindMap, entries: entries}
}

// E builds a mapping entry from Go values, see Of.
func E(key, value any) Entry {
	return Entry{Key: Of(key), Value: Of(value)}
}

// Of converts plain Go data into a Value. Maps with string keys are ordered
// by key; use Map with E to control definition order.
func Of(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int64:
		return Int(v)
	case float64:
		return Float(v)
	case string:
		return String(v)
	case time.Time:
		return Timestamp(v, v.Format(time.RFC3339))
	case []Value:
		return Seq(v...)
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = Of(item)
		}
		return Seq(items...)
	case []string:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = String(item)
		}
		return Seq(items...)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: String(k), Value: Of(v[k])}
		}
		return Map(entries...)
	case map[any]any:
		entries := make([]Entry, 0, len(v))
		for k, val := range v {
			entries = append(entries, Entry{Key: Of(k), Value: Of(val)})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Key.Repr() < entries[j].Key.Repr()
		})
		return Map(entries...)
	default:
		panic(fmt.Sprintf("integrity: cannot convert %T to Value", x))
	}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Truthy reports whether v counts as provided. Null, false, zero numbers, the
// empty string and empty collections are not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	case KindTimestamp:
		return true
	case KindSeq:
		return len(v.items) > 0
	case KindMap:
		return len(v.entries) > 0
	default:
		return false
	}
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// BoolValue returns the boolean held by v.
func (v Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// IntValue returns the integer held by v.
func (v Value) IntValue() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Items returns the elements of a sequence, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindSeq {
		return nil
	}
	return v.items
}

// Entries returns the entries of a mapping in definition order, or nil for
// any other kind.
func (v Value) Entries() []Entry {
	if v.kind != KindMap {
		return nil
	}
	return v.entries
}

// Len returns the number of items or entries of a collection.
func (v Value) Len() int {
	switch v.kind {
	case KindSeq:
		return len(v.items)
	case KindMap:
		return len(v.entries)
	default:
		return 0
	}
}

// Lookup returns the value stored under the string key, and whether the key
// is present at all. Lookup on a non-mapping reports absent.
func (v Value) Lookup(key string) (Value, bool) {
	for _, e := range v.Entries() {
		if s, ok := e.Key.Str(); ok && s == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Field returns the value stored under key when it is present and truthy.
// An absent key and an explicitly empty value both report false.
func (v Value) Field(key string) (Value, bool) {
	val, ok := v.Lookup(key)
	if !ok || !val.Truthy() {
		return Value{}, false
	}
	return val, true
}

// Has reports whether the mapping has a string key equal to key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// Repr renders v the way it is quoted in violation messages: strings in
// single quotes, None for null, True/False for booleans.
func (v Value) Repr() string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return quote(v.s)
	case KindTimestamp:
		return v.s
	case KindSeq:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.entries))
		for i, e := range v.entries {
			parts[i] = e.Key.Repr() + ": " + e.Value.Repr()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "?"
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == KindString {
		return v.s
	}
	return v.Repr()
}

// quote renders s as a quoted literal: single quotes unless s
// contains a single quote and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
