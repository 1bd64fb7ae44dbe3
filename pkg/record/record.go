package record

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Record is an ordered, immutable set of named values.
// The zero value is an empty record ready to use.
type Record struct {
	keys   []string
	values map[string]any
}

// Field is a single key/value pair used to build records.
type Field struct {
	Key   string
	Value any
}

// Of builds a record from alternating key/value arguments.
// It panics if a key is not a string or a value is missing, mirroring the way
// slog treats malformed attribute lists as programming errors.
func Of(kv ...any) Record {
	if len(kv)%2 != 0 {
		panic("record: Of requires an even number of arguments")
	}
	fields := make([]Field, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("record: key at position %d is %T, not string", i, kv[i]))
		}
		fields = append(fields, Field{Key: key, Value: kv[i+1]})
	}
	return FromFields(fields...)
}

// FromFields builds a record from fields. A repeated key keeps its first
// position and its last value.
func FromFields(fields ...Field) Record {
	r := Record{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		if _, exists := r.values[f.Key]; !exists {
			r.keys = append(r.keys, f.Key)
		}
		r.values[f.Key] = f.Value
	}
	return r
}

// FromMap builds a record from a map. Keys are ordered lexically and nested
// map[string]any values are converted to records as well.
func FromMap(m map[string]any) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := Record{keys: keys, values: make(map[string]any, len(m))}
	for _, k := range keys {
		r.values[k] = normalize(m[k])
	}
	return r
}

// As reports whether v is record-shaped and returns it as a Record.
// Records and map[string]any values qualify; everything else does not.
func As(v any) (Record, bool) {
	switch val := v.(type) {
	case Record:
		return val, true
	case *Record:
		if val == nil {
			return Record{}, false
		}
		return *val, true
	case map[string]any:
		return FromMap(val), true
	default:
		return Record{}, false
	}
}

// Is reports whether v is record-shaped.
func Is(v any) bool {
	switch val := v.(type) {
	case Record, map[string]any:
		return true
	case *Record:
		return val != nil
	default:
		return false
	}
}

func normalize(v any) any {
	if m, ok := v.(map[string]any); ok {
		return FromMap(m)
	}
	return v
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}

// Keys returns the field names in insertion order.
// The returned slice is a copy.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Fields returns the record's fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.keys))
	for i, k := range r.keys {
		out[i] = Field{Key: k, Value: r.values[k]}
	}
	return out
}

// With returns a copy of r with key set to value. An existing key keeps its
// position; a new key is appended.
func (r Record) With(key string, value any) Record {
	next := r.clone(1)
	if _, exists := next.values[key]; !exists {
		next.keys = append(next.keys, key)
	}
	next.values[key] = value
	return next
}

// Without returns a copy of r with key removed.
func (r Record) Without(key string) Record {
	if !r.Has(key) {
		return r
	}
	next := Record{
		keys:   make([]string, 0, len(r.keys)-1),
		values: make(map[string]any, len(r.keys)-1),
	}
	for _, k := range r.keys {
		if k == key {
			continue
		}
		next.keys = append(next.keys, k)
		next.values[k] = r.values[k]
	}
	return next
}

// Merge returns a copy of r overlaid with the fields of other, in other's order
// for keys r does not already have.
func (r Record) Merge(other Record) Record {
	next := r.clone(other.Len())
	for _, k := range other.keys {
		if _, exists := next.values[k]; !exists {
			next.keys = append(next.keys, k)
		}
		next.values[k] = other.values[k]
	}
	return next
}

// Map returns the record as a plain map, converting nested records recursively.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		v := r.values[k]
		if nested, ok := v.(Record); ok {
			v = nested.Map()
		}
		out[k] = v
	}
	return out
}

// Equal reports whether both records hold the same keys in the same order with
// deeply equal values.
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		a, b := r.values[k], other.values[k]
		ra, aok := a.(Record)
		rb, bok := b.(Record)
		if aok || bok {
			if !(aok && bok && ra.Equal(rb)) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}

// String renders the record as {k: v, ...} in key order.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, r.values[k])
	}
	b.WriteByte('}')
	return b.String()
}

func (r Record) clone(extra int) Record {
	next := Record{
		keys:   make([]string, len(r.keys), len(r.keys)+extra),
		values: make(map[string]any, len(r.keys)+extra),
	}
	copy(next.keys, r.keys)
	for k, v := range r.values {
		next.values[k] = v
	}
	return next
}
