package record

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ParseTOML decodes a TOML document into a Record. Keys keep the order in which
// they appear in the document; tables become nested records and arrays of
// tables become []any of records.
func ParseTOML(data []byte) (Record, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Record{}, err
	}

	order := make(map[string]int)
	for i, key := range meta.Keys() {
		path := strings.Join(key, ".")
		if _, seen := order[path]; !seen {
			order[path] = i
		}
	}
	return fromOrderedMap(raw, "", order), nil
}

func fromOrderedMap(m map[string]any, prefix string, order map[string]int) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		oi, iok := order[prefix+keys[i]]
		oj, jok := order[prefix+keys[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})

	r := Record{keys: keys, values: make(map[string]any, len(keys))}
	for _, k := range keys {
		r.values[k] = fromOrderedValue(m[k], prefix+k+".", order)
	}
	return r
}

func fromOrderedValue(v any, prefix string, order map[string]int) any {
	switch val := v.(type) {
	case map[string]any:
		return fromOrderedMap(val, prefix, order)
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromOrderedMap(item, prefix, order)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromOrderedValue(item, prefix, order)
		}
		return out
	default:
		return v
	}
}
