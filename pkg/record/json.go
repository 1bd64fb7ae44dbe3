package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MarshalJSON encodes the record as a JSON object with keys in record order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("record: encode %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
// Nested objects become records; integral numbers become int64 and all other
// numbers float64.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}
	decoded, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

// ParseJSON decodes a JSON object into a Record.
func ParseJSON(data []byte) (Record, error) {
	var r Record
	if err := r.UnmarshalJSON(data); err != nil {
		return Record{}, err
	}
	return r, nil
}

func decodeObject(dec *json.Decoder) (Record, error) {
	r := Record{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, fmt.Errorf("record: expected object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Record{}, fmt.Errorf("record: decode %q: %w", key, err)
		}
		if _, exists := r.values[key]; !exists {
			r.keys = append(r.keys, key)
		}
		r.values[key] = val
	}
	if _, err := dec.Token(); err != nil {
		return Record{}, err
	}
	return r, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			var list []any
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if list == nil {
				list = []any{}
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", v)
		}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return v.Float64()
	default:
		return v, nil
	}
}
