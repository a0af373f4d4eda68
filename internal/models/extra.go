// ABOUTME: JSON helpers that carry unmodeled record fields through decode/encode.
// ABOUTME: Keeps a load-then-save round trip from stripping anything a document held.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Extra holds the fields of a JSON object that the Go type does not model.
type Extra map[string]json.RawMessage

// Clone returns a copy of the map. Raw values are never mutated in place,
// so sharing the underlying bytes is safe.
func (e Extra) Clone() Extra {
	if len(e) == 0 {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// String returns the extra value for key when it is a JSON string.
func (e Extra) String(key string) (string, bool) {
	raw, ok := e[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// splitExtra decodes data into v and returns every top-level key of the
// object that is not listed in known.
func splitExtra(data []byte, v any, known []string) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return Extra(all), nil
}

// joinExtra marshals v and appends the extra fields after the modeled ones,
// in key order, so output stays deterministic.
func joinExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[len(data)-1] != '}' {
		return nil, fmt.Errorf("join extra fields: expected JSON object")
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	first := len(data) == 2
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
