package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// FlatResponses maps response keys to answers and remembers insertion order.
// Setting an existing key replaces the value in place; the key keeps its
// original position.
type FlatResponses struct {
	keys   []string
	values map[string]any
}

// NewFlatResponses returns an empty ordered response map.
func NewFlatResponses() *FlatResponses {
	return &FlatResponses{values: make(map[string]any)}
}

// Set stores value under key.
func (r *FlatResponses) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *FlatResponses) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *FlatResponses) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.keys...)
}

// Len reports the number of keys.
func (r *FlatResponses) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Range calls fn for every entry in order until fn returns false.
func (r *FlatResponses) Range(fn func(key string, value any) bool) {
	if r == nil {
		return
	}
	for _, key := range r.keys {
		if !fn(key, r.values[key]) {
			return
		}
	}
}

// Map returns an unordered copy.
func (r *FlatResponses) Map() map[string]any {
	out := make(map[string]any, r.Len())
	r.Range(func(key string, value any) bool {
		out[key] = value
		return true
	})
	return out
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (r *FlatResponses) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r != nil {
		for i, key := range r.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(r.values[key])
			if err != nil {
				return nil, fmt.Errorf("model: encode response %q: %w", key, err)
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the order keys appear in.
func (r *FlatResponses) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("model: decode responses: %w", err)
	}
	if tok == nil {
		*r = FlatResponses{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("model: decode responses: expected object")
	}

	out := FlatResponses{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("model: decode responses: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("model: decode responses: expected key")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("model: decode response %q: %w", key, err)
		}
		out.Set(key, value)
	}
	*r = out
	return nil
}
