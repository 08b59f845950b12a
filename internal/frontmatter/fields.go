package frontmatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// Fields is an insertion-ordered map of front-matter keys to values.
// The zero Fields is empty and ready to use.
type Fields struct {
	keys   []string
	values map[string]Value
}

// NewFields creates an empty Fields.
func NewFields() Fields {
	return Fields{values: map[string]Value{}}
}

// FieldsFromMap converts decoded JSON arguments. Keys are sorted because Go
// maps carry no order.
func FieldsFromMap(m map[string]any) (Fields, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f := NewFields()
	for _, k := range keys {
		v, err := ValueFromAny(m[k])
		if err != nil {
			return Fields{}, fmt.Errorf("field %q: %w", k, err)
		}
		f.Set(k, v)
	}
	return f, nil
}

// Len returns the number of keys.
func (f Fields) Len() int { return len(f.keys) }

// Keys returns keys in order.
func (f Fields) Keys() []string { return slices.Clone(f.keys) }

// Get returns the value stored under key.
func (f Fields) Get(key string) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Set stores v under key, keeping the key's position if it already exists.
func (f *Fields) Set(key string, v Value) {
	if f.values == nil {
		f.values = map[string]Value{}
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
}

// Delete removes key. It reports whether the key was present.
func (f *Fields) Delete(key string) bool {
	if _, ok := f.values[key]; !ok {
		return false
	}
	delete(f.values, key)
	f.keys = slices.DeleteFunc(f.keys, func(k string) bool { return k == key })
	return true
}

// Rename moves the value under oldKey to newKey in place. An existing
// newKey entry is overwritten. It reports whether oldKey was present.
func (f *Fields) Rename(oldKey, newKey string) bool {
	v, ok := f.values[oldKey]
	if !ok {
		return false
	}
	if oldKey == newKey {
		return true
	}
	if f.Has(newKey) {
		f.Delete(newKey)
	}
	idx := slices.Index(f.keys, oldKey)
	f.keys[idx] = newKey
	delete(f.values, oldKey)
	f.values[newKey] = v
	return true
}

// Merge overwrites f with every entry of other, in other's order.
func (f *Fields) Merge(other Fields) {
	for _, k := range other.keys {
		f.Set(k, other.values[k])
	}
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	c := NewFields()
	for _, k := range f.keys {
		c.Set(k, f.values[k])
	}
	return c
}

// Equal compares keys, order and values.
func (f Fields) Equal(o Fields) bool {
	if !slices.Equal(f.keys, o.keys) {
		return false
	}
	for _, k := range f.keys {
		if !f.values[k].Equal(o.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes f as a JSON object in key order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object.
func (f *Fields) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := FieldsFromMap(m)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
