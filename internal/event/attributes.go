package event

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Attributes is an ordered string keyed bag of values carried by an Event.
// Keys keep the position of their first Set.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes copies values into a new bag. Keys are added in sorted order
// since map iteration order is random.
func NewAttributes(values map[string]any) *Attributes {
	a := &Attributes{values: make(map[string]any, len(values))}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		a.Set(k, values[k])
	}
	return a
}

// Get returns the value for key, or nil when it is unset
func (a *Attributes) Get(key string) any {
	v, _ := a.Lookup(key)
	return v
}

// Lookup returns the value for key and whether it was set
func (a *Attributes) Lookup(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is set
func (a *Attributes) Has(key string) bool {
	_, ok := a.Lookup(key)
	return ok
}

// Set stores value under key
func (a *Attributes) Set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Delete removes key. Deleting an unset key does nothing.
func (a *Attributes) Delete(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the keys in order
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Each calls fn for every key in order until fn returns false
func (a *Attributes) Each(fn func(key string, value any) bool) {
	if a == nil {
		return
	}
	for _, k := range a.keys {
		if !fn(k, a.values[k]) {
			return
		}
	}
}

// Map returns an unordered copy of the bag
func (a *Attributes) Map() map[string]any {
	out := make(map[string]any, a.Len())
	a.Each(func(k string, v any) bool {
		out[k] = v
		return true
	})
	return out
}

// Merge sets every key of other on a, in other's order
func (a *Attributes) Merge(other *Attributes) {
	other.Each(func(k string, v any) bool {
		a.Set(k, v)
		return true
	})
}

// MarshalJSON encodes the bag as a JSON object with keys in order
func (a *Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	var err error
	a.Each(func(k string, v any) bool {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}

		var key, value []byte
		if key, err = json.Marshal(k); err != nil {
			return false
		}
		if value, err = json.Marshal(v); err != nil {
			return false
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
		return true
	})
	if err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
