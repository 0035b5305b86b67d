package middleware

import "encoding/json"

// Data maps a middleware name to the value that middleware last stored.
// Values are opaque to everyone but their owner.
type Data map[string]any

// Clone returns a shallow copy of d.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Lookup returns the slot for name as a T. The second result is false when
// the slot is empty or holds a different type.
func Lookup[T any](d Data, name string) (T, bool) {
	v, ok := d[name].(T)
	return v, ok
}

// Decode is Lookup for data that may have passed through JSON, as in a
// cached result where each slot holds the decoded form (maps, slices,
// float64). It falls back to re-encoding the slot into a T.
func Decode[T any](d Data, name string) (T, bool) {
	if v, ok := Lookup[T](d, name); ok {
		return v, true
	}
	var out T
	raw, ok := d[name]
	if !ok || raw == nil {
		return out, false
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(buf, &out); err != nil {
		return out, false
	}
	return out, true
}
