package helpers

import (
	"bytes"
	"encoding/json"
)

// Optional decodes a JSON field while remembering whether it was present
// and whether it was an explicit null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// Present reports whether the field carried a non-null value.
func (o Optional[T]) Present() bool { return o.Set && !o.Null }

// Ptr returns a pointer to the value when present, nil otherwise.
func (o Optional[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}
