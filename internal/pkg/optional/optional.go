// Package optional distinguishes an absent JSON field from an explicit null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is Set when the key was present in the payload; Null when it was
// present as null.
type Value[T any] struct {
	Set  bool
	Null bool
	V    T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

func (o *Value[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.V = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.V)
}

// Ptr returns nil for null, a pointer to the value otherwise. Only meaningful
// when Set.
func (o Value[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.V
	return &v
}
