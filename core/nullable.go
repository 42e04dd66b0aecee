package core

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes an omitted field (Present == false) from an
// explicit null (Present && !Valid) and from a value (Present && Valid).
type Nullable[T any] struct {
	Present bool
	Valid   bool
	Value   T
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Present: true, Valid: true, Value: v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Present: true}
}

// Ptr returns nil for an explicit null, otherwise a pointer to a copy of Value.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// UnmarshalJSON is only invoked when the key is present in the payload,
// which is what makes the omitted/null distinction possible.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Valid = false
		var zero T
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
