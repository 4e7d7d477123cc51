package models

import (
	"encoding/json"
	"time"
)

// Optional distinguishes the three states a PATCH body field can carry:
// absent (leave unchanged), explicit null (clear), present with a value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some builds a present, non-null Optional.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

// Null builds a present, explicitly-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	o.Valid = true
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Period is an inclusive [From, To] date range filter.
type Period struct {
	From time.Time
	To   time.Time
}
