package frontend

import (
	"encoding/json"
)

// Value is a scalar in the configuration record. Values read from the
// environment are emitted as JSON strings; literal defaults keep their JSON
// type.
type Value struct {
	raw     string
	literal bool
}

// String wraps s as a JSON string value.
func String(s string) Value {
	return Value{raw: s}
}

// Number wraps a JSON number literal. The caller guarantees n is a valid
// JSON number.
func Number(n string) Value {
	return Value{raw: n, literal: true}
}

// Raw returns the textual value without JSON quoting.
func (v Value) Raw() string {
	return v.raw
}

// IsNumber reports whether the value serializes as a JSON number.
func (v Value) IsNumber() bool {
	return v.literal
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.literal {
		return []byte(v.raw), nil
	}
	return json.Marshal(v.raw)
}
