package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OptionalString is a PATCH field that tells "absent" apart from null.
// Absent leaves Present false. null sets Present with a nil Value, which
// callers read as "clear" or "move to root".
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only invoked for keys present in the body
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected string or null: %w", err)
	}
	o.Value = &s
	return nil
}

// Unpack returns the value and whether the field was sent
func (o OptionalString) Unpack() (*string, bool) {
	return o.Value, o.Present
}
