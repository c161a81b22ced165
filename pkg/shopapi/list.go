package shopapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawList holds a list response before we know whether it is a bare array or
// an object keyed by the collection name.
type rawList json.RawMessage

func (r *rawList) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

func (r rawList) into(field string, dest any) error {
	trimmed := bytes.TrimSpace(r)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, dest)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("shopapi: decode list: %w", err)
	}

	inner, ok := obj[field]
	if !ok {
		return fmt.Errorf("shopapi: decode list: missing %q", field)
	}

	return json.Unmarshal(inner, dest)
}
