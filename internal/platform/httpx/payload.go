package httpx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extract decodes the value found at the given key path of raw into dest.
// With an empty path the whole document is decoded.
func Extract(raw json.RawMessage, dest any, path ...string) error {
	current := raw
	for i, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			return fmt.Errorf("%w: %s is not an object: %w", ErrDecode, fieldPath(path[:i]), err)
		}
		next, ok := obj[key]
		if !ok {
			return fmt.Errorf("%w: missing field %s", ErrDecode, fieldPath(path[:i+1]))
		}
		current = next
	}
	if err := json.Unmarshal(current, dest); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, fieldPath(path), err)
	}
	return nil
}

func fieldPath(path []string) string {
	if len(path) == 0 {
		return "."
	}
	return "." + strings.Join(path, ".")
}
