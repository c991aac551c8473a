package parse

import (
	"encoding/json"
	"fmt"
)

// DecodeObject converts an extracted Object into T. Numbers kept as
// json.Number are written back verbatim, so large integers decode exactly.
func DecodeObject[T any](obj *Object) (T, error) {
	var result T
	if obj == nil {
		return result, fmt.Errorf("object is nil")
	}
	encoded, err := json.Marshal(obj)
	if err != nil {
		return result, fmt.Errorf("failed to encode object: %w", err)
	}
	if err := json.Unmarshal(encoded, &result); err != nil {
		return result, fmt.Errorf("failed to decode object as %T: %w", result, err)
	}
	return result, nil
}
