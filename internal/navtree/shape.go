package navtree

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidShape reports a configuration whose top-level fields have the wrong types.
var ErrInvalidShape = errors.New("invalid navigation config shape")

// CheckShape validates only the top-level shape of a JSON navigation config:
// logoText must be a string, the show flags booleans and the item/cta lists
// arrays. Nested items are deliberately not inspected, so renderers must
// tolerate malformed children.
func CheckShape(raw []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if obj == nil {
		return fmt.Errorf("%w: not an object", ErrInvalidShape)
	}

	if _, ok := obj["logoText"].(string); !ok {
		return fmt.Errorf("%w: logoText must be a string", ErrInvalidShape)
	}
	for _, key := range []string{"showSecondaryNav", "showSearch"} {
		if _, ok := obj[key].(bool); !ok {
			return fmt.Errorf("%w: %s must be a boolean", ErrInvalidShape, key)
		}
	}
	for _, key := range []string{"secondaryItems", "primaryItems", "ctas"} {
		if _, ok := obj[key].([]any); !ok {
			return fmt.Errorf("%w: %s must be an array", ErrInvalidShape, key)
		}
	}
	return nil
}
