package quality

import "fmt"

// InvalidBlueprintError is returned when a blueprint is structurally unusable:
// it is nil, or its title or key message field is missing entirely.
// An empty but present field is not an error; it is scored as a weakness.
type InvalidBlueprintError struct {
	Field   string
	Message string
}

func (e *InvalidBlueprintError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid blueprint: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid blueprint: %s", e.Message)
}
