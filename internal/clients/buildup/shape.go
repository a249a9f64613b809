package buildup

import (
	"fmt"
	"strings"
)

// Shape is the request encoding and validation profile of a server release.
type Shape int

const (
	// ShapeJSON posts JSON bodies and treats uid as optional.
	ShapeJSON Shape = iota
	// ShapeLegacy reads allocations with a GET query and posts form bodies.
	ShapeLegacy
	// ShapeUID posts JSON bodies and requires uid plus every field.
	ShapeUID
)

// ParseShape maps a config name to a Shape
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return ShapeJSON, nil
	case "legacy", "form":
		return ShapeLegacy, nil
	case "uid":
		return ShapeUID, nil
	default:
		return ShapeJSON, fmt.Errorf("unknown request shape %q (want legacy|json|uid)", name)
	}
}

func (s Shape) String() string {
	switch s {
	case ShapeLegacy:
		return "legacy"
	case ShapeUID:
		return "uid"
	default:
		return "json"
	}
}

func (s Shape) requiresUID() bool {
	return s == ShapeUID
}
