package transformer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vaneui/md/types"
	"github.com/yuin/goldmark/ast"
)

// ValidationError describes a node attribute that did not match its schema.
type ValidationError struct {
	Node      string
	Attribute string
	Message   string
}

func (e ValidationError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("%s: %s", e.Node, e.Message)
	}
	return fmt.Sprintf("%s: attribute %q %s", e.Node, e.Attribute, e.Message)
}

// Validate checks attributes against the schema of a node config. Absent
// attributes get their defaults, present ones are coerced to the declared
// type. The returned attributes contain every schema attribute that has a
// value.
func Validate(
	nodeType string,
	config types.NodeConfig,
	attributes map[string]any,
) (types.Attributes, []ValidationError) {
	var (
		validated = types.Attributes{}
		errs      []ValidationError
	)

	names := make([]string, 0, len(config.Attributes))
	for name := range config.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		schema := config.Attributes[name]

		value, ok := attributes[name]
		if !ok || value == nil {
			switch {
			case schema.Default != nil:
				validated[name] = schema.Default
			case schema.Required:
				errs = append(errs, ValidationError{
					Node:      nodeType,
					Attribute: name,
					Message:   "is required",
				})
			}

			continue
		}

		coerced, err := coerce(value, schema.Type)
		if err != nil {
			errs = append(errs, ValidationError{
				Node:      nodeType,
				Attribute: name,
				Message:   err.Error(),
			})

			continue
		}

		validated[name] = coerced
	}

	return validated, errs
}

// ValidateChildren reports children whose type is not listed in
// config.Children. An empty list allows everything.
func ValidateChildren(nodeType string, config types.NodeConfig, node ast.Node) []ValidationError {
	if len(config.Children) == 0 {
		return nil
	}

	var errs []ValidationError
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		childType := NodeType(child)
		if childType == "" {
			continue
		}

		allowed := false
		for _, name := range config.Children {
			if name == childType {
				allowed = true
				break
			}
		}

		if !allowed {
			errs = append(errs, ValidationError{
				Node:    nodeType,
				Message: fmt.Sprintf("can't contain %q", childType),
			})
		}
	}

	return errs
}

func coerce(value any, kind types.AttributeType) (any, error) {
	switch kind {
	case types.String:
		switch value := value.(type) {
		case string:
			return value, nil
		case []byte:
			return string(value), nil
		case int:
			return strconv.Itoa(value), nil
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(value), nil
		}

	case types.Number:
		switch value := value.(type) {
		case int:
			return float64(value), nil
		case float64:
			return value, nil
		case string, []byte:
			number, err := strconv.ParseFloat(strings.TrimSpace(toString(value)), 64)
			if err == nil {
				return number, nil
			}
		}

	case types.Boolean:
		switch value := value.(type) {
		case bool:
			return value, nil
		case string, []byte:
			parsed, err := strconv.ParseBool(strings.TrimSpace(toString(value)))
			if err == nil {
				return parsed, nil
			}
		}

	default:
		return value, nil
	}

	return nil, fmt.Errorf("must be a %s, got %v", kind, describe(value))
}

func toString(value any) string {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value.(string)
}

func describe(value any) string {
	switch value := value.(type) {
	case []byte:
		return strconv.Quote(string(value))
	case string:
		return strconv.Quote(value)
	default:
		return fmt.Sprint(value)
	}
}
