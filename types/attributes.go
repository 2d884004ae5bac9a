package types

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/vaneui/md/ui"
	"github.com/yuin/goldmark/ast"
)

// Attributes are the validated attributes of a node.
type Attributes map[string]any

// AttributesOf collects the attributes stored on a node. Byte slices, which
// goldmark uses for attribute strings, are converted to strings.
func AttributesOf(node ast.Node) Attributes {
	attributes := Attributes{}
	for _, attribute := range node.Attributes() {
		attributes[string(attribute.Name)] = normalize(attribute.Value)
	}
	return attributes
}

func normalize(value any) any {
	switch value := value.(type) {
	case []byte:
		return string(value)
	case []any:
		values := make([]any, len(value))
		for i := range value {
			values[i] = normalize(value[i])
		}
		return values
	default:
		return value
	}
}

func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

func (a Attributes) String(name string) string {
	return stringify(a[name])
}

func (a Attributes) Int(name string) int {
	switch value := a[name].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	case string:
		number, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return int(number)
		}
	}
	return 0
}

func (a Attributes) Bool(name string) bool {
	switch value := a[name].(type) {
	case bool:
		return value
	case string:
		parsed, err := strconv.ParseBool(value)
		return err == nil && parsed
	}
	return false
}

// Rest returns the attributes not listed in consumed, sorted by name, in the
// form they are written to HTML. Nil and false values are omitted.
func (a Attributes) Rest(consumed ...string) []ui.Attr {
	skip := make(map[string]struct{}, len(consumed))
	for _, name := range consumed {
		skip[name] = struct{}{}
	}

	names := make([]string, 0, len(a))
	for name := range a {
		if _, ok := skip[name]; ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var rest []ui.Attr
	for _, name := range names {
		value := a[name]
		if value == nil || value == false {
			continue
		}

		if value == true {
			rest = append(rest, ui.Attr{Name: name, Value: name})
			continue
		}

		rest = append(rest, ui.Attr{Name: name, Value: stringify(value)})
	}

	return rest
}

func stringify(value any) string {
	switch value := value.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case bool:
		return strconv.FormatBool(value)
	case []any:
		var result string
		for i, item := range value {
			if i > 0 {
				result += " "
			}
			result += stringify(item)
		}
		return result
	default:
		return fmt.Sprint(value)
	}
}
