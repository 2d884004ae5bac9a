// Package ui implements the design-system primitives markdown components
// forward to: titles, text, links, lists, badges, cards, dividers and columns.
// Primitives carry no markup logic of their own beyond composing CSS classes
// from a Theme.
package ui

import (
	"os"
	"sort"
	"strings"

	"github.com/reconquest/karma-go"
	"gopkg.in/yaml.v3"
)

// Flags toggles theme variants on a primitive, e.g. {"xl": true, "bold": true}.
type Flags map[string]bool

// ComponentTheme describes the classes of a single primitive.
type ComponentTheme struct {
	Base         string            `yaml:"base"`
	Defaults     Flags             `yaml:"defaults"`
	Classes      map[string]string `yaml:"classes"`
	ExtraClasses map[string]string `yaml:"extraClasses"`
}

// Theme maps primitive names (title, text, link, list, listItem, badge, card,
// divider, col) to their classes. A partial theme may name only a few
// primitives and only a few fields of each.
type Theme map[string]ComponentTheme

// groups lists mutually exclusive flags. A flag set explicitly on a primitive
// turns off the other members of its group.
var groups = [][]string{
	{"xs", "sm", "md", "lg", "xl"},
	{"thin", "light", "normal", "medium", "semibold", "bold", "black"},
	{"default", "primary", "secondary", "accent", "success", "danger", "warning", "info", "link"},
	{"sans", "serif", "mono"},
	{"disc", "decimal"},
	{"underline", "lineThrough", "noUnderline"},
}

var groupOf = func() map[string]int {
	index := map[string]int{}
	for i, group := range groups {
		for _, flag := range group {
			index[flag] = i
		}
	}
	return index
}()

// Resolve applies explicit flags over the theme defaults of a primitive and
// returns the active flags in a stable order.
func (c ComponentTheme) Resolve(flags Flags) []string {
	active := Flags{}
	for flag, on := range c.Defaults {
		if on {
			active[flag] = true
		}
	}

	for _, flag := range sortedKeys(flags) {
		if !flags[flag] {
			delete(active, flag)
			continue
		}

		if group, ok := groupOf[flag]; ok {
			for _, member := range groups[group] {
				delete(active, member)
			}
		}

		active[flag] = true
	}

	var ordered []string
	for _, group := range groups {
		for _, flag := range group {
			if active[flag] {
				ordered = append(ordered, flag)
				delete(active, flag)
			}
		}
	}

	return append(ordered, sortedKeys(active)...)
}

// ClassNames returns the classes for a primitive with the given flags.
func (t Theme) ClassNames(component string, flags Flags) []string {
	theme := t[component]

	classes := strings.Fields(theme.Base)
	for _, flag := range theme.Resolve(flags) {
		classes = append(classes, strings.Fields(theme.Classes[flag])...)
		classes = append(classes, strings.Fields(theme.ExtraClasses[flag])...)
	}

	return dedupe(classes)
}

// Merge overlays partial over t and returns a new theme; t is not modified.
// Nesting theme providers is expressed as successive merges.
func (t Theme) Merge(partial Theme) Theme {
	merged := Theme{}
	for name, component := range t {
		merged[name] = component.clone()
	}

	for name, override := range partial {
		component := merged[name].clone()

		if override.Base != "" {
			component.Base = override.Base
		}

		for flag, on := range override.Defaults {
			if on {
				if group, ok := groupOf[flag]; ok {
					for _, member := range groups[group] {
						delete(component.Defaults, member)
					}
				}
			}
			component.Defaults[flag] = on
		}

		for flag, classes := range override.Classes {
			component.Classes[flag] = classes
		}

		for flag, classes := range override.ExtraClasses {
			component.ExtraClasses[flag] = classes
		}

		merged[name] = component
	}

	return merged
}

func (c ComponentTheme) clone() ComponentTheme {
	clone := ComponentTheme{
		Base:         c.Base,
		Defaults:     Flags{},
		Classes:      map[string]string{},
		ExtraClasses: map[string]string{},
	}

	for k, v := range c.Defaults {
		clone.Defaults[k] = v
	}
	for k, v := range c.Classes {
		clone.Classes[k] = v
	}
	for k, v := range c.ExtraClasses {
		clone.ExtraClasses[k] = v
	}

	return clone
}

// LoadTheme reads a partial theme from a YAML file.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, karma.Format(err, "unable to read theme file: %s", path)
	}

	var theme Theme
	err = yaml.Unmarshal(data, &theme)
	if err != nil {
		return nil, karma.Format(err, "unable to decode theme file: %s", path)
	}

	return theme, nil
}

func sortedKeys(flags Flags) []string {
	keys := make([]string, 0, len(flags))
	for key := range flags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(classes []string) []string {
	seen := make(map[string]struct{}, len(classes))
	result := classes[:0]
	for _, class := range classes {
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		result = append(result, class)
	}
	return result
}
