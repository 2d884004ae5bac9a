package ui

// DefaultTheme returns the built-in theme. Every call returns a fresh copy.
func DefaultTheme() Theme {
	typography := func(extra map[string]string) map[string]string {
		classes := map[string]string{
			"thin":        "font-thin",
			"light":       "font-light",
			"normal":      "font-normal",
			"medium":      "font-medium",
			"semibold":    "font-semibold",
			"bold":        "font-bold",
			"black":       "font-black",
			"sans":        "font-sans",
			"serif":       "font-serif",
			"mono":        "font-mono",
			"italic":      "italic",
			"underline":   "underline",
			"lineThrough": "line-through",
			"noUnderline": "no-underline",
			"uppercase":   "uppercase",
			"default":     "text-gray-900",
			"primary":     "text-blue-600",
			"secondary":   "text-gray-500",
			"accent":      "text-gray-700",
			"success":     "text-green-600",
			"danger":      "text-red-600",
			"warning":     "text-amber-600",
			"info":        "text-sky-600",
			"link":        "text-blue-600",
		}
		for k, v := range extra {
			classes[k] = v
		}
		return classes
	}

	surfaces := map[string]string{
		"default":   "bg-white border-gray-200",
		"primary":   "bg-blue-50 border-blue-200",
		"secondary": "bg-gray-50 border-gray-200",
		"accent":    "bg-gray-100 border-gray-300",
		"success":   "bg-green-50 border-green-200",
		"danger":    "bg-red-50 border-red-200 text-red-600",
		"warning":   "bg-amber-50 border-amber-200",
		"info":      "bg-sky-50 border-sky-200",
		"xs":        "p-1 gap-1",
		"sm":        "p-2 gap-2",
		"md":        "p-4 gap-3",
		"lg":        "p-6 gap-4",
		"xl":        "p-8 gap-5",
	}

	return Theme{
		"title": {
			Base:     "text-balance w-fit",
			Defaults: Flags{"md": true, "semibold": true, "sans": true, "default": true},
			Classes: typography(map[string]string{
				"xs": "text-lg",
				"sm": "text-xl",
				"md": "text-2xl",
				"lg": "text-3xl",
				"xl": "text-4xl",
			}),
			ExtraClasses: map[string]string{},
		},
		"text": {
			Base:     "text-pretty",
			Defaults: Flags{"md": true, "normal": true, "sans": true, "default": true},
			Classes: typography(map[string]string{
				"xs": "text-xs",
				"sm": "text-sm",
				"md": "text-base",
				"lg": "text-lg",
				"xl": "text-xl",
			}),
			ExtraClasses: map[string]string{},
		},
		"link": {
			Base:     "hover:underline w-fit cursor-pointer",
			Defaults: Flags{"md": true, "sans": true, "link": true},
			Classes: typography(map[string]string{
				"xs": "text-xs",
				"sm": "text-sm",
				"md": "text-base",
				"lg": "text-lg",
				"xl": "text-xl",
			}),
			ExtraClasses: map[string]string{},
		},
		"list": {
			Base:     "list-inside",
			Defaults: Flags{"md": true, "normal": true, "sans": true, "default": true, "disc": true},
			Classes: typography(map[string]string{
				"xs":      "text-xs",
				"sm":      "text-sm",
				"md":      "text-base",
				"lg":      "text-lg",
				"xl":      "text-xl",
				"disc":    "list-disc",
				"decimal": "list-decimal",
			}),
			ExtraClasses: map[string]string{},
		},
		"listItem": {
			Base:         "",
			Defaults:     Flags{},
			Classes:      typography(nil),
			ExtraClasses: map[string]string{},
		},
		"badge": {
			Base:     "inline-flex w-fit items-center rounded-full px-2",
			Defaults: Flags{"sm": true, "mono": true, "secondary": true},
			Classes: typography(map[string]string{
				"xs":        "text-xs",
				"sm":        "text-sm",
				"md":        "text-base",
				"lg":        "text-lg",
				"xl":        "text-xl",
				"secondary": "bg-gray-100 text-gray-800",
				"danger":    "bg-red-100 text-red-800",
			}),
			ExtraClasses: map[string]string{},
		},
		"card": {
			Base:         "flex flex-col rounded-lg border",
			Defaults:     Flags{"md": true, "default": true},
			Classes:      surfaces,
			ExtraClasses: map[string]string{},
		},
		"divider": {
			Base:     "w-full h-px border-0",
			Defaults: Flags{"default": true},
			Classes: map[string]string{
				"default": "bg-gray-200",
				"accent":  "bg-gray-400",
			},
			ExtraClasses: map[string]string{},
		},
		"col": {
			Base:     "flex flex-col",
			Defaults: Flags{"md": true},
			Classes: map[string]string{
				"xs": "gap-1",
				"sm": "gap-2",
				"md": "gap-4",
				"lg": "gap-6",
				"xl": "gap-8",
			},
			ExtraClasses: map[string]string{},
		},
	}
}
