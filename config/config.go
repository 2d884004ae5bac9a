// Package config holds the default node and component tables and merges user
// configuration into them.
package config

import (
	"maps"

	"github.com/vaneui/md/renderer"
	"github.com/vaneui/md/types"
)

// DefaultNodes returns the node type to component mapping.
func DefaultNodes() types.Nodes {
	return types.Nodes{
		"document": {Render: "MdDocument"},
		"heading": {
			Render: "MdHeading",
			Attributes: map[string]types.Attribute{
				"level": {Type: types.Number, Required: true},
			},
		},
		"paragraph": {Render: "MdParagraph"},
		"hr":        {Render: "MdHr"},
		"image": {
			Render: "MdImage",
			Attributes: map[string]types.Attribute{
				"src":   {Type: types.String, Required: true},
				"alt":   {Type: types.String},
				"title": {Type: types.String},
			},
		},
		"fence": {
			Render: "MdFence",
			Attributes: map[string]types.Attribute{
				"content":  {Type: types.String},
				"language": {Type: types.String},
				"process":  {Type: types.Boolean, Default: true},
			},
		},
		"blockquote": {
			Render: "MdBlockquote",
			Attributes: map[string]types.Attribute{
				"type": {Type: types.String},
			},
		},
		"list": {
			Render: "MdList",
			Attributes: map[string]types.Attribute{
				"ordered": {Type: types.Boolean, Default: false},
			},
		},
		"item":  {Render: "MdItem"},
		"table": {Render: "MdTable"},
		"thead": {Render: "MdThead"},
		"tbody": {Render: "MdTbody"},
		"tr":    {Render: "MdTr"},
		"td": {
			Render: "MdTd",
			Attributes: map[string]types.Attribute{
				"align":   {Type: types.String},
				"colspan": {Type: types.Number},
				"rowspan": {Type: types.Number},
			},
		},
		"th": {
			Render: "MdTh",
			Attributes: map[string]types.Attribute{
				"align": {Type: types.String},
				"width": {Type: types.String},
			},
		},
		"inline": {Render: "MdInline"},
		"strong": {Render: "MdStrong"},
		"em":     {Render: "MdEm"},
		"s":      {Render: "MdS"},
		"link": {
			Render: "MdLink",
			Attributes: map[string]types.Attribute{
				"href":  {Type: types.String, Required: true},
				"title": {Type: types.String},
			},
		},
		"code":      {Render: "MdCode"},
		"text":      {Render: "MdText"},
		"hardbreak": {Render: "MdHardbreak"},
		"softbreak": {Render: "MdSoftbreak"},
		"error":     {Render: "MdError"},
	}
}

// DefaultTags returns the configuration of extension nodes.
func DefaultTags() types.Nodes {
	return types.Nodes{
		"admonition": {
			Render: "MdAdmonition",
			Attributes: map[string]types.Attribute{
				"kind":  {Type: types.String, Default: "note"},
				"title": {Type: types.String},
			},
		},
		"checkbox": {
			Render: "MdCheckbox",
			Attributes: map[string]types.Attribute{
				"checked": {Type: types.Boolean, Default: false},
			},
		},
	}
}

// DefaultComponents returns the component name to component mapping.
func DefaultComponents() types.Components {
	return types.Components{
		"MdDocument":   renderer.MdDocument,
		"MdHeading":    renderer.MdHeading,
		"MdParagraph":  renderer.MdParagraph,
		"MdHr":         renderer.MdHr,
		"MdImage":      renderer.MdImage,
		"MdFence":      renderer.MdFence,
		"MdBlockquote": renderer.MdBlockquote,
		"MdList":       renderer.MdList,
		"MdItem":       renderer.MdItem,
		"MdTable":      renderer.MdTable,
		"MdThead":      renderer.MdThead,
		"MdTbody":      renderer.MdTbody,
		"MdTr":         renderer.MdTr,
		"MdTd":         renderer.MdTd,
		"MdTh":         renderer.MdTh,
		"MdInline":     renderer.MdInline,
		"MdStrong":     renderer.MdStrong,
		"MdEm":         renderer.MdEm,
		"MdS":          renderer.MdS,
		"MdLink":       renderer.MdLink,
		"MdCode":       renderer.MdCode,
		"MdText":       renderer.MdText,
		"MdHardbreak":  renderer.MdHardbreak,
		"MdSoftbreak":  renderer.MdSoftbreak,
		"MdError":      renderer.MdError,
		"MdAdmonition": renderer.MdAdmonition,
		"MdCheckbox":   renderer.MdCheckbox,
	}
}

// Default returns a fresh default configuration.
func Default() *types.Config {
	return &types.Config{
		Nodes:      DefaultNodes(),
		Components: DefaultComponents(),
		Variables:  map[string]any{},
		Tags:       DefaultTags(),
		Functions:  map[string]any{},
	}
}

// MergeConfig overlays user on defaults one table at a time: keys set by the
// user replace default keys, other default keys are kept. A nil user config
// returns defaults as is. Neither argument is modified.
func MergeConfig(defaults, user *types.Config) *types.Config {
	if user == nil {
		return defaults
	}

	if defaults == nil {
		defaults = &types.Config{}
	}

	return &types.Config{
		Nodes:      merge(defaults.Nodes, user.Nodes),
		Components: merge(defaults.Components, user.Components),
		Variables:  merge(defaults.Variables, user.Variables),
		Tags:       merge(defaults.Tags, user.Tags),
		Functions:  merge(defaults.Functions, user.Functions),
	}
}

func merge[M ~map[K]V, K comparable, V any](defaults, user M) M {
	merged := make(M, len(defaults)+len(user))
	maps.Copy(merged, defaults)
	maps.Copy(merged, user)
	return merged
}
