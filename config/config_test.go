package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaneui/md/types"
	"github.com/yuin/goldmark/util"
)

func TestDefaultNodes(t *testing.T) {
	nodes := DefaultNodes()
	components := DefaultComponents()

	assert.Len(t, nodes, 25)

	for name, node := range nodes {
		_, ok := components[node.Render]
		assert.True(t, ok, "node %q renders unknown component %q", name, node.Render)
	}

	for name, node := range DefaultTags() {
		_, ok := components[node.Render]
		assert.True(t, ok, "tag %q renders unknown component %q", name, node.Render)
	}

	assert.Equal(t, types.Attribute{Type: types.Number, Required: true}, nodes["heading"].Attributes["level"])
	assert.Equal(t, true, nodes["fence"].Attributes["process"].Default)
	assert.True(t, nodes["link"].Attributes["href"].Required)
	assert.True(t, nodes["image"].Attributes["src"].Required)
	assert.Empty(t, nodes["paragraph"].Attributes)
}

func TestMergeConfig_NilUser(t *testing.T) {
	defaults := Default()
	assert.Same(t, defaults, MergeConfig(defaults, nil))
}

func TestMergeConfig(t *testing.T) {
	custom := func(w util.BufWriter, p *types.Props) error {
		return nil
	}

	defaults := Default()
	defaults.Variables["frontmatter"] = map[string]any{"title": "x"}

	user := &types.Config{
		Nodes: types.Nodes{
			"heading": {Render: "MyHeading"},
		},
		Components: types.Components{
			"MyHeading": custom,
		},
		Variables: map[string]any{
			"product": "md",
		},
		Functions: map[string]any{
			"shout": func(s string) string { return s + "!" },
		},
	}

	merged := MergeConfig(defaults, user)
	require.NotNil(t, merged)

	assert.Equal(t, "MyHeading", merged.Nodes["heading"].Render)
	assert.Empty(t, merged.Nodes["heading"].Attributes, "merge is shallow")
	assert.Equal(t, "MdParagraph", merged.Nodes["paragraph"].Render)

	assert.Contains(t, merged.Components, "MyHeading")
	assert.Contains(t, merged.Components, "MdHeading")

	assert.Equal(t, "md", merged.Variables["product"])
	assert.Contains(t, merged.Variables, "frontmatter")

	assert.Contains(t, merged.Tags, "admonition")
	assert.Contains(t, merged.Functions, "shout")

	assert.Equal(t, "MdHeading", defaults.Nodes["heading"].Render, "defaults must not change")
	assert.NotContains(t, defaults.Components, "MyHeading")
	assert.NotContains(t, defaults.Variables, "product")
}

func TestMergeConfig_NilDefaults(t *testing.T) {
	merged := MergeConfig(nil, &types.Config{
		Variables: map[string]any{"a": 1},
	})

	assert.Equal(t, map[string]any{"a": 1}, merged.Variables)
	assert.Empty(t, merged.Nodes)
}
