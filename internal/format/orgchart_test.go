package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrgChart_RootObject(t *testing.T) {
	nodes, ok := ParseOrgChart(`{"root": {"name":"CEO","children":[{"name":"CFO"}]}}`)
	require.True(t, ok)
	require.Len(t, nodes, 1)

	assert.Equal(t, "CEO", nodes[0].Name)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "CFO", nodes[0].Children[0].Name)
	assert.Equal(t, 2, CountNodes(nodes))
}

func TestParseOrgChart_BareArray(t *testing.T) {
	nodes, ok := ParseOrgChart(`[{"name":"CEO"},{"name":"COO","reportsTo":"CEO"}]`)
	require.True(t, ok)
	require.Len(t, nodes, 2)
	assert.Equal(t, "CEO", nodes[1].ReportsTo)
}

func TestParseOrgChart_EnvelopeShapes(t *testing.T) {
	for _, raw := range []string{
		`{"organization":[{"name":"CEO"}]}`,
		`{"employees":[{"name":"CEO"}]}`,
		`{"departments":[{"name":"CEO"}]}`,
	} {
		nodes, ok := ParseOrgChart(raw)
		require.True(t, ok, raw)
		assert.Len(t, nodes, 1, raw)
	}
}

func TestParseOrgChart_SingleNodeObject(t *testing.T) {
	nodes, ok := ParseOrgChart(`{"name":"CEO","title":"Chief Executive"}`)
	require.True(t, ok)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Chief Executive", nodes[0].Title)
}

func TestParseOrgChart_ParsedButShapeless(t *testing.T) {
	// Valid JSON with nothing chart-like: empty non-nil slice signals
	// "parsed, nothing to show" so the caller falls back to a record table.
	nodes, ok := ParseOrgChart(`{"summary":"quarterly narrative"}`)
	require.True(t, ok)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestParseOrgChart_InvalidJSON(t *testing.T) {
	_, ok := ParseOrgChart("{broken")
	assert.False(t, ok)
}
