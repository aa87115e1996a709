package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverJSON_ValidPassesThrough(t *testing.T) {
	cleaned, transform, ok := RecoverJSON(`{"a":1}`)
	require.True(t, ok)
	assert.Equal(t, "as-is", transform)
	assert.Equal(t, `{"a":1}`, cleaned)
}

func TestRecoverJSON_StripsCodeFences(t *testing.T) {
	cleaned, transform, ok := RecoverJSON("```json\n{\"a\":1}\n```")
	require.True(t, ok)
	assert.Equal(t, "strip-code-fences", transform)
	assert.JSONEq(t, `{"a":1}`, cleaned)
}

func TestRecoverJSON_UnwrapsQuotes(t *testing.T) {
	cleaned, transform, ok := RecoverJSON(`"{\"a\":1}"`)
	require.True(t, ok)
	assert.Equal(t, "unwrap-quotes", transform)
	assert.JSONEq(t, `{"a":1}`, cleaned)
}

func TestRecoverJSON_OrderIsFixed(t *testing.T) {
	// Fenced and double-encoded: the fence strip runs first, then the
	// unwrap, each feeding the next attempt.
	cleaned, transform, ok := RecoverJSON("```\n\"{\\\"a\\\":1}\"\n```")
	require.True(t, ok)
	assert.Equal(t, "unwrap-quotes", transform)
	assert.JSONEq(t, `{"a":1}`, cleaned)
}

func TestRecoverJSON_Pure(t *testing.T) {
	in := "```json\n[1,2]\n```"
	a, _, _ := RecoverJSON(in)
	b, _, _ := RecoverJSON(in)
	assert.Equal(t, a, b)
}
