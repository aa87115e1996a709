package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	assert.NoError(t, FileName("org_chart.json"))
	assert.Error(t, FileName(""))
	assert.Error(t, FileName("a/b.json"))
	assert.Error(t, FileName("bad\x00name"))
	assert.Error(t, FileName(strings.Repeat("x", 300)))
}

func TestContentSize(t *testing.T) {
	assert.NoError(t, ContentSize("hello"))
	assert.Error(t, ContentSize("   "))
	assert.Error(t, ContentSize(strings.Repeat("x", 10*1024*1024+1)))
}

func TestDraft_JSONAssets(t *testing.T) {
	v := Draft("data.json", `{"ok": true}`)
	assert.True(t, v.Valid)

	v = Draft("data.json", `{"broken":`)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Message, "not valid JSON")
}

func TestDraft_NonJSONAssetsAlwaysPass(t *testing.T) {
	v := Draft("memo.md", "# anything { goes")
	assert.True(t, v.Valid)
}
