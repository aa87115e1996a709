package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-service/internal/asset"
)

func testAsset() *asset.Asset {
	return &asset.Asset{FileID: "f1", FileName: "org.json", FileType: asset.TypeOrgChart}
}

func TestSafely_PassesThroughHealthyTree(t *testing.T) {
	b := NewBoundary(zap.NewNop(), false)
	tree := b.Safely(testAsset(), func() *Tree {
		return monospaceTree("ok")
	})
	assert.Equal(t, KindMonospace, tree.Kind)
	assert.Equal(t, "ok", tree.Text)
}

func TestSafely_ContainsPanic(t *testing.T) {
	b := NewBoundary(zap.NewNop(), false)
	tree := b.Safely(testAsset(), func() *Tree {
		panic("index out of range")
	})

	require.NotNil(t, tree)
	assert.Equal(t, KindError, tree.Kind)
	assert.Equal(t, FaultRender, tree.Fault)
	assert.Contains(t, tree.Text, "org.json")
	assert.Empty(t, tree.Detail)
}

func TestSafely_VerboseIncludesDetail(t *testing.T) {
	b := NewBoundary(zap.NewNop(), true)
	tree := b.Safely(testAsset(), func() *Tree {
		panic("index out of range")
	})
	assert.Equal(t, "index out of range", tree.Detail)
}

func TestSafely_NilTreeIsAFault(t *testing.T) {
	b := NewBoundary(zap.NewNop(), false)
	tree := b.Safely(testAsset(), func() *Tree { return nil })
	assert.Equal(t, KindError, tree.Kind)
	assert.Equal(t, FaultRender, tree.Fault)
}

func TestSafely_FaultIsPerAsset(t *testing.T) {
	b := NewBoundary(zap.NewNop(), false)

	bad := b.Safely(testAsset(), func() *Tree { panic("boom") })
	good := b.Safely(&asset.Asset{FileID: "f2", FileName: "ok.md"}, func() *Tree {
		return markdownTree("# fine")
	})

	assert.Equal(t, KindError, bad.Kind)
	assert.Equal(t, KindMarkdown, good.Kind)
}
