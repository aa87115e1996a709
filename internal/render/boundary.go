package render

import (
	"fmt"

	"go.uber.org/zap"

	"asset-service/internal/asset"
	"asset-service/pkg/metrics"
)

// Boundary isolates one asset's render: a panic inside the thunk is
// captured, logged with the asset's identity, and replaced by a fixed-shape
// error tree. Parsers never panic by contract, but presentation code working
// on malformed derived data still can, and one corrupt asset must not blank
// the rest of the list.
type Boundary struct {
	log     *zap.Logger
	verbose bool
}

// NewBoundary builds a containment boundary. verbose copies the raw panic
// detail into the error tree for diagnostics panels.
func NewBoundary(log *zap.Logger, verbose bool) *Boundary {
	return &Boundary{log: log, verbose: verbose}
}

// Safely runs thunk and returns its tree, or an error tree if it panicked.
// The returned tree is never nil.
func (b *Boundary) Safely(a *asset.Asset, thunk func() *Tree) (tree *Tree) {
	defer func() {
		if r := recover(); r != nil {
			metrics.CountRenderFault()
			b.log.Error("render fault contained",
				zap.String("file_id", a.FileID),
				zap.String("file_name", a.FileName),
				zap.String("file_type", string(a.FileType)),
				zap.Any("panic", r),
			)
			tree = b.faultTree(a, r)
		}
	}()

	tree = thunk()
	if tree == nil {
		tree = b.faultTree(a, "renderer returned no presentation")
	}
	return tree
}

func (b *Boundary) faultTree(a *asset.Asset, cause any) *Tree {
	tree := &Tree{
		Kind:  KindError,
		Fault: FaultRender,
		Text:  fmt.Sprintf("failed to render %s (%s)", a.FileName, a.FileType),
	}
	if b.verbose {
		tree.Detail = fmt.Sprintf("%v", cause)
	}
	return tree
}
