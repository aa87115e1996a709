package types

import (
	"context"
	"encoding/json"

	"asset-service/internal/upstream"
)

// AssetStore defines the upstream operations the application depends on.
// Satisfied by *upstream.Client; narrowed here so tests can fake the backend.
type AssetStore interface {
	ListAssets(ctx context.Context, caseID string) (*upstream.ListResponse, error)
	GetAsset(ctx context.Context, caseID, fileID string) (string, error)
	UpdateAsset(ctx context.Context, caseID, fileID, content string) error
	Health(ctx context.Context, caseID string) (json.RawMessage, error)
}
