package handler

import (
	"context"
	"encoding/json"

	"asset-service/internal/app"
	"asset-service/internal/regen"
	"asset-service/internal/render"
	"asset-service/internal/session"
	"asset-service/pkg/validator"
)

// Consumer-side interfaces defined by handlers. Each interface contains only
// the methods the specific handler needs; all are satisfied by *app.Service.

// AssetHandler interfaces
type AssetReader interface {
	ListAssets(ctx context.Context, caseID string) (*app.ListAssetsResponse, error)
	GetAsset(ctx context.Context, caseID, fileID string) (*app.AssetContentResponse, error)
	RenderAsset(ctx context.Context, caseID, fileID string) (*render.Tree, error)
	Health(ctx context.Context, caseID string) (json.RawMessage, error)
}

type GenerationRunner interface {
	Regenerate(ctx context.Context, caseID, fileID string, overwrite bool) (*app.RegenerateResponse, error)
	GenerateBlueprints(ctx context.Context, caseID string, req app.BlueprintRequest) []regen.Run
}

// SessionHandler interfaces
type EditCoordinator interface {
	BeginEdit(ctx context.Context, caseID, fileID string, surface session.Surface) (session.Session, error)
	GetSession(sessionID string) (session.Session, error)
	UpdateDraft(sessionID, draft string) (validator.Verdict, error)
	Save(ctx context.Context, sessionID string) error
	CancelEdit(sessionID string) error
}
