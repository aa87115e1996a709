package app

import (
	"asset-service/internal/asset"
	"asset-service/internal/regen"
	"asset-service/internal/render"
	"asset-service/internal/session"
)

// AssetView is one asset as presented to the management screen: the record
// plus a bounded-risk preview render. Render is omitted when the preview
// cannot be trusted (JSON-shaped content with a truncated preview), in which
// case RequiresFullFetch tells the client to ask for the authoritative body.
type AssetView struct {
	asset.Asset
	Render            *render.Tree `json:"render,omitempty"`
	RequiresFullFetch bool         `json:"requiresFullFetch,omitempty"`

	// EditHeldBy names the surface holding a live edit session on this
	// asset, so the list can show the lock before a begin-edit bounces.
	EditHeldBy string `json:"editHeldBy,omitempty"`
}

// ListAssetsResponse mirrors the upstream list with rendered previews. A
// non-empty Warning reflects a degraded upstream response and is advisory.
type ListAssetsResponse struct {
	CaseID         string      `json:"caseId"`
	CaseTitle      string      `json:"caseTitle"`
	Assets         []AssetView `json:"assets"`
	TotalAssets    int         `json:"totalAssets"`
	ExistingAssets int         `json:"existingAssets"`
	Warning        string      `json:"warning,omitempty"`
}

// AssetContentResponse carries the authoritative body and its full render.
type AssetContentResponse struct {
	Asset   asset.Asset  `json:"asset"`
	Content string       `json:"content"`
	Render  *render.Tree `json:"render"`
}

// BeginEditRequest opens an edit session on one surface.
type BeginEditRequest struct {
	Surface session.Surface `json:"surface"`
}

// RegenerateResponse reports a finished regeneration run, the patched asset
// record, and the toast line to show.
type RegenerateResponse struct {
	Run    regen.Run    `json:"run"`
	Asset  *asset.Asset `json:"asset,omitempty"`
	Notice string       `json:"notice"`
}

// BlueprintRequest names the assets to generate in one paced batch.
type BlueprintRequest struct {
	FileIDs   []string `json:"fileIds"`
	Overwrite bool     `json:"overwrite"`
}
