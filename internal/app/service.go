package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"asset-service/internal/asset"
	"asset-service/internal/regen"
	"asset-service/internal/render"
	"asset-service/internal/session"
	"asset-service/internal/types"
	"asset-service/pkg/cache"
	apperrors "asset-service/pkg/errors"
	"asset-service/pkg/metrics"
	"asset-service/pkg/validator"
)

// Service is the asset-management core: it classifies and renders generated
// content, owns edit sessions, and coordinates regeneration against the
// upstream backend. The in-memory case snapshots it keeps are mutated only
// by Service methods.
type Service struct {
	store       types.AssetStore
	dispatcher  *render.Dispatcher
	boundary    *render.Boundary
	sessions    *session.Registry
	coordinator *regen.Coordinator
	content     *cache.ContentCache
	log         *zap.Logger

	mu        sync.RWMutex
	snapshots map[string]map[string]asset.Asset // caseID -> fileID -> record
}

func NewService(
	store types.AssetStore,
	dispatcher *render.Dispatcher,
	boundary *render.Boundary,
	sessions *session.Registry,
	coordinator *regen.Coordinator,
	content *cache.ContentCache,
	log *zap.Logger,
) *Service {
	return &Service{
		store:       store,
		dispatcher:  dispatcher,
		boundary:    boundary,
		sessions:    sessions,
		coordinator: coordinator,
		content:     content,
		log:         log,
		snapshots:   make(map[string]map[string]asset.Asset),
	}
}

// ListAssets loads the case's asset list and renders a bounded-risk preview
// for each asset. One malformed asset yields an error panel for that asset
// only; previews of JSON-shaped assets with truncated previews are withheld
// entirely rather than rendered from corrupt JSON.
func (s *Service) ListAssets(ctx context.Context, caseID string) (*ListAssetsResponse, error) {
	list, err := s.store.ListAssets(ctx, caseID)
	if err != nil {
		return nil, err
	}
	s.storeSnapshot(caseID, list.Assets)

	views := make([]AssetView, 0, len(list.Assets))
	for i := range list.Assets {
		a := list.Assets[i]
		view := AssetView{Asset: a}
		if held, ok := s.sessions.Holder(caseID, a.FileID); ok {
			view.EditHeldBy = string(held.Surface)
		}
		switch {
		case !a.Exists || a.Preview == "":
			// Nothing to preview yet.
		case a.PreviewTruncated() && asset.JSONShaped(a.FileType, a.Preview):
			view.RequiresFullFetch = true
		default:
			view.Render = s.boundary.Safely(&a, func() *render.Tree {
				return s.dispatcher.Render(a.FileType, a.FileName, a.MimeType, a.Preview)
			})
		}
		views = append(views, view)
	}

	return &ListAssetsResponse{
		CaseID:         list.CaseID,
		CaseTitle:      list.CaseTitle,
		Assets:         views,
		TotalAssets:    list.TotalAssets,
		ExistingAssets: list.ExistingAssets,
		Warning:        list.Warning,
	}, nil
}

// GetAsset returns the authoritative content and full render of one asset.
func (s *Service) GetAsset(ctx context.Context, caseID, fileID string) (*AssetContentResponse, error) {
	a, err := s.lookupAsset(ctx, caseID, fileID)
	if err != nil {
		return nil, err
	}

	content, err := s.fetchContent(ctx, caseID, fileID)
	if err != nil {
		return nil, err
	}

	tree := s.boundary.Safely(&a, func() *render.Tree {
		return s.dispatcher.Render(a.FileType, a.FileName, a.MimeType, content)
	})
	return &AssetContentResponse{Asset: a, Content: content, Render: tree}, nil
}

// RenderAsset returns only the presentation tree. The list preview serves
// when it can be trusted; otherwise the authoritative body is fetched first.
func (s *Service) RenderAsset(ctx context.Context, caseID, fileID string) (*render.Tree, error) {
	a, err := s.lookupAsset(ctx, caseID, fileID)
	if err != nil {
		return nil, err
	}

	content := a.Preview
	if content == "" || (a.PreviewTruncated() && asset.JSONShaped(a.FileType, a.Preview)) {
		content, err = s.fetchContent(ctx, caseID, fileID)
		if err != nil {
			return nil, err
		}
	}

	return s.boundary.Safely(&a, func() *render.Tree {
		return s.dispatcher.Render(a.FileType, a.FileName, a.MimeType, content)
	}), nil
}

// BeginEdit opens an edit session, seeding the draft from a full fetch. If
// neither the cache nor a fresh fetch can produce content, the transition is
// aborted with no state change.
func (s *Service) BeginEdit(ctx context.Context, caseID, fileID string, surface session.Surface) (session.Session, error) {
	a, err := s.lookupAsset(ctx, caseID, fileID)
	if err != nil {
		return session.Session{}, err
	}
	if !a.Exists {
		return session.Session{}, apperrors.BadRequest(fmt.Sprintf("asset %s has no content to edit", fileID))
	}

	seed, err := s.fetchContent(ctx, caseID, fileID)
	if err != nil {
		return session.Session{}, apperrors.Upstream("could not load content to edit", err)
	}
	return s.sessions.Begin(caseID, fileID, a.FileName, surface, seed)
}

// UpdateDraft replaces a session's draft and reports the local validation
// verdict.
func (s *Service) UpdateDraft(sessionID, draft string) (validator.Verdict, error) {
	return s.sessions.UpdateDraft(sessionID, draft)
}

// GetSession returns a session snapshot.
func (s *Service) GetSession(sessionID string) (session.Session, error) {
	return s.sessions.Get(sessionID)
}

// Save pushes a session's draft upstream. Local validation gates the
// network call; on upstream failure the session returns to editing with the
// draft preserved. On success the session is destroyed, the cached content
// replaced, and the case snapshot reloaded so server-computed fields stay
// consistent.
func (s *Service) Save(ctx context.Context, sessionID string) error {
	locked, err := s.sessions.BeginSave(sessionID)
	if err != nil {
		return err
	}

	if err := s.store.UpdateAsset(ctx, locked.CaseID, locked.FileID, locked.Draft); err != nil {
		if finishErr := s.sessions.FinishSave(sessionID, false); finishErr != nil {
			s.log.Error("failed to unlock session after save failure",
				zap.String("session_id", sessionID), zap.Error(finishErr))
		}
		return err
	}

	if err := s.sessions.FinishSave(sessionID, true); err != nil {
		return err
	}
	s.content.Set(contentKey(locked.CaseID, locked.FileID), locked.Draft)
	s.reloadSnapshot(ctx, locked.CaseID)
	return nil
}

// CancelEdit discards a session and its draft.
func (s *Service) CancelEdit(sessionID string) error {
	return s.sessions.Cancel(sessionID)
}

// Regenerate runs one regeneration and merges the server-reported validation
// state into the local record immediately, before any list reload, so the
// caller sees warnings without waiting on a round trip. A failed run leaves
// the asset's persisted content and local record untouched.
func (s *Service) Regenerate(ctx context.Context, caseID, fileID string, overwrite bool) (*RegenerateResponse, error) {
	a, err := s.lookupAsset(ctx, caseID, fileID)
	if err != nil {
		return nil, err
	}
	if !a.CanRegenerate {
		return nil, apperrors.NotRegenerable(fmt.Sprintf("asset %s cannot be regenerated", fileID))
	}

	run := s.coordinator.Regenerate(ctx, caseID, fileID, overwrite)

	resp := &RegenerateResponse{Run: run, Notice: regen.Notice(run)}
	if run.Status == regen.StatusSucceeded {
		patched := s.patchSnapshot(caseID, fileID, run.ValidationErrors, run.Warnings)
		s.content.Invalidate(contentKey(caseID, fileID))
		resp.Asset = patched
	}
	return resp, nil
}

// GenerateBlueprints runs the paced bulk generation flow.
func (s *Service) GenerateBlueprints(ctx context.Context, caseID string, req BlueprintRequest) []regen.Run {
	runs := s.coordinator.GenerateBlueprints(ctx, caseID, req.FileIDs, req.Overwrite)
	for _, run := range runs {
		if run.Status == regen.StatusSucceeded {
			s.patchSnapshot(caseID, run.FileID, run.ValidationErrors, run.Warnings)
			s.content.Invalidate(contentKey(caseID, run.FileID))
		}
	}
	return runs
}

// Health passes through the upstream diagnostic payload for display.
func (s *Service) Health(ctx context.Context, caseID string) (json.RawMessage, error) {
	return s.store.Health(ctx, caseID)
}

// fetchContent returns the authoritative body, from cache when possible.
func (s *Service) fetchContent(ctx context.Context, caseID, fileID string) (string, error) {
	key := contentKey(caseID, fileID)
	if content, ok := s.content.Get(key); ok {
		metrics.CountCacheHit()
		return content, nil
	}
	metrics.CountCacheMiss()

	content, err := s.store.GetAsset(ctx, caseID, fileID)
	if err != nil {
		return "", err
	}
	s.content.Set(key, content)
	return content, nil
}

// lookupAsset resolves the asset record from the case snapshot, loading the
// list on a cold start.
func (s *Service) lookupAsset(ctx context.Context, caseID, fileID string) (asset.Asset, error) {
	s.mu.RLock()
	a, ok := s.snapshots[caseID][fileID]
	s.mu.RUnlock()
	if ok {
		return a, nil
	}

	list, err := s.store.ListAssets(ctx, caseID)
	if err != nil {
		return asset.Asset{}, err
	}
	s.storeSnapshot(caseID, list.Assets)

	s.mu.RLock()
	a, ok = s.snapshots[caseID][fileID]
	s.mu.RUnlock()
	if !ok {
		return asset.Asset{}, apperrors.NotFound(fmt.Sprintf("asset %s not found in case %s", fileID, caseID))
	}
	return a, nil
}

func (s *Service) storeSnapshot(caseID string, assets []asset.Asset) {
	byID := make(map[string]asset.Asset, len(assets))
	for _, a := range assets {
		byID[a.FileID] = a
	}
	s.mu.Lock()
	s.snapshots[caseID] = byID
	s.mu.Unlock()
}

// patchSnapshot overwrites the asset's quality signals in place and returns
// a copy of the patched record.
func (s *Service) patchSnapshot(caseID, fileID string, validationErrors, warnings []string) *asset.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.snapshots[caseID]
	if !ok {
		return nil
	}
	a, ok := byID[fileID]
	if !ok {
		return nil
	}
	a.ValidationErrors = validationErrors
	a.Warnings = warnings
	a.Exists = true
	byID[fileID] = a
	return &a
}

// reloadSnapshot refreshes the case snapshot after a successful mutation.
// Failures are logged, not returned: the mutation itself already succeeded.
func (s *Service) reloadSnapshot(ctx context.Context, caseID string) {
	list, err := s.store.ListAssets(ctx, caseID)
	if err != nil {
		s.log.Warn("asset list reload failed after save",
			zap.String("case_id", caseID), zap.Error(err))
		return
	}
	s.storeSnapshot(caseID, list.Assets)
}

func contentKey(caseID, fileID string) string {
	return caseID + "/" + fileID
}
