package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "asset-service/pkg/errors"
	"asset-service/pkg/validator"
)

// Registry tracks live edit sessions, keyed both by session ID and by asset.
// All transitions go through the registry so the single-writer invariant
// cannot be bypassed by a second UI surface.
type Registry struct {
	mu      sync.Mutex
	byID    map[string]*Session
	byAsset map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]*Session),
		byAsset: make(map[string]*Session),
	}
}

// Begin opens an edit session seeded with the full, untruncated content.
// It fails with ErrSessionHeld when any surface already holds the asset.
func (r *Registry) Begin(caseID, fileID, fileName string, surface Surface, seed string) (Session, error) {
	if !ValidSurface(surface) {
		return Session{}, apperrors.BadRequest(fmt.Sprintf("unknown edit surface %q", surface))
	}
	if err := validator.FileName(fileName); err != nil {
		return Session{}, apperrors.BadRequest(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := assetKey(caseID, fileID)
	if held, ok := r.byAsset[key]; ok {
		return Session{}, apperrors.SessionHeld(
			fmt.Sprintf("asset %s is being edited via the %s surface", fileID, held.Surface))
	}

	s := &Session{
		ID:        uuid.NewString(),
		CaseID:    caseID,
		FileID:    fileID,
		FileName:  fileName,
		Surface:   surface,
		Mode:      ModeEditing,
		Draft:     seed,
		Verdict:   validator.Draft(fileName, seed),
		StartedAt: time.Now(),
	}
	r.byID[s.ID] = s
	r.byAsset[key] = s
	return *s, nil
}

// Get returns a snapshot of the session.
func (r *Registry) Get(sessionID string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[sessionID]
	if !ok {
		return Session{}, apperrors.NotFound("edit session not found")
	}
	return *s, nil
}

// UpdateDraft replaces the draft buffer and re-runs local validation. The
// verdict is advisory at this point; it blocks nothing until save time.
func (r *Registry) UpdateDraft(sessionID, draft string) (validator.Verdict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[sessionID]
	if !ok {
		return validator.Verdict{}, apperrors.NotFound("edit session not found")
	}
	if s.Mode != ModeEditing {
		return validator.Verdict{}, apperrors.SessionState("cannot edit draft while a save is in progress")
	}

	s.Draft = draft
	s.Verdict = validator.Draft(s.FileName, draft)
	return s.Verdict, nil
}

// BeginSave gates the transition into saving. Local validation runs before
// any network write; a failing draft blocks the save and surfaces the
// parser's own message. On success the session is locked in ModeSaving and
// the draft to persist is returned.
func (r *Registry) BeginSave(sessionID string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[sessionID]
	if !ok {
		return Session{}, apperrors.NotFound("edit session not found")
	}
	if s.Mode == ModeSaving {
		return Session{}, apperrors.SessionState("save already in progress")
	}

	if err := validator.ContentSize(s.Draft); err != nil {
		s.Verdict = validator.Verdict{Valid: false, Message: err.Error()}
		return Session{}, apperrors.LocalValidation(err.Error())
	}
	verdict := validator.Draft(s.FileName, s.Draft)
	s.Verdict = verdict
	if !verdict.Valid {
		return Session{}, apperrors.LocalValidation(verdict.Message)
	}

	s.Mode = ModeSaving
	return *s, nil
}

// FinishSave completes the save round-trip. Success destroys the session;
// failure returns it to editing with the draft preserved.
func (r *Registry) FinishSave(sessionID string, saved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[sessionID]
	if !ok {
		return apperrors.NotFound("edit session not found")
	}
	if s.Mode != ModeSaving {
		return apperrors.SessionState("no save in progress")
	}

	if saved {
		r.remove(s)
		return nil
	}
	s.Mode = ModeEditing
	return nil
}

// Cancel discards the session and its draft.
func (r *Registry) Cancel(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[sessionID]
	if !ok {
		return apperrors.NotFound("edit session not found")
	}
	r.remove(s)
	return nil
}

// Holder returns the session currently editing the asset, if any.
func (r *Registry) Holder(caseID, fileID string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byAsset[assetKey(caseID, fileID)]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

func (r *Registry) remove(s *Session) {
	delete(r.byID, s.ID)
	delete(r.byAsset, assetKey(s.CaseID, s.FileID))
}
