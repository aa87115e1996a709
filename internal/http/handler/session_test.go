package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-service/internal/session"
	apperrors "asset-service/pkg/errors"
	"asset-service/pkg/validator"
)

type fakeEditCoordinator struct {
	session   session.Session
	verdict   validator.Verdict
	err       error
	saveErr   error
	cancelled string
	lastDraft string
}

func (f *fakeEditCoordinator) BeginEdit(_ context.Context, _, _ string, _ session.Surface) (session.Session, error) {
	return f.session, f.err
}

func (f *fakeEditCoordinator) GetSession(_ string) (session.Session, error) {
	return f.session, f.err
}

func (f *fakeEditCoordinator) UpdateDraft(_, draft string) (validator.Verdict, error) {
	f.lastDraft = draft
	return f.verdict, f.err
}

func (f *fakeEditCoordinator) Save(_ context.Context, _ string) error {
	return f.saveErr
}

func (f *fakeEditCoordinator) CancelEdit(sessionID string) error {
	f.cancelled = sessionID
	return f.err
}

func TestBeginEdit_Created(t *testing.T) {
	edits := &fakeEditCoordinator{session: session.Session{
		ID:      "s1",
		FileID:  "f1",
		Surface: session.SurfaceModal,
		Mode:    session.ModeEditing,
	}}
	h := NewSessionHandler(edits)

	c, rec := newAssetContext(t, http.MethodPost, "/api/cases/case-1/assets/f1/edit",
		`{"surface":"modal"}`,
		map[string]string{paramCaseID: "case-1", paramFileID: "f1"})

	require.NoError(t, h.BeginEdit(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"s1"`)
}

func TestBeginEdit_HeldPropagates(t *testing.T) {
	edits := &fakeEditCoordinator{err: apperrors.SessionHeld("asset f1 is being edited via the inline surface")}
	h := NewSessionHandler(edits)

	c, _ := newAssetContext(t, http.MethodPost, "/api/cases/case-1/assets/f1/edit",
		`{"surface":"modal"}`,
		map[string]string{paramCaseID: "case-1", paramFileID: "f1"})

	err := h.BeginEdit(c)
	assert.ErrorIs(t, err, apperrors.ErrSessionHeld)
}

func TestBeginEdit_RejectsBadBody(t *testing.T) {
	h := NewSessionHandler(&fakeEditCoordinator{})

	c, rec := newAssetContext(t, http.MethodPost, "/api/cases/case-1/assets/f1/edit",
		`{"surface":`,
		map[string]string{paramCaseID: "case-1", paramFileID: "f1"})

	require.NoError(t, h.BeginEdit(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDraft_ReturnsVerdict(t *testing.T) {
	edits := &fakeEditCoordinator{verdict: validator.Verdict{Valid: false, Message: "unexpected end of JSON input"}}
	h := NewSessionHandler(edits)

	c, rec := newAssetContext(t, http.MethodPut, "/api/sessions/s1/draft",
		`{"draft":"{\"broken\":"}`,
		map[string]string{paramSessionID: "s1"})

	require.NoError(t, h.UpdateDraft(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":false`)
	assert.Equal(t, `{"broken":`, edits.lastDraft)
}

func TestUpdateDraft_AcceptsLargeDraft(t *testing.T) {
	edits := &fakeEditCoordinator{verdict: validator.Verdict{Valid: true}}
	h := NewSessionHandler(edits)

	// Drafts may run to several megabytes; the bind helper must not cut
	// them off below the validator's content cap.
	big := strings.Repeat("x", 2<<20)
	body, err := json.Marshal(UpdateDraftRequest{Draft: big})
	require.NoError(t, err)

	c, rec := newAssetContext(t, http.MethodPut, "/api/sessions/s1/draft", string(body),
		map[string]string{paramSessionID: "s1"})

	require.NoError(t, h.UpdateDraft(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, edits.lastDraft, 2<<20)
}

func TestSave_LocalValidationPropagates(t *testing.T) {
	edits := &fakeEditCoordinator{saveErr: apperrors.LocalValidation("unexpected end of JSON input")}
	h := NewSessionHandler(edits)

	c, _ := newAssetContext(t, http.MethodPost, "/api/sessions/s1/save", "",
		map[string]string{paramSessionID: "s1"})

	err := h.Save(c)
	assert.ErrorIs(t, err, apperrors.ErrLocalValidation)
}

func TestCancel_OK(t *testing.T) {
	edits := &fakeEditCoordinator{}
	h := NewSessionHandler(edits)

	c, rec := newAssetContext(t, http.MethodDelete, "/api/sessions/s1", "",
		map[string]string{paramSessionID: "s1"})

	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", edits.cancelled)
}
