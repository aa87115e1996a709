package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "asset-service/pkg/errors"
)

func TestBegin_SingleWriterAcrossSurfaces(t *testing.T) {
	r := NewRegistry()

	s, err := r.Begin("c1", "f1", "memo.md", SurfaceInline, "draft")
	require.NoError(t, err)
	assert.Equal(t, ModeEditing, s.Mode)

	// The modal surface cannot grab the same asset.
	_, err = r.Begin("c1", "f1", "memo.md", SurfaceModal, "draft")
	assert.True(t, errors.Is(err, apperrors.ErrSessionHeld))

	// A different asset is independent.
	_, err = r.Begin("c1", "f2", "other.md", SurfaceModal, "draft")
	assert.NoError(t, err)
}

func TestBegin_RejectsUnknownSurface(t *testing.T) {
	r := NewRegistry()
	_, err := r.Begin("c1", "f1", "memo.md", Surface("sidebar"), "")
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestUpdateDraft_RunsLocalValidation(t *testing.T) {
	r := NewRegistry()
	s, err := r.Begin("c1", "f1", "data.json", SurfaceInline, `{"ok":true}`)
	require.NoError(t, err)

	verdict, err := r.UpdateDraft(s.ID, `{"broken":`)
	require.NoError(t, err)
	assert.False(t, verdict.Valid)

	// Invalid drafts are kept; validation is advisory until save.
	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"broken":`, got.Draft)
}

func TestBeginSave_BlocksInvalidJSONLocally(t *testing.T) {
	r := NewRegistry()
	s, err := r.Begin("c1", "f1", "data.json", SurfaceModal, `{"broken":`)
	require.NoError(t, err)

	_, err = r.BeginSave(s.ID)
	assert.True(t, errors.Is(err, apperrors.ErrLocalValidation))

	// The session is still editing, draft intact.
	got, _ := r.Get(s.ID)
	assert.Equal(t, ModeEditing, got.Mode)
	assert.Equal(t, `{"broken":`, got.Draft)
}

func TestSaveLifecycle_SuccessDestroysSession(t *testing.T) {
	r := NewRegistry()
	s, err := r.Begin("c1", "f1", "data.json", SurfaceInline, `{"a":1}`)
	require.NoError(t, err)

	locked, err := r.BeginSave(s.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeSaving, locked.Mode)

	// Double submit is rejected while saving.
	_, err = r.BeginSave(s.ID)
	assert.True(t, errors.Is(err, apperrors.ErrSessionState))
	_, err = r.UpdateDraft(s.ID, "x")
	assert.True(t, errors.Is(err, apperrors.ErrSessionState))

	require.NoError(t, r.FinishSave(s.ID, true))
	_, err = r.Get(s.ID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	// The asset is free for the next editor.
	_, err = r.Begin("c1", "f1", "data.json", SurfaceModal, "{}")
	assert.NoError(t, err)
}

func TestSaveLifecycle_FailurePreservesDraft(t *testing.T) {
	r := NewRegistry()
	s, err := r.Begin("c1", "f1", "data.json", SurfaceInline, `{"a":1}`)
	require.NoError(t, err)

	_, err = r.BeginSave(s.ID)
	require.NoError(t, err)
	require.NoError(t, r.FinishSave(s.ID, false))

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Equal(t, ModeEditing, got.Mode)
	assert.Equal(t, `{"a":1}`, got.Draft)
}

func TestCancel_FreesAsset(t *testing.T) {
	r := NewRegistry()
	s, err := r.Begin("c1", "f1", "memo.md", SurfaceInline, "x")
	require.NoError(t, err)

	_, held := r.Holder("c1", "f1")
	assert.True(t, held)

	require.NoError(t, r.Cancel(s.ID))
	_, held = r.Holder("c1", "f1")
	assert.False(t, held)
}
