// Package session owns the per-asset edit lifecycle. A session is created
// when an editor opens, destroyed on cancel or successful save, and never
// persisted. The registry enforces a single-writer invariant at the data
// layer: one live session per asset, regardless of which UI surface asked.
package session

import (
	"time"

	"asset-service/pkg/validator"
)

// Surface identifies which editing surface opened the session.
type Surface string

const (
	SurfaceInline Surface = "inline"
	SurfaceModal  Surface = "modal"
)

// Mode is the session's position in the edit state machine. The implicit
// "viewing" state is the absence of a session.
type Mode string

const (
	ModeEditing Mode = "editing"
	ModeSaving  Mode = "saving"
)

// Session is one in-progress edit of one asset.
type Session struct {
	ID       string            `json:"id"`
	CaseID   string            `json:"case_id"`
	FileID   string            `json:"file_id"`
	FileName string            `json:"file_name"`
	Surface  Surface           `json:"surface"`
	Mode     Mode              `json:"mode"`
	Draft    string            `json:"-"`
	Verdict  validator.Verdict `json:"local_validation"`

	StartedAt time.Time `json:"started_at"`
}

// ValidSurface reports whether s names a known editing surface.
func ValidSurface(s Surface) bool {
	return s == SurfaceInline || s == SurfaceModal
}

func assetKey(caseID, fileID string) string {
	return caseID + "/" + fileID
}
