package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"asset-service/internal/app"
)

type SessionHandler struct {
	edits EditCoordinator
}

func NewSessionHandler(edits EditCoordinator) *SessionHandler {
	return &SessionHandler{edits: edits}
}

func (h *SessionHandler) BeginEdit(c echo.Context) error {
	caseID, fileID, err := assetParams(c)
	if err != nil {
		return err
	}

	var req app.BeginEditRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	s, err := h.edits.BeginEdit(c.Request().Context(), caseID, fileID, req.Surface)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	sessionID := c.Param(paramSessionID)
	if sessionID == "" {
		return respondError(c, http.StatusBadRequest, msgSessionIDRequired)
	}

	s, err := h.edits.GetSession(sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

type UpdateDraftRequest struct {
	Draft string `json:"draft"`
}

func (h *SessionHandler) UpdateDraft(c echo.Context) error {
	sessionID := c.Param(paramSessionID)
	if sessionID == "" {
		return respondError(c, http.StatusBadRequest, msgSessionIDRequired)
	}

	var req UpdateDraftRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	verdict, err := h.edits.UpdateDraft(sessionID, req.Draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"localValidation": verdict})
}

func (h *SessionHandler) Save(c echo.Context) error {
	sessionID := c.Param(paramSessionID)
	if sessionID == "" {
		return respondError(c, http.StatusBadRequest, msgSessionIDRequired)
	}

	if err := h.edits.Save(c.Request().Context(), sessionID); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, msgDraftSaved)
}

func (h *SessionHandler) Cancel(c echo.Context) error {
	sessionID := c.Param(paramSessionID)
	if sessionID == "" {
		return respondError(c, http.StatusBadRequest, msgSessionIDRequired)
	}

	if err := h.edits.CancelEdit(sessionID); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, msgSessionCancelled)
}
