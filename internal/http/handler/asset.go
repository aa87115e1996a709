package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"asset-service/internal/app"
)

type AssetHandler struct {
	assets AssetReader
	gen    GenerationRunner
}

func NewAssetHandler(assets AssetReader, gen GenerationRunner) *AssetHandler {
	return &AssetHandler{assets: assets, gen: gen}
}

func (h *AssetHandler) ListAssets(c echo.Context) error {
	caseID := c.Param(paramCaseID)
	if caseID == "" {
		return respondError(c, http.StatusBadRequest, msgCaseIDRequired)
	}

	resp, err := h.assets.ListAssets(c.Request().Context(), caseID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AssetHandler) GetAsset(c echo.Context) error {
	caseID, fileID, err := assetParams(c)
	if err != nil {
		return err
	}

	resp, err := h.assets.GetAsset(c.Request().Context(), caseID, fileID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AssetHandler) RenderAsset(c echo.Context) error {
	caseID, fileID, err := assetParams(c)
	if err != nil {
		return err
	}

	tree, err := h.assets.RenderAsset(c.Request().Context(), caseID, fileID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tree)
}

// RegenerateRequest is the optional regenerate body. Overwrite is a pointer
// so an omitted field keeps the contract's default of true; only an explicit
// false preserves existing content.
type RegenerateRequest struct {
	Overwrite *bool `json:"overwrite"`
}

func (h *AssetHandler) Regenerate(c echo.Context) error {
	caseID, fileID, err := assetParams(c)
	if err != nil {
		return err
	}

	var req RegenerateRequest
	if c.Request().ContentLength > 0 {
		if err := bindStrictJSON(c, &req); err != nil {
			return handleHTTPError(c, err)
		}
	}
	overwrite := true
	if req.Overwrite != nil {
		overwrite = *req.Overwrite
	}

	resp, err := h.gen.Regenerate(c.Request().Context(), caseID, fileID, overwrite)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AssetHandler) GenerateBlueprints(c echo.Context) error {
	caseID := c.Param(paramCaseID)
	if caseID == "" {
		return respondError(c, http.StatusBadRequest, msgCaseIDRequired)
	}

	var req app.BlueprintRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if len(req.FileIDs) == 0 {
		return respondError(c, http.StatusBadRequest, msgFileIDsRequired)
	}

	runs := h.gen.GenerateBlueprints(c.Request().Context(), caseID, req)
	return c.JSON(http.StatusOK, map[string]any{"runs": runs})
}

func (h *AssetHandler) CaseHealth(c echo.Context) error {
	caseID := c.Param(paramCaseID)
	if caseID == "" {
		return respondError(c, http.StatusBadRequest, msgCaseIDRequired)
	}

	raw, err := h.assets.Health(c.Request().Context(), caseID)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, raw)
}

func assetParams(c echo.Context) (string, string, error) {
	caseID := c.Param(paramCaseID)
	if caseID == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, msgCaseIDRequired)
	}
	fileID := c.Param(paramFileID)
	if fileID == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, msgFileIDRequired)
	}
	return caseID, fileID, nil
}
