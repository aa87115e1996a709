// Package upstream is the HTTP client for the case-generation backend, the
// external collaborator that owns asset persistence and content generation.
// The request/response shapes here are fixed contracts; the client tolerates
// the documented degraded shapes but invents nothing beyond them.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"asset-service/internal/asset"
	apperrors "asset-service/pkg/errors"
	"asset-service/pkg/logger"
)

const (
	headerAPIKey = "X-Api-Key"
	headerDebug  = "X-Debug-Generation"
)

// Client talks to the upstream case-generation service.
type Client struct {
	baseURL string
	apiKey  string
	debug   bool
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, debug bool, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		debug:   debug,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ListResponse is the list-assets contract. A degraded response may carry a
// warning string alongside a usable asset list; that is not an error.
type ListResponse struct {
	CaseID         string        `json:"caseId"`
	CaseTitle      string        `json:"caseTitle"`
	Assets         []asset.Asset `json:"assets"`
	TotalAssets    int           `json:"totalAssets"`
	ExistingAssets int           `json:"existingAssets"`
	CaseContent    string        `json:"caseContent,omitempty"`
	Warning        string        `json:"warning,omitempty"`
}

// GenerateResult is the generate-asset success contract.
type GenerateResult struct {
	ValidationErrors []string `json:"validationErrors"`
	Warnings         []string `json:"warnings"`
}

// errorBody is the failure contract shared by the mutating endpoints.
type errorBody struct {
	Error            string   `json:"error"`
	Details          details  `json:"details"`
	ValidationErrors []string `json:"validationErrors"`
}

// details tolerates both a plain string and a list of strings.
type details []string

func (d *details) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		if single != "" {
			*d = details{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return nil // free-form details are display-only, never fatal
	}
	*d = many
	return nil
}

// ListAssets fetches the asset list with previews for a case.
func (c *Client) ListAssets(ctx context.Context, caseID string) (*ListResponse, error) {
	body, status, err := c.get(ctx, "/list-assets", url.Values{"caseId": {caseID}})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.statusError("list-assets", status, body)
	}

	var out ListResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.Upstream("decoding list-assets response", apperrors.ErrUpstreamShape)
	}
	if out.Assets == nil {
		return nil, apperrors.Upstream("list-assets response carried no assets", apperrors.ErrUpstreamShape)
	}
	if out.Warning != "" {
		c.log.Warn("degraded list-assets response",
			zap.String("case_id", caseID),
			zap.String("warning", out.Warning))
	}
	return &out, nil
}

// GetAsset fetches the full, authoritative content of one asset. The success
// body is raw text; failures arrive as JSON with error/details.
func (c *Client) GetAsset(ctx context.Context, caseID, fileID string) (string, error) {
	body, status, err := c.get(ctx, "/get-asset", url.Values{
		"caseId": {caseID},
		"fileId": {fileID},
	})
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", apperrors.NotFound(fmt.Sprintf("asset %s not found", fileID))
	}
	if status != http.StatusOK {
		return "", c.statusError("get-asset", status, body)
	}
	return string(body), nil
}

// UpdateAsset persists edited content byte-for-byte; the server applies no
// reformatting.
func (c *Client) UpdateAsset(ctx context.Context, caseID, fileID, content string) error {
	payload := map[string]string{
		"caseId":  caseID,
		"fileId":  fileID,
		"content": content,
	}
	body, status, err := c.post(ctx, "/update-asset", payload, false)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.statusError("update-asset", status, body)
	}
	return nil
}

// GenerateAsset asks the backend to (re)generate one asset. Server-side
// validation warnings are part of the success contract, not an error.
func (c *Client) GenerateAsset(ctx context.Context, caseID, fileID string, overwrite bool) (*GenerateResult, error) {
	payload := map[string]any{
		"caseId":    caseID,
		"fileId":    fileID,
		"overwrite": overwrite,
	}
	body, status, err := c.post(ctx, "/generate-asset", payload, c.debug)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.statusError("generate-asset", status, body)
	}

	var out GenerateResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apperrors.Upstream("decoding generate-asset response", apperrors.ErrUpstreamShape)
	}
	return &out, nil
}

// Health fetches the backend's free-form diagnostic JSON. The payload is
// consumed only for display and never parsed for control flow.
func (c *Client) Health(ctx context.Context, caseID string) (json.RawMessage, error) {
	body, status, err := c.get(ctx, "/health", url.Values{"caseId": {caseID}})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.statusError("health", status, body)
	}
	if !json.Valid(body) {
		body, _ = json.Marshal(map[string]string{"raw": string(body)})
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, 0, apperrors.Upstream("building request", err)
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload any, debug bool) ([]byte, int, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, apperrors.Upstream("encoding request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, apperrors.Upstream("building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if debug {
		req.Header.Set(headerDebug, "1")
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, apperrors.Upstream("upstream request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apperrors.Upstream("reading upstream response", err)
	}
	return body, resp.StatusCode, nil
}

// statusError folds a failure body's error, details, and validationErrors
// into one diagnostic message.
func (c *Client) statusError(op string, status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	parts := make([]string, 0, 3)
	if eb.Error != "" {
		parts = append(parts, eb.Error)
	}
	parts = append(parts, eb.Details...)
	parts = append(parts, eb.ValidationErrors...)
	if len(parts) == 0 {
		parts = append(parts, http.StatusText(status))
	}
	detail := strings.Join(parts, "; ")
	c.log.Warn("upstream call failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("detail", logger.SanitizeLogMessage(detail)))
	return apperrors.Upstream(
		fmt.Sprintf("%s failed (%d): %s", op, status, detail),
		apperrors.ErrUpstream)
}
