// Package regen orchestrates regenerate-asset calls against the upstream
// generator, serializing runs per asset and folding server-reported
// validation state into a transient RegenerationRun record.
package regen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"asset-service/internal/upstream"
	"asset-service/pkg/metrics"
)

// Status of one regeneration run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is the transient record of one in-flight or finished regenerate call.
// A failed run reports its diagnostics but never mutates the asset's
// persisted content.
type Run struct {
	ID     string `json:"id"`
	CaseID string `json:"case_id"`
	FileID string `json:"file_id"`
	Status Status `json:"status"`

	ValidationErrors []string `json:"validation_errors,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	ErrorMessage     string   `json:"error_message,omitempty"`

	// Shared is true when this caller joined a run another caller started:
	// two regenerate clicks for the same asset produce one upstream call.
	Shared bool `json:"shared,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// WarningCount counts the quality signals to surface, for the
// "generated with N warnings" notice.
func (r Run) WarningCount() int {
	return len(r.ValidationErrors) + len(r.Warnings)
}

// Generator is the slice of the upstream client the coordinator needs.
type Generator interface {
	GenerateAsset(ctx context.Context, caseID, fileID string, overwrite bool) (*upstream.GenerateResult, error)
}

// Coordinator serializes regeneration per asset. Concurrent requests for the
// same asset share a single upstream generation; different assets proceed
// independently.
type Coordinator struct {
	gen       Generator
	group     singleflight.Group
	bulkDelay time.Duration
	log       *zap.Logger
}

func NewCoordinator(gen Generator, bulkDelay time.Duration, log *zap.Logger) *Coordinator {
	return &Coordinator{gen: gen, bulkDelay: bulkDelay, log: log}
}

// Regenerate runs one regeneration to completion. The returned Run is always
// usable: upstream failure is recorded as StatusFailed rather than an error,
// so callers can surface it without losing the asset's current state.
func (c *Coordinator) Regenerate(ctx context.Context, caseID, fileID string, overwrite bool) Run {
	key := caseID + "/" + fileID

	v, _, shared := c.group.Do(key, func() (any, error) {
		return c.runOnce(ctx, caseID, fileID, overwrite), nil
	})

	run := v.(Run)
	run.Shared = shared
	return run
}

func (c *Coordinator) runOnce(ctx context.Context, caseID, fileID string, overwrite bool) Run {
	metrics.CountRegenRun()
	run := Run{
		ID:        uuid.NewString(),
		CaseID:    caseID,
		FileID:    fileID,
		Status:    StatusPending,
		StartedAt: time.Now(),
	}

	result, err := c.gen.GenerateAsset(ctx, caseID, fileID, overwrite)
	run.FinishedAt = time.Now()

	if err != nil {
		run.Status = StatusFailed
		run.ErrorMessage = err.Error()
		c.log.Error("regeneration failed",
			zap.String("case_id", caseID),
			zap.String("file_id", fileID),
			zap.Error(err))
		return run
	}

	run.Status = StatusSucceeded
	run.ValidationErrors = result.ValidationErrors
	run.Warnings = result.Warnings
	if n := run.WarningCount(); n > 0 {
		c.log.Warn("regeneration succeeded with warnings",
			zap.String("case_id", caseID),
			zap.String("file_id", fileID),
			zap.Int("warnings", n))
	}
	return run
}

// GenerateBlueprints regenerates a batch of assets sequentially with a fixed
// inter-request delay, the pacing used by bulk "generate N blueprints"
// flows. It stops early when ctx is cancelled.
func (c *Coordinator) GenerateBlueprints(ctx context.Context, caseID string, fileIDs []string, overwrite bool) []Run {
	runs := make([]Run, 0, len(fileIDs))
	for i, fileID := range fileIDs {
		if i > 0 && c.bulkDelay > 0 {
			select {
			case <-time.After(c.bulkDelay):
			case <-ctx.Done():
				return runs
			}
		}
		if ctx.Err() != nil {
			return runs
		}
		runs = append(runs, c.Regenerate(ctx, caseID, fileID, overwrite))
	}
	return runs
}

// Notice builds the user-facing toast line for a finished run.
func Notice(run Run) string {
	switch run.Status {
	case StatusSucceeded:
		switch n := run.WarningCount(); {
		case n == 1:
			return "asset regenerated with 1 warning"
		case n > 1:
			return fmt.Sprintf("asset regenerated with %d warnings", n)
		}
		return "asset regenerated successfully"
	case StatusFailed:
		return fmt.Sprintf("regeneration failed: %s", run.ErrorMessage)
	default:
		return "regeneration in progress"
	}
}
