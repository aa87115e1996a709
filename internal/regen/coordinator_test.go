package regen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-service/internal/upstream"
)

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int32
	delay   time.Duration
	result  *upstream.GenerateResult
	err     error
	fileIDs []string
}

func (f *fakeGenerator) GenerateAsset(ctx context.Context, caseID, fileID string, overwrite bool) (*upstream.GenerateResult, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.fileIDs = append(f.fileIDs, fileID)
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestRegenerate_Success(t *testing.T) {
	gen := &fakeGenerator{result: &upstream.GenerateResult{ValidationErrors: []string{"missing field X"}}}
	c := NewCoordinator(gen, 0, zap.NewNop())

	run := c.Regenerate(context.Background(), "c1", "f1", true)

	assert.Equal(t, StatusSucceeded, run.Status)
	assert.Equal(t, []string{"missing field X"}, run.ValidationErrors)
	assert.Equal(t, 1, run.WarningCount())
	assert.Equal(t, "asset regenerated with 1 warning", Notice(run))
}

func TestNotice_PluralizesWarnings(t *testing.T) {
	one := Run{Status: StatusSucceeded, Warnings: []string{"w1"}}
	assert.Equal(t, "asset regenerated with 1 warning", Notice(one))

	three := Run{Status: StatusSucceeded, Warnings: []string{"w1", "w2"}, ValidationErrors: []string{"v1"}}
	assert.Equal(t, "asset regenerated with 3 warnings", Notice(three))

	clean := Run{Status: StatusSucceeded}
	assert.Equal(t, "asset regenerated successfully", Notice(clean))
}

func TestRegenerate_FailureDoesNotError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("generate-asset failed (502): model timeout")}
	c := NewCoordinator(gen, 0, zap.NewNop())

	run := c.Regenerate(context.Background(), "c1", "f1", true)

	assert.Equal(t, StatusFailed, run.Status)
	assert.Contains(t, run.ErrorMessage, "model timeout")
	assert.Contains(t, Notice(run), "regeneration failed")
}

func TestRegenerate_SerializedPerAsset(t *testing.T) {
	gen := &fakeGenerator{delay: 50 * time.Millisecond, result: &upstream.GenerateResult{}}
	c := NewCoordinator(gen, 0, zap.NewNop())

	var wg sync.WaitGroup
	shared := int32(0)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run := c.Regenerate(context.Background(), "c1", "f1", true)
			assert.Equal(t, StatusSucceeded, run.Status)
			if run.Shared {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}
	wg.Wait()

	// Five concurrent clicks, one upstream generation.
	assert.Equal(t, int32(1), atomic.LoadInt32(&gen.calls))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&shared), int32(4))
}

func TestRegenerate_DifferentAssetsIndependent(t *testing.T) {
	gen := &fakeGenerator{delay: 20 * time.Millisecond, result: &upstream.GenerateResult{}}
	c := NewCoordinator(gen, 0, zap.NewNop())

	var wg sync.WaitGroup
	for _, id := range []string{"f1", "f2"} {
		wg.Add(1)
		go func(fileID string) {
			defer wg.Done()
			c.Regenerate(context.Background(), "c1", fileID, true)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&gen.calls))
}

func TestGenerateBlueprints_SequentialWithDelay(t *testing.T) {
	gen := &fakeGenerator{result: &upstream.GenerateResult{}}
	c := NewCoordinator(gen, 10*time.Millisecond, zap.NewNop())

	start := time.Now()
	runs := c.GenerateBlueprints(context.Background(), "c1", []string{"f1", "f2", "f3"}, true)

	require.Len(t, runs, 3)
	assert.Equal(t, []string{"f1", "f2", "f3"}, gen.fileIDs)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestGenerateBlueprints_StopsOnCancel(t *testing.T) {
	gen := &fakeGenerator{result: &upstream.GenerateResult{}}
	c := NewCoordinator(gen, 50*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runs := c.GenerateBlueprints(ctx, "c1", []string{"f1", "f2"}, true)
	assert.LessOrEqual(t, len(runs), 1)
}
