package app

import (
	"time"

	"go.uber.org/zap"

	"asset-service/internal/config"
	"asset-service/internal/regen"
	"asset-service/internal/render"
	"asset-service/internal/session"
	"asset-service/internal/upstream"
	"asset-service/pkg/cache"
)

// InitializeService wires the full dependency graph from configuration.
func InitializeService(cfg *config.Config, log *zap.Logger) *Service {
	client := upstream.NewClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.APIKey,
		cfg.Upstream.Timeout,
		cfg.Upstream.DebugGeneration,
		log,
	)

	content := cache.NewContentCache(cfg.App.ContentCacheTTL)
	go sweepExpired(content, cfg.App.ContentCacheTTL)

	return NewService(
		client,
		render.NewDispatcher(cfg.App.DeckCompilerEnabled),
		render.NewBoundary(log, cfg.App.VerboseDiagnostics),
		session.NewRegistry(),
		regen.NewCoordinator(client, cfg.App.BulkGenerateDelay, log),
		content,
		log,
	)
}

// sweepExpired reclaims memory for cached bodies that expired without being
// read again; reads already ignore expired entries. Runs for the process
// lifetime.
func sweepExpired(content *cache.ContentCache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		content.Clear()
	}
}
