package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"asset-service/internal/app"
	"asset-service/internal/config"
	"asset-service/internal/http/handler"
	"asset-service/internal/http/middleware"
	"asset-service/pkg/metrics"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "12M" // content bodies up to the 10MB validator cap, plus envelope
)

type Server struct {
	echo *echo.Echo
}

func NewServer(cfg *config.Config, svc *app.Service, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(metrics.MetricsMiddleware())

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Regeneration fans out to the generation backend; keep it on a tighter
	// budget than reads.
	strictRateLimiter := middleware.NewStrictRateLimiter()

	assetHandler := handler.NewAssetHandler(svc, svc)
	sessionHandler := handler.NewSessionHandler(svc)

	e.GET("/health", healthCheck)
	metrics.RegisterMetricsRoute(e)

	api := e.Group("/api")

	cases := api.Group("/cases/:case_id")
	cases.GET("/assets", assetHandler.ListAssets)
	cases.GET("/assets/:file_id", assetHandler.GetAsset)
	cases.GET("/assets/:file_id/render", assetHandler.RenderAsset)
	cases.POST("/assets/:file_id/edit", sessionHandler.BeginEdit)
	cases.POST("/assets/:file_id/regenerate", assetHandler.Regenerate, strictRateLimiter.Middleware())
	cases.POST("/blueprints/generate", assetHandler.GenerateBlueprints, strictRateLimiter.Middleware())
	cases.GET("/health", assetHandler.CaseHealth)

	sessions := api.Group("/sessions/:session_id")
	sessions.GET("", sessionHandler.GetSession)
	sessions.PUT("/draft", sessionHandler.UpdateDraft)
	sessions.POST("/save", sessionHandler.Save)
	sessions.DELETE("", sessionHandler.Cancel)

	return &Server{echo: e}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
