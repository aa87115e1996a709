package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Metrics holds all performance counters for the application.
// Thread-safe via atomics and mutex.
type Metrics struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	TotalLatencyMs int64            `json:"total_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	StartTime      time.Time        `json:"start_time"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	StatusCodes    map[int]int64    `json:"status_codes"`

	// Domain counters for the asset pipeline.
	RenderFaults   int64 `json:"render_faults"`
	ParseFallbacks int64 `json:"parse_fallbacks"`
	RegenRuns      int64 `json:"regen_runs"`
	CacheHits      int64 `json:"cache_hits"`
	CacheMisses    int64 `json:"cache_misses"`

	mu sync.Mutex
}

var globalMetrics *Metrics
var once sync.Once

// GetMetrics returns the singleton metrics instance
func GetMetrics() *Metrics {
	once.Do(func() {
		globalMetrics = &Metrics{
			StartTime:      time.Now(),
			EndpointCounts: make(map[string]int64),
			StatusCodes:    make(map[int]int64),
		}
	})
	return globalMetrics
}

// Domain counter hooks, called from the render boundary, dispatcher, regen
// coordinator, and content cache call sites.
func CountRenderFault()   { atomic.AddInt64(&GetMetrics().RenderFaults, 1) }
func CountParseFallback() { atomic.AddInt64(&GetMetrics().ParseFallbacks, 1) }
func CountRegenRun()      { atomic.AddInt64(&GetMetrics().RegenRuns, 1) }
func CountCacheHit()      { atomic.AddInt64(&GetMetrics().CacheHits, 1) }
func CountCacheMiss()     { atomic.AddInt64(&GetMetrics().CacheMisses, 1) }

// MetricsMiddleware tracks request count, latency, active connections, and error rates
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m := GetMetrics()

			atomic.AddInt64(&m.ActiveRequests, 1)
			start := time.Now()

			err := next(c)

			latencyMs := time.Since(start).Milliseconds()
			atomic.AddInt64(&m.ActiveRequests, -1)
			atomic.AddInt64(&m.TotalRequests, 1)
			atomic.AddInt64(&m.TotalLatencyMs, latencyMs)

			// Update max latency (lock-free CAS loop)
			for {
				current := atomic.LoadInt64(&m.MaxLatencyMs)
				if latencyMs <= current {
					break
				}
				if atomic.CompareAndSwapInt64(&m.MaxLatencyMs, current, latencyMs) {
					break
				}
			}

			statusCode := c.Response().Status
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			endpoint := fmt.Sprintf("%s %s", c.Request().Method, path)

			m.mu.Lock()
			m.EndpointCounts[endpoint]++
			m.StatusCodes[statusCode]++
			if statusCode >= 400 {
				atomic.AddInt64(&m.TotalErrors, 1)
			}
			m.mu.Unlock()

			return err
		}
	}
}

// Snapshot is a point-in-time copy of performance data
type Snapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	ErrorRate      float64          `json:"error_rate_pct"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	UptimeSeconds  float64          `json:"uptime_seconds"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	StatusCodes    map[int]int64    `json:"status_codes"`
	RenderFaults   int64            `json:"render_faults"`
	ParseFallbacks int64            `json:"parse_fallbacks"`
	RegenRuns      int64            `json:"regen_runs"`
	CacheHits      int64            `json:"cache_hits"`
	CacheMisses    int64            `json:"cache_misses"`
}

// RegisterMetricsRoute adds the /metrics endpoint
func RegisterMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", func(c echo.Context) error {
		m := GetMetrics()
		total := atomic.LoadInt64(&m.TotalRequests)
		errCount := atomic.LoadInt64(&m.TotalErrors)
		totalLatency := atomic.LoadInt64(&m.TotalLatencyMs)
		uptime := time.Since(m.StartTime).Seconds()

		var avgLatency float64
		if total > 0 {
			avgLatency = float64(totalLatency) / float64(total)
		}
		var errorRate float64
		if total > 0 {
			errorRate = float64(errCount) / float64(total) * 100
		}

		m.mu.Lock()
		endpointCounts := make(map[string]int64, len(m.EndpointCounts))
		for k, v := range m.EndpointCounts {
			endpointCounts[k] = v
		}
		statusCodes := make(map[int]int64, len(m.StatusCodes))
		for k, v := range m.StatusCodes {
			statusCodes[k] = v
		}
		m.mu.Unlock()

		return c.JSON(http.StatusOK, Snapshot{
			TotalRequests:  total,
			ActiveRequests: atomic.LoadInt64(&m.ActiveRequests),
			TotalErrors:    errCount,
			ErrorRate:      errorRate,
			AvgLatencyMs:   avgLatency,
			MaxLatencyMs:   atomic.LoadInt64(&m.MaxLatencyMs),
			UptimeSeconds:  uptime,
			EndpointCounts: endpointCounts,
			StatusCodes:    statusCodes,
			RenderFaults:   atomic.LoadInt64(&m.RenderFaults),
			ParseFallbacks: atomic.LoadInt64(&m.ParseFallbacks),
			RegenRuns:      atomic.LoadInt64(&m.RegenRuns),
			CacheHits:      atomic.LoadInt64(&m.CacheHits),
			CacheMisses:    atomic.LoadInt64(&m.CacheMisses),
		})
	})
}
