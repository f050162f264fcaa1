package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/acadmin/pkg/logger"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is a dependency the service needs to be ready: the database, Redis.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	dependencies map[string]Pinger
	started      time.Time
	log          logger.Logger
}

// NewHealthHandler creates a new HealthHandler. Nil dependencies are skipped.
func NewHealthHandler(dependencies map[string]Pinger, log logger.Logger) *HealthHandler {
	deps := make(map[string]Pinger, len(dependencies))
	for name, p := range dependencies {
		if p != nil {
			deps[name] = p
		}
	}
	return &HealthHandler{dependencies: deps, started: time.Now(), log: log.WithComponent("health")}
}

// HealthCheck reports the status of every dependency.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	checks, healthy := h.performChecks(c.Request.Context())
	status, httpStatus := "healthy", http.StatusOK
	if !healthy {
		status, httpStatus = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"checks":    checks,
	})
}

// ReadinessCheck answers 200 only when every dependency responds.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if _, healthy := h.performChecks(c.Request.Context()); !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// LivenessCheck answers 200 while the process serves requests.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *HealthHandler) performChecks(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.dependencies))
	for name := range h.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu      sync.Mutex
		checks  = make(map[string]string, len(names))
		healthy = true
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name, dep := name, h.dependencies[name]
		g.Go(func() error {
			status := "ok"
			if err := dep.Ping(gctx); err != nil {
				h.log.Warn(ctx, "Health check failed", logger.String("dependency", name), logger.String("error", err.Error()))
				status = "error: " + err.Error()
			}
			mu.Lock()
			checks[name] = status
			if status != "ok" {
				healthy = false
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return checks, healthy
}
