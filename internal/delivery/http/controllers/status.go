package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type StatusHandler struct {
	deps map[string]Pinger
}

func NewStatusHandler(deps map[string]Pinger) *StatusHandler {
	return &StatusHandler{deps: deps}
}

func (h *StatusHandler) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(gin.H, len(h.deps))
	code := http.StatusOK
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	status := "Available"
	if code != http.StatusOK {
		status = "Degraded"
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}
