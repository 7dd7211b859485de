package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Backend string            `json:"backend,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// StorageChecker reports whether the favourites backend is usable.
type StorageChecker interface {
	Backend() string
	Check(ctx context.Context) error
}

type HealthController struct {
	storage      StorageChecker
	tasksEnabled bool
	version      string
}

func NewHealthController(storage StorageChecker, tasksEnabled bool, version string) *HealthController {
	return &HealthController{
		storage:      storage,
		tasksEnabled: tasksEnabled,
		version:      version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"
	backend := ""

	if h.storage != nil {
		backend = h.storage.Backend()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.storage.Check(ctx); err != nil {
			checks["storage"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["storage"] = "ok"
		}
	} else {
		checks["storage"] = "not configured"
	}

	if h.tasksEnabled {
		checks["tasks"] = "ok"
	} else {
		checks["tasks"] = "disabled"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Backend: backend,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
