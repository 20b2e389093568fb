package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/pkg/response"
)

// HealthHandler reports liveness; Ping, when set, checks the database.
type HealthHandler struct {
	Ping func(ctx context.Context) error
	Now  func() time.Time
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{Ping: ping, Now: time.Now}
}

type healthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Health GET /api/healthz
func (h *HealthHandler) Health(c *gin.Context) {
	st := healthStatus{Status: "ok", Timestamp: h.Now().UTC()}
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			st.Status = "degraded"
			response.Fail(c, http.StatusServiceUnavailable, string(application.CodeUnavailable), "database unreachable", st)
			return
		}
	}
	response.OK(c, st, "healthy")
}
