package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-archive-admin/internal/container"
	handlers "github.com/oksasatya/go-archive-admin/internal/interface/http"
	"github.com/oksasatya/go-archive-admin/internal/interface/middleware"
)

type ArchiveModule struct {
	Handler *handlers.ArchiveHandler
	Guards  Guards
}

func NewArchiveModule(h *handlers.ArchiveHandler, g Guards) *ArchiveModule {
	return &ArchiveModule{Handler: h, Guards: g}
}

func (m *ArchiveModule) Register(rg *gin.RouterGroup) {
	auth := m.Guards.authed(rg)
	{
		auth.POST("/archives", m.Handler.Create)
		// uploads hit object storage; keep them per-account bounded
		auth.POST("/archives/upload",
			middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByAccount(), nil, container.GetLogger()),
			m.Handler.Upload)
		auth.GET("/archives", m.Handler.List)
		auth.GET("/archives/search", m.Handler.Search)
		auth.GET("/archives/:id", m.Handler.Get)
		auth.PATCH("/archives/:id", m.Handler.Update)
		auth.DELETE("/archives/:id", m.Handler.Delete)
	}
}
