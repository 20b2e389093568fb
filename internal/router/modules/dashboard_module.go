package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-archive-admin/internal/interface/http"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Guards  Guards
}

func NewDashboardModule(h *handlers.DashboardHandler, g Guards) *DashboardModule {
	return &DashboardModule{Handler: h, Guards: g}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	m.Guards.admin(rg).GET("/dashboard/stats", m.Handler.Stats)
}
