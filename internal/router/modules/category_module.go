package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-archive-admin/internal/interface/http"
)

type CategoryModule struct {
	Handler *handlers.CategoryHandler
	Guards  Guards
}

func NewCategoryModule(h *handlers.CategoryHandler, g Guards) *CategoryModule {
	return &CategoryModule{Handler: h, Guards: g}
}

// Register: reads for any session, writes for admins
func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	auth := m.Guards.authed(rg)
	auth.GET("/categories", m.Handler.List)
	auth.GET("/categories/:id", m.Handler.Get)

	admin := m.Guards.admin(rg)
	admin.POST("/categories", m.Handler.Create)
	admin.PATCH("/categories/:id", m.Handler.Update)
	admin.DELETE("/categories/:id", m.Handler.Delete)
}
