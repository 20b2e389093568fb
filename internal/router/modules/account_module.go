package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-archive-admin/internal/interface/http"
)

// AccountModule exposes account administration under /users (admin only).
type AccountModule struct {
	Handler *handlers.AccountHandler
	Guards  Guards
}

func NewAccountModule(h *handlers.AccountHandler, g Guards) *AccountModule {
	return &AccountModule{Handler: h, Guards: g}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	admin := m.Guards.admin(rg)
	{
		admin.POST("/users", m.Handler.Create)
		admin.GET("/users", m.Handler.List)
		admin.GET("/users/:id", m.Handler.Get)
		admin.PATCH("/users/:id", m.Handler.Update)
		admin.DELETE("/users/:id", m.Handler.Deactivate)
	}
}
