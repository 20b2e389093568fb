package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-archive-admin/internal/interface/http"
)

type AccessLogModule struct {
	Handler *handlers.AccessLogHandler
	Guards  Guards
}

func NewAccessLogModule(h *handlers.AccessLogHandler, g Guards) *AccessLogModule {
	return &AccessLogModule{Handler: h, Guards: g}
}

// Register: any session records its own access; admins read the logs
func (m *AccessLogModule) Register(rg *gin.RouterGroup) {
	m.Guards.authed(rg).POST("/access-logs", m.Handler.Record)

	admin := m.Guards.admin(rg)
	{
		admin.GET("/access-logs", m.Handler.List)
		admin.GET("/users/:id/access-logs", m.Handler.ByUser)
		admin.GET("/archives/:id/access-logs", m.Handler.ByArchive)
	}
}
