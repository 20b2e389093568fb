package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-archive-admin/internal/container"
	handlers "github.com/oksasatya/go-archive-admin/internal/interface/http"
	"github.com/oksasatya/go-archive-admin/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Guards  Guards
}

func NewAuthModule(h *handlers.AuthHandler, g Guards) *AuthModule {
	return &AuthModule{Handler: h, Guards: g}
}

// Register: public POST /auth/login (per-IP limit); protected GET /auth/me, POST /auth/logout
func (m *AuthModule) Register(rg *gin.RouterGroup) {
	limit := 10
	if cfg := container.GetConfig(); cfg != nil {
		limit = cfg.LoginRateLimit
	}
	loginLimiter := middleware.RateLimit(container.GetRedis(), limit, time.Minute, middleware.KeyLogin(), nil, container.GetLogger())
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := m.Guards.authed(rg)
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
