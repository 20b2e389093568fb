package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-archive-admin/config"
	"github.com/oksasatya/go-archive-admin/internal/container"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

func newEngine(t *testing.T, debug bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppName:             "archive-admin",
		Env:                 "test",
		TokenTTL:            time.Hour,
		LoginRateLimit:      10,
		DashboardCacheTTL:   time.Second,
		ESArchivesIndex:     "archives",
		DebugMetricsEnabled: debug,
	}
	jwt, err := helpers.NewJWTManager("router-test", cfg.TokenTTL)
	require.NoError(t, err)

	container.SetConfig(cfg)
	container.SetLogger(helpers.NewNopLogger())
	container.SetHasher(helpers.NewPasswordHasher(bcrypt.MinCost))
	container.SetJWT(jwt)

	e := gin.New()
	reg := NewRegistry(e)
	InitModules(reg)
	reg.RegisterAll()
	return e
}

func TestInitModules_RegistersRouteTable(t *testing.T) {
	routes := Routes(newEngine(t, false))

	for _, want := range []string{
		"GET /api/healthz",
		"POST /api/auth/login",
		"GET /api/auth/me",
		"POST /api/users",
		"GET /api/users",
		"PATCH /api/users/:id",
		"DELETE /api/users/:id",
		"GET /api/users/:id/access-logs",
		"POST /api/categories",
		"GET /api/categories",
		"PATCH /api/categories/:id",
		"DELETE /api/categories/:id",
		"POST /api/archives",
		"POST /api/archives/upload",
		"GET /api/archives",
		"GET /api/archives/search",
		"GET /api/archives/:id",
		"PATCH /api/archives/:id",
		"DELETE /api/archives/:id",
		"GET /api/archives/:id/access-logs",
		"POST /api/access-logs",
		"GET /api/access-logs",
		"GET /api/dashboard/stats",
	} {
		assert.Contains(t, routes, want)
	}
	assert.NotContains(t, routes, "GET /api/debug/vars")
}

func TestInitModules_DebugToggle(t *testing.T) {
	assert.Contains(t, Routes(newEngine(t, true)), "GET /api/debug/vars")
}

func TestInitModules_ProtectedRoutesNeedSession(t *testing.T) {
	e := newEngine(t, false)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/api/users", "/api/archives", "/api/dashboard/stats", "/api/auth/me"} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
