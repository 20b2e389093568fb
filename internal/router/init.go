package router

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/container"
	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	pginfra "github.com/oksasatya/go-archive-admin/internal/infrastructure/postgres"
	"github.com/oksasatya/go-archive-admin/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-archive-admin/internal/interface/http"
	"github.com/oksasatya/go-archive-admin/internal/interface/middleware"
	"github.com/oksasatya/go-archive-admin/internal/router/modules"
	mailtpl "github.com/oksasatya/go-archive-admin/pkg/mailer/templates"
)

// Services groups the application services built from container singletons.
type Services struct {
	Auth       *application.AuthService
	Accounts   *application.AccountService
	Categories *application.CategoryService
	Archives   *application.ArchiveService
	AccessLogs *application.AccessLogService
	Dashboard  *application.DashboardService
}

// BuildServices wires repositories and optional backends into services.
// Missing backends degrade features instead of failing startup.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	accounts := pginfra.NewAccountRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	archives := pginfra.NewArchiveRepository(pool)
	logs := pginfra.NewAccessLogRepository(pool)
	stats := pginfra.NewStatsRepository(pool)

	notifier := application.NopNotifier
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		brand := mailtpl.Brand{
			CompanyName: cfg.CompanyName,
			AppName:     cfg.AppName,
			LoginURL:    strings.TrimRight(cfg.AppURL, "/") + "/login",
		}
		notifier = application.NewEmailNotifier(pub, brand)
	}

	var index application.ArchiveIndex
	if es := container.GetES(); es != nil {
		index = search.NewArchiveIndex(es, cfg.ESArchivesIndex)
	}
	var uploader application.FileUploader
	if u := container.GetUploader(); u != nil {
		uploader = u
	}

	dashboard := application.NewDashboardService(stats, nil, cfg.DashboardCacheTTL, logger)
	if rdb := container.GetRedis(); rdb != nil {
		dashboard.Redis = rdb
	}

	accountSvc := application.NewAccountService(accounts, container.GetHasher(), notifier, logger)
	accountSvc.StatsCache = dashboard
	categorySvc := application.NewCategoryService(categories, logger)
	categorySvc.StatsCache = dashboard
	archiveSvc := application.NewArchiveService(archives, accounts, categories, index, uploader, logger)
	archiveSvc.StatsCache = dashboard

	return Services{
		Auth:       application.NewAuthService(accounts, container.GetHasher(), container.GetJWT(), logger),
		Accounts:   accountSvc,
		Categories: categorySvc,
		Archives:   archiveSvc,
		AccessLogs: application.NewAccessLogService(logs, accounts, archives, logger),
		Dashboard:  dashboard,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices()

	guards := modules.Guards{
		Auth:  middleware.Auth(svc.Auth, logger),
		Admin: middleware.RequireRole(entity.RoleAdmin),
	}

	var ping func(ctx context.Context) error
	if pool := container.GetPGPool(); pool != nil {
		ping = pool.Ping
	}

	r.Add(
		modules.NewHealthModule(handlers.NewHealthHandler(ping)),
		modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure), guards),
		modules.NewAccountModule(handlers.NewAccountHandler(svc.Accounts, logger), guards),
		modules.NewCategoryModule(handlers.NewCategoryHandler(svc.Categories, logger), guards),
		modules.NewArchiveModule(handlers.NewArchiveHandler(svc.Archives, logger), guards),
		modules.NewAccessLogModule(handlers.NewAccessLogHandler(svc.AccessLogs, logger), guards),
		modules.NewDashboardModule(handlers.NewDashboardHandler(svc.Dashboard, logger), guards),
	)
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

// Routes returns the engine's registered routes, useful for startup logging.
func Routes(e *gin.Engine) []string {
	var out []string
	for _, ri := range e.Routes() {
		out = append(out, ri.Method+" "+ri.Path)
	}
	return out
}
