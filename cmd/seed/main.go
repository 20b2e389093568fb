package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/config"
	"github.com/oksasatya/go-archive-admin/internal/application"
	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	pginfra "github.com/oksasatya/go-archive-admin/internal/infrastructure/postgres"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

// seed creates the bootstrap admin when the accounts table is empty.
// SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required; names are optional.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	accounts := pginfra.NewAccountRepository(pool)
	n, err := accounts.Count(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to count accounts")
	}
	if n > 0 {
		logger.WithField("accounts", n).Info("accounts already exist; nothing to seed")
		return
	}

	svc := application.NewAccountService(accounts, helpers.NewPasswordHasher(cfg.BcryptCost), application.NopNotifier, logger)
	acc, err := svc.Create(ctx, application.CreateAccountInput{
		Email:     email,
		Password:  password,
		FirstName: envOr("SEED_ADMIN_FIRST_NAME", "Admin"),
		LastName:  os.Getenv("SEED_ADMIN_LAST_NAME"),
		Role:      entity.RoleAdmin,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to seed admin")
	}
	logger.WithFields(logrus.Fields{"user_id": acc.ID, "email": acc.Email}).Info("seeded bootstrap admin")
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
