package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
)

type StatsRepository interface {
	// Dashboard computes totals; "recent" counters include rows created at or after since.
	Dashboard(ctx context.Context, since time.Time) (*entity.DashboardStats, error)
}
