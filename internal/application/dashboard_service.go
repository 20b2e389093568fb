package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
	"github.com/oksasatya/go-archive-admin/pkg/helpers"
)

// RecentWindow bounds the "recent" dashboard counters.
const RecentWindow = 30 * 24 * time.Hour

// DashboardService aggregates usage statistics, cached briefly in Redis when available.
type DashboardService struct {
	Stats    repo.StatsRepository
	Redis    redis.Cmdable
	CacheTTL time.Duration
	Logger   logrus.FieldLogger
	Now      func() time.Time
}

func NewDashboardService(stats repo.StatsRepository, rdb redis.Cmdable, ttl time.Duration, logger logrus.FieldLogger) *DashboardService {
	return &DashboardService{Stats: stats, Redis: rdb, CacheTTL: ttl, Logger: logger, Now: utcNow}
}

func (s *DashboardService) Get(ctx context.Context) (*entity.DashboardStats, error) {
	if s.Redis != nil {
		var cached entity.DashboardStats
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, helpers.KeyDashboardStats, &cached)
		if err != nil {
			s.Logger.WithError(err).Warn("dashboard cache read failed")
		}
		if ok {
			return &cached, nil
		}
	}

	stats, err := s.Stats.Dashboard(ctx, s.Now().Add(-RecentWindow))
	if err != nil {
		return nil, internal("dashboard stats", err)
	}

	if s.Redis != nil && s.CacheTTL > 0 {
		if err := helpers.RedisSetJSON(ctx, s.Redis, helpers.KeyDashboardStats, stats, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return stats, nil
}

// Invalidate drops the cached stats so the next Get recomputes them.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, helpers.KeyDashboardStats); err != nil {
		helpers.LogError(s.Logger, "dashboard cache invalidate failed", err, nil)
	}
}
