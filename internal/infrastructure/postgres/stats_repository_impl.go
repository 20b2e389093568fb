package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

type StatsRepository struct {
	db DBTX
}

func NewStatsRepository(db DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Dashboard(ctx context.Context, since time.Time) (*entity.DashboardStats, error) {
	s := &entity.DashboardStats{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM archives),
			(SELECT count(*) FROM categories),
			(SELECT count(*) FROM archives WHERE created_at >= $1),
			(SELECT count(*) FROM access_logs WHERE created_at >= $1),
			(SELECT COALESCE(sum(file_size), 0)::bigint FROM archives)
	`, since).Scan(&s.TotalUsers, &s.TotalArchives, &s.TotalCategories,
		&s.RecentUploads, &s.RecentAccesses, &s.StorageUsed)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return s, nil
}

var _ repository.StatsRepository = (*StatsRepository)(nil)
