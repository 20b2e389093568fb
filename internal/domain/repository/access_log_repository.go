package repository

import (
	"context"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
)

type AccessLogRepository interface {
	Create(ctx context.Context, l *entity.AccessLog) error
	List(ctx context.Context, f entity.AccessLogFilter) ([]entity.AccessLog, error)
}
