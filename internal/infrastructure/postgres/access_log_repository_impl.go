package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	"github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

type AccessLogRepository struct {
	db DBTX
}

func NewAccessLogRepository(db DBTX) *AccessLogRepository {
	return &AccessLogRepository{db: db}
}

func (r *AccessLogRepository) Create(ctx context.Context, l *entity.AccessLog) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO access_logs (user_id, archive_id, action, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, l.UserID, l.ArchiveID, string(l.Action), l.IPAddress, l.UserAgent)
	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		return fmt.Errorf("insert access log: %w", err)
	}
	return nil
}

// List returns logs newest first.
func (r *AccessLogRepository) List(ctx context.Context, f entity.AccessLogFilter) ([]entity.AccessLog, error) {
	b := &setBuilder{}
	var conds []string
	if f.UserID != nil {
		conds = append(conds, "user_id = "+b.next(*f.UserID))
	}
	if f.ArchiveID != nil {
		conds = append(conds, "archive_id = "+b.next(*f.ArchiveID))
	}
	if f.Action != "" {
		conds = append(conds, "action = "+b.next(string(f.Action)))
	}
	if f.StartDate != nil {
		conds = append(conds, "created_at >= "+b.next(*f.StartDate))
	}
	if f.EndDate != nil {
		conds = append(conds, "created_at <= "+b.next(*f.EndDate))
	}

	q := `SELECT id, user_id, archive_id, action, ip_address, user_agent, created_at FROM access_logs`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC, id DESC LIMIT ` + b.next(clampLimit(f.Limit)) + ` OFFSET ` + b.next(clampOffset(f.Offset))

	rows, err := r.db.Query(ctx, q, b.args...)
	if err != nil {
		return nil, fmt.Errorf("list access logs: %w", err)
	}
	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.AccessLog, error) {
		var (
			l      entity.AccessLog
			action string
		)
		err := row.Scan(&l.ID, &l.UserID, &l.ArchiveID, &action, &l.IPAddress, &l.UserAgent, &l.CreatedAt)
		l.Action = entity.Action(action)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan access logs: %w", err)
	}
	return logs, nil
}

var _ repository.AccessLogRepository = (*AccessLogRepository)(nil)
