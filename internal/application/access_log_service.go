package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

type AccessLogService struct {
	Logs     repo.AccessLogRepository
	Accounts repo.AccountRepository
	Archives repo.ArchiveRepository
	Logger   logrus.FieldLogger
}

func NewAccessLogService(logs repo.AccessLogRepository, accounts repo.AccountRepository, archives repo.ArchiveRepository, logger logrus.FieldLogger) *AccessLogService {
	return &AccessLogService{Logs: logs, Accounts: accounts, Archives: archives, Logger: logger}
}

type RecordAccessInput struct {
	UserID    int64
	ArchiveID int64
	Action    entity.Action
	IPAddress *string
	UserAgent *string
}

// Record stores an access event after checking both referenced rows exist.
func (s *AccessLogService) Record(ctx context.Context, in RecordAccessInput) (*entity.AccessLog, error) {
	if !in.Action.Valid() {
		return nil, invalid("action must be one of view, download, upload, delete")
	}
	if in.IPAddress != nil && len(*in.IPAddress) > 45 {
		return nil, invalid("ip_address too long")
	}
	ok, err := s.Accounts.ExistsByID(ctx, in.UserID)
	if err != nil {
		return nil, internal("check user", err)
	}
	if !ok {
		return nil, notFound("user")
	}
	ok, err = s.Archives.ExistsByID(ctx, in.ArchiveID)
	if err != nil {
		return nil, internal("check archive", err)
	}
	if !ok {
		return nil, notFound("archive")
	}

	l := &entity.AccessLog{
		UserID:    in.UserID,
		ArchiveID: in.ArchiveID,
		Action:    in.Action,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	}
	if err := s.Logs.Create(ctx, l); err != nil {
		return nil, internal("record access", err)
	}
	return l, nil
}

func (s *AccessLogService) List(ctx context.Context, f entity.AccessLogFilter) ([]entity.AccessLog, error) {
	if f.Action != "" && !f.Action.Valid() {
		return nil, invalid("unknown action")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, invalid("end_date precedes start_date")
	}
	out, err := s.Logs.List(ctx, f)
	if err != nil {
		return nil, internal("list access logs", err)
	}
	return out, nil
}
