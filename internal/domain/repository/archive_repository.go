package repository

import (
	"context"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
)

type ArchiveRepository interface {
	Create(ctx context.Context, a *entity.Archive) error
	GetByID(ctx context.Context, id int64) (*entity.Archive, error)
	GetWithDetails(ctx context.Context, id int64) (*entity.ArchiveWithDetails, error)
	GetManyWithDetails(ctx context.Context, ids []int64) ([]entity.ArchiveWithDetails, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ListWithDetails(ctx context.Context) ([]entity.ArchiveWithDetails, error)
	Search(ctx context.Context, f entity.SearchFilter) ([]entity.ArchiveWithDetails, error)
	Update(ctx context.Context, id int64, patch entity.ArchivePatch) (*entity.Archive, error)
	// Delete removes the archive together with its access logs.
	Delete(ctx context.Context, id int64) error
}
