package repository

import (
	"context"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, id int64, patch entity.CategoryPatch) (*entity.Category, error)
	// Delete removes the category and detaches its archives.
	Delete(ctx context.Context, id int64) error
}
