package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-archive-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-archive-admin/internal/domain/repository"
)

type CategoryService struct {
	Categories repo.CategoryRepository
	StatsCache StatsInvalidator
	Logger     logrus.FieldLogger
}

func NewCategoryService(categories repo.CategoryRepository, logger logrus.FieldLogger) *CategoryService {
	return &CategoryService{Categories: categories, Logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, name string, description *string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	c := &entity.Category{Name: name, Description: description}
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, internal("create category", err)
	}
	s.Logger.WithField("category_id", c.ID).Info("category created")
	invalidateStats(ctx, s.StatsCache)
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get category", "category", err)
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	out, err := s.Categories.List(ctx)
	if err != nil {
		return nil, internal("list categories", err)
	}
	return out, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, patch entity.CategoryPatch) (*entity.Category, error) {
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return nil, invalid("name must not be empty")
		}
		patch.Name = &n
	}
	c, err := s.Categories.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		return nil, ErrDuplicateName
	case err != nil:
		return nil, storeErr("update category", "category", err)
	}
	return c, nil
}

// Delete removes the category; its archives stay, uncategorized.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		return storeErr("delete category", "category", err)
	}
	s.Logger.WithField("category_id", id).Info("category deleted")
	invalidateStats(ctx, s.StatsCache)
	return nil
}
