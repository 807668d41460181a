package application

import (
	"context"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	repo "github.com/eventhub/event-management-backend/internal/domain/repository"
)

// CategoryService implements category CRUD.
type CategoryService struct {
	Categories repo.CategoryRepository
}

func NewCategoryService(categories repo.CategoryRepository) *CategoryService {
	return &CategoryService{Categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return s.Categories.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, name, description string) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = description
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Categories.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Categories.Delete(ctx, id)
}
