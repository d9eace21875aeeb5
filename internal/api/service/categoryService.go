package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
)

type CategoryService interface {
	GetAll(ctx context.Context, search string) ([]models.Category, error)
	Create(ctx context.Context, name, slug string) (*models.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetAll(ctx context.Context, search string) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx, search)
}

func (s *categoryService) Create(ctx context.Context, name, slug string) (*models.Category, error) {
	if err := validateNameSlug(name, slug); err != nil {
		return nil, err
	}
	category := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Validation("category with this name or slug already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("category %q not found", slug)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func validateNameSlug(name, slug string) error {
	if name == "" {
		return apierr.Validation("name is required")
	}
	if len(name) > validation.MaxSlugLen {
		return apierr.Validation("name must be at most %d characters", validation.MaxSlugLen)
	}
	return validation.Slug(slug)
}
