package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetAll(ctx context.Context, search string) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetAll(ctx context.Context, search string) ([]models.Category, error) {
	var list []models.Category
	q := r.db.WithContext(ctx).Order("name asc")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return list, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// DeleteBySlug nullifies the category on referencing titles before
// removing the row, inside one transaction. Titles survive category
// deletion.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("slug = ?", slug).First(&category).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Title{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("nullify title categories: %w", err)
		}
		return tx.Delete(&category).Error
	})
}
