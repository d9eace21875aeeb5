package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	GetAll(ctx context.Context, search string) ([]models.Genre, error)
	GetBySlug(ctx context.Context, slug string) (*models.Genre, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetAll(ctx context.Context, search string) ([]models.Genre, error) {
	var list []models.Genre
	q := r.db.WithContext(ctx).Order("name asc")
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetBySlugs resolves a slug list in one query; the caller checks the
// returned length against the requested one to spot unknown slugs.
func (r *genreRepository) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres by slugs: %w", err)
	}
	return list, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// DeleteBySlug removes the genre and its join rows in one transaction.
// Titles keep their other genres.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.Where("slug = ?", slug).First(&genre).Error; err != nil {
			return err
		}
		if err := tx.Where("genre_id = ?", genre.ID).Delete(&models.TitleGenre{}).Error; err != nil {
			return fmt.Errorf("remove genre join rows: %w", err)
		}
		return tx.Delete(&genre).Error
	})
}
