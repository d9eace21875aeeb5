package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/api/models"

	"gorm.io/gorm"
)

// TitleFilter narrows the title listing by association slugs.
type TitleFilter struct {
	GenreSlug    string
	CategorySlug string
	Page         int
	PageSize     int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title, genres []models.Genre) error
	Update(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// annotated attaches the derived rating column. Never stored; the mean
// is recomputed on every read so it cannot go stale.
func (r *titleRepository) annotated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Title{}).
		Select("titles.*, AVG(reviews.score) AS rating").
		Joins("LEFT JOIN reviews ON reviews.title_id = titles.id").
		Group("titles.id")
}

func (r *titleRepository) applyFilter(q *gorm.DB, filter TitleFilter) *gorm.DB {
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres g ON g.id = tg.genre_id").
			Where("g.slug = ?", filter.GenreSlug)
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	return q
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter) ([]models.Title, int64, error) {
	var total int64
	countQ := r.applyFilter(r.db.WithContext(ctx).Model(&models.Title{}), filter)
	if err := countQ.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count titles: %w", err)
	}

	var list []models.Title
	offset := (filter.Page - 1) * filter.PageSize
	q := r.applyFilter(r.annotated(ctx), filter).
		Preload("Category").
		Preload("Genres").
		Order("titles.id desc").
		Limit(filter.PageSize).
		Offset(offset)
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list titles: %w", err)
	}
	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.annotated(ctx).
		Where("titles.id = ?", id).
		Preload("Category").
		Preload("Genres").
		First(&title).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// Create writes the title and its genre join rows atomically: either
// all join rows land or none do.
func (r *titleRepository) Create(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres").Create(title).Error; err != nil {
			return err
		}
		if len(genres) > 0 {
			if err := tx.Model(title).Association("Genres").Replace(genres); err != nil {
				return fmt.Errorf("attach genres: %w", err)
			}
		}
		title.Genres = genres
		return nil
	})
}

// Update persists the title fields; genres, when non-nil, replace the
// existing association in the same transaction.
func (r *titleRepository) Update(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Category").Save(title).Error; err != nil {
			return err
		}
		if genres != nil {
			if err := tx.Model(title).Association("Genres").Replace(genres); err != nil {
				return fmt.Errorf("replace genres: %w", err)
			}
			title.Genres = genres
		}
		return nil
	})
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
