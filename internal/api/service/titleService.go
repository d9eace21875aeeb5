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

// TitleInput references category and genres by slug, the write-side
// representation.
type TitleInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// TitleUpdateInput is partial; nil fields are untouched. An empty
// CategorySlug clears the category.
type TitleUpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, in TitleInput) (*models.Title, error)
	Update(ctx context.Context, id int64, in TitleUpdateInput) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter) ([]models.Title, int64, error) {
	return s.titleRepo.List(ctx, filter)
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("title %d not found", id)
		}
		return nil, fmt.Errorf("look up title: %w", err)
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, in TitleInput) (*models.Title, error) {
	if err := validation.TitleName(in.Name); err != nil {
		return nil, err
	}
	if err := validation.Year(in.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.CategorySlug != nil && *in.CategorySlug != "" {
		category, err := s.resolveCategory(ctx, *in.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.resolveGenres(ctx, in.GenreSlugs)
	if err != nil {
		return nil, err
	}

	if err := s.titleRepo.Create(ctx, title, genres); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	return title, nil
}

func (s *titleService) Update(ctx context.Context, id int64, in TitleUpdateInput) (*models.Title, error) {
	title, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.TitleName(*in.Name); err != nil {
			return nil, err
		}
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validation.Year(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = in.Description
	}
	if in.CategorySlug != nil {
		if *in.CategorySlug == "" {
			title.CategoryID = nil
			title.Category = nil
		} else {
			category, err := s.resolveCategory(ctx, *in.CategorySlug)
			if err != nil {
				return nil, err
			}
			title.CategoryID = &category.ID
			title.Category = category
		}
	}

	var genres []models.Genre
	if in.GenreSlugs != nil {
		genres, err = s.resolveGenres(ctx, *in.GenreSlugs)
		if err != nil {
			return nil, err
		}
		if genres == nil {
			genres = []models.Genre{}
		}
	}

	if err := s.titleRepo.Update(ctx, title, genres); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	return title, nil
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("title %d not found", id)
		}
		return fmt.Errorf("delete title: %w", err)
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Validation("unknown category %q", slug)
		}
		return nil, fmt.Errorf("look up category: %w", err)
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		known := make(map[string]bool, len(genres))
		for _, g := range genres {
			known[g.Slug] = true
		}
		for _, slug := range slugs {
			if !known[slug] {
				return nil, apierr.Validation("unknown genre %q", slug)
			}
		}
	}
	return genres, nil
}
