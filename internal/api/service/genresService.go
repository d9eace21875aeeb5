package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

type GenreService interface {
	GetAll(ctx context.Context, search string) ([]models.Genre, error)
	Create(ctx context.Context, name, slug string) (*models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) GetAll(ctx context.Context, search string) ([]models.Genre, error) {
	return s.genreRepo.GetAll(ctx, search)
}

func (s *genreService) Create(ctx context.Context, name, slug string) (*models.Genre, error) {
	if err := validateNameSlug(name, slug); err != nil {
		return nil, err
	}
	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Validation("genre with this name or slug already exists")
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return genre, nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("genre %q not found", slug)
		}
		return fmt.Errorf("delete genre: %w", err)
	}
	return nil
}
