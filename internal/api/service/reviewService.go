package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/auth"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validation"
)

// ReviewUpdateInput is partial; nil fields keep their stored value.
// pub_date is immutable and never part of the input.
type ReviewUpdateInput struct {
	Text  *string
	Score *int
}

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, titleID int64, actor auth.Actor, text string, score int) (*models.Review, error)
	Update(ctx context.Context, titleID, reviewID int64, actor auth.Actor, in ReviewUpdateInput) (*models.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64, actor auth.Actor) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("review %d not found", reviewID)
		}
		return nil, fmt.Errorf("look up review: %w", err)
	}
	return review, nil
}

// Create enforces one review per (title, author). The pre-check gives
// a friendly failure; the unique index closes the race for concurrent
// submissions.
func (s *reviewService) Create(ctx context.Context, titleID int64, actor auth.Actor, text string, score int) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := validation.Score(score); err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return nil, apierr.Duplicate("you have already reviewed this title")
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierr.Duplicate("you have already reviewed this title")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	return s.GetByID(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, actor auth.Actor, in ReviewUpdateInput) (*models.Review, error) {
	review, err := s.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(review.AuthorID) {
		return nil, apierr.Forbidden("you may not modify this review")
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if err := validation.Score(*in.Score); err != nil {
			return nil, err
		}
		review.Score = *in.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, actor auth.Actor) error {
	review, err := s.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !actor.CanModify(review.AuthorID) {
		return apierr.Forbidden("you may not delete this review")
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("title %d not found", titleID)
		}
		return fmt.Errorf("look up title: %w", err)
	}
	return nil
}
