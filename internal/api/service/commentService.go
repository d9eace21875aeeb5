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
)

type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
	GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, titleID, reviewID int64, actor auth.Actor, text string) (*models.Comment, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, actor auth.Actor, text string) (*models.Comment, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64, actor auth.Actor) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
}

func (s *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("comment %d not found", commentID)
		}
		return nil, fmt.Errorf("look up comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, actor auth.Actor, text string) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, apierr.Validation("text is required")
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.commentRepo.GetByID(ctx, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, actor auth.Actor, text string) (*models.Comment, error) {
	comment, err := s.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(comment.AuthorID) {
		return nil, apierr.Forbidden("you may not modify this comment")
	}
	if text == "" {
		return nil, apierr.Validation("text is required")
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64, actor auth.Actor) error {
	comment, err := s.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.AuthorID) {
		return apierr.Forbidden("you may not delete this comment")
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// requireReview checks the review exists under the given title, so
// comment URLs cannot cross title boundaries.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("title %d not found", titleID)
		}
		return fmt.Errorf("look up title: %w", err)
	}
	if _, err := s.reviewRepo.GetByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("review %d not found", reviewID)
		}
		return fmt.Errorf("look up review: %w", err)
	}
	return nil
}
