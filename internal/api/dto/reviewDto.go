package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateReviewRequest for POST /v1/titles/:title_id/reviews/
type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewRequest is partial; pub_date and author are immutable.
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Author:  r.Author.Username,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}
