package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateCommentRequest for POST .../reviews/:review_id/comments/
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}
