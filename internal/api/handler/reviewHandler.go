package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes expects a group already scoped to /titles/:title_id/reviews.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:review_id", h.Get)
	rg.POST("", middleware.RequireAuthenticated(), h.Create)
	rg.PATCH("/:review_id", middleware.RequireAuthenticated(), h.Update)
	rg.DELETE("/:review_id", middleware.RequireAuthenticated(), h.Delete)
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}
	page, pageSize := paging(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reviews, total, err := h.svc.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.FromModelToReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.GetByID(ctx, titleID, reviewID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.Create(ctx, titleID, actor, req.Text, req.Score)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.Update(ctx, titleID, reviewID, actor, service.ReviewUpdateInput{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	actor := middleware.ActorFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, titleID, reviewID, actor); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
