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

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes expects a group already scoped to
// /titles/:title_id/reviews/:review_id/comments.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:comment_id", h.Get)
	rg.POST("", middleware.RequireAuthenticated(), h.Create)
	rg.PATCH("/:comment_id", middleware.RequireAuthenticated(), h.Update)
	rg.DELETE("/:comment_id", middleware.RequireAuthenticated(), h.Delete)
}

// scope pulls the title/review ids off the path.
func scope(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := scope(c)
	if !ok {
		return
	}
	page, pageSize := paging(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comments, total, err := h.svc.ListByReview(ctx, titleID, reviewID, page, pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, dto.FromModelToCommentResponse(&comments[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := scope(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.svc.GetByID(ctx, titleID, reviewID, commentID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := scope(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.svc.Create(ctx, titleID, reviewID, actor, req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := scope(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	actor := middleware.ActorFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment, err := h.svc.Update(ctx, titleID, reviewID, commentID, actor, req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := scope(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}
	actor := middleware.ActorFromContext(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, titleID, reviewID, commentID, actor); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
