package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:title_id", h.Get)
	rg.POST("", middleware.RequireAdmin(), h.Create)
	rg.PATCH("/:title_id", middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:title_id", middleware.RequireAdmin(), h.Delete)
}

func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := paging(c)
	filter := repository.TitleFilter{
		GenreSlug:    c.Query("genre"),
		CategorySlug: c.Query("category"),
		Page:         page,
		PageSize:     pageSize,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	titles, total, err := h.svc.List(ctx, filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		resp = append(resp, dto.FromModelToTitleResponse(&titles[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(resp, total, page, pageSize))
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	title, err := h.svc.GetByID(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	title, err := h.svc.Create(ctx, service.TitleInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(title))
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	title, err := h.svc.Update(ctx, id, service.TitleUpdateInput{
		Name:         req.Name,
		Year:         req.Year,
		Description:  req.Description,
		CategorySlug: req.Category,
		GenreSlugs:   req.Genre,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToTitleResponse(title))
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
