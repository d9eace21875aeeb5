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

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", middleware.RequireAdmin(), h.Create)
	rg.DELETE("/:slug", middleware.RequireAdmin(), h.Delete)
}

func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetAll(ctx, c.Query("search"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, category := range list {
		resp = append(resp, dto.CategoryFromModel(category))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.svc.Create(ctx, req.Name, req.Slug)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(*category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteBySlug(ctx, c.Param("slug")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
