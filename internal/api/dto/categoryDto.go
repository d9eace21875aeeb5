package dto

import "reviewhub/internal/api/models"

// CreateCategoryRequest for POST /v1/categories/
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func CategoryFromModel(c models.Category) CategoryResponse {
	return CategoryResponse{
		Name: c.Name,
		Slug: c.Slug,
	}
}
