package dto

import "reviewhub/internal/api/models"

// CreateTitleRequest is the write representation: category and genres
// are referenced by slug.
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,slug"`
	Genre       []string `json:"genre" binding:"omitempty,dive,slug"`
}

// UpdateTitleRequest is partial; omitted fields stay unchanged. An
// empty category string clears the association.
type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" binding:"omitempty,slug"`
	Genre       *[]string `json:"genre" binding:"omitempty,dive,slug"`
}

// TitleResponse is the read representation: nested objects plus the
// computed rating (absent when the title has no reviews).
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func FromModelToTitleResponse(t *models.Title) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]GenreResponse, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, GenreFromModel(g))
	}
	if t.Category != nil {
		category := CategoryFromModel(*t.Category)
		resp.Category = &category
	}
	return resp
}
