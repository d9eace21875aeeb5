package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/api/apierr"
	"reviewhub/internal/api/models"
)

func newTitleServiceWithMocks() (TitleService, *MockTitleRepository, *MockCategoryRepository, *MockGenreRepository) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	return NewTitleService(titleRepo, categoryRepo, genreRepo), titleRepo, categoryRepo, genreRepo
}

func TestTitleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvesCategoryAndGenres", func(t *testing.T) {
		svc, titleRepo, categoryRepo, genreRepo := newTitleServiceWithMocks()

		category := &models.Category{ID: 3, Name: "Films", Slug: "films"}
		genres := []models.Genre{{ID: 1, Name: "Horror", Slug: "horror"}, {ID: 2, Name: "Sci-Fi", Slug: "sci-fi"}}
		categoryRepo.On("GetBySlug", mock.Anything, "films").Return(category, nil).Once()
		genreRepo.On("GetBySlugs", mock.Anything, []string{"horror", "sci-fi"}).Return(genres, nil).Once()
		titleRepo.On("Create", mock.Anything, mock.MatchedBy(func(title *models.Title) bool {
			return title.Name == "The Thing" && title.Year == 1982 && *title.CategoryID == 3
		}), genres).Return(nil).Once()

		slug := "films"
		title, err := svc.Create(ctx, TitleInput{
			Name:         "The Thing",
			Year:         1982,
			CategorySlug: &slug,
			GenreSlugs:   []string{"horror", "sci-fi"},
		})
		require.NoError(t, err)
		assert.Equal(t, "films", title.Category.Slug)
		titleRepo.AssertExpectations(t)
	})

	t.Run("FutureYearRejected", func(t *testing.T) {
		svc, titleRepo, _, _ := newTitleServiceWithMocks()

		_, err := svc.Create(ctx, TitleInput{Name: "Tomorrow", Year: time.Now().Year() + 1})
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
		titleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownCategoryRejected", func(t *testing.T) {
		svc, _, categoryRepo, _ := newTitleServiceWithMocks()

		categoryRepo.On("GetBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound).Once()

		slug := "nope"
		_, err := svc.Create(ctx, TitleInput{Name: "X", Year: 2000, CategorySlug: &slug})
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("UnknownGenreRejected", func(t *testing.T) {
		svc, _, _, genreRepo := newTitleServiceWithMocks()

		known := []models.Genre{{ID: 1, Name: "Horror", Slug: "horror"}}
		genreRepo.On("GetBySlugs", mock.Anything, []string{"horror", "isekai"}).Return(known, nil).Once()

		_, err := svc.Create(ctx, TitleInput{Name: "X", Year: 2000, GenreSlugs: []string{"horror", "isekai"}})
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, err.Error(), "isekai")
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		svc, _, _, _ := newTitleServiceWithMocks()

		_, err := svc.Create(ctx, TitleInput{Name: "  ", Year: 2000})
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestTitleService_Update(t *testing.T) {
	ctx := context.Background()
	stored := func() *models.Title {
		cid := int64(3)
		return &models.Title{
			ID: 7, Name: "Old", Year: 1990, CategoryID: &cid,
			Category: &models.Category{ID: 3, Slug: "films"},
		}
	}

	t.Run("PartialUpdateKeepsRest", func(t *testing.T) {
		svc, titleRepo, _, _ := newTitleServiceWithMocks()

		titleRepo.On("GetByID", mock.Anything, int64(7)).Return(stored(), nil).Once()
		titleRepo.On("Update", mock.Anything, mock.MatchedBy(func(title *models.Title) bool {
			return title.Name == "New Name" && title.Year == 1990 && title.CategoryID != nil
		}), mock.Anything).Return(nil).Once()

		name := "New Name"
		title, err := svc.Update(ctx, 7, TitleUpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, 1990, title.Year)
	})

	t.Run("EmptyCategoryClears", func(t *testing.T) {
		svc, titleRepo, _, _ := newTitleServiceWithMocks()

		titleRepo.On("GetByID", mock.Anything, int64(7)).Return(stored(), nil).Once()
		titleRepo.On("Update", mock.Anything, mock.MatchedBy(func(title *models.Title) bool {
			return title.CategoryID == nil && title.Category == nil
		}), mock.Anything).Return(nil).Once()

		empty := ""
		_, err := svc.Update(ctx, 7, TitleUpdateInput{CategorySlug: &empty})
		assert.NoError(t, err)
	})

	t.Run("UnknownTitle", func(t *testing.T) {
		svc, titleRepo, _, _ := newTitleServiceWithMocks()

		titleRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound).Once()

		name := "X"
		_, err := svc.Update(ctx, 99, TitleUpdateInput{Name: &name})
		assert.True(t, apierr.IsNotFound(err))
	})
}

func TestTitleService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownTitle", func(t *testing.T) {
		svc, titleRepo, _, _ := newTitleServiceWithMocks()

		titleRepo.On("Delete", mock.Anything, int64(99)).Return(gorm.ErrRecordNotFound).Once()
		assert.True(t, apierr.IsNotFound(svc.Delete(ctx, 99)))
	})
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateSlugIsValidationError", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := NewCategoryService(categoryRepo)

		categoryRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()

		_, err := svc.Create(ctx, "Films", "films")
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("BadSlugRejected", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		svc := NewCategoryService(categoryRepo)

		_, err := svc.Create(ctx, "Films", "has space")
		var verr *apierr.ValidationError
		assert.ErrorAs(t, err, &verr)
		categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
