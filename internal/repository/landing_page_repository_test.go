package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"landing-builder-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LandingPage{}))
	return db
}

func TestLandingPageRepository_CreateAndLoad(t *testing.T) {
	repo := NewLandingPageRepository(setupTestDB(t))

	page := &models.LandingPage{
		Title:   "Spring launch",
		Slug:    "spring-launch",
		Content: models.RawContent(`{"templateData":{"hero":{"headline":"Hi"}}}`),
	}
	require.NoError(t, repo.Create(page))
	require.NotZero(t, page.ID)

	loaded, err := repo.GetByID(page.ID)
	require.NoError(t, err)
	assert.Equal(t, "spring-launch", loaded.Slug)
	assert.JSONEq(t, `{"templateData":{"hero":{"headline":"Hi"}}}`, string(loaded.Content))
}

func TestLandingPageRepository_GetBySlugOnlyPublished(t *testing.T) {
	repo := NewLandingPageRepository(setupTestDB(t))

	page := &models.LandingPage{Title: "Draft", Slug: "draft"}
	require.NoError(t, repo.Create(page))

	_, err := repo.GetBySlug("draft")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	draft, err := repo.GetBySlugAny("draft")
	require.NoError(t, err)
	assert.Equal(t, page.ID, draft.ID)

	page.Published = true
	require.NoError(t, repo.Update(page))

	published, err := repo.GetBySlug("draft")
	require.NoError(t, err)
	assert.True(t, published.Published)
}

func TestLandingPageRepository_SlugChecks(t *testing.T) {
	repo := NewLandingPageRepository(setupTestDB(t))

	first := &models.LandingPage{Title: "One", Slug: "one"}
	require.NoError(t, repo.Create(first))

	exists, err := repo.ExistsBySlug("one")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlugExceptID("one", first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, repo.Create(&models.LandingPage{Title: "Dup", Slug: "one"}))
}

func TestLandingPageRepository_DeleteAndList(t *testing.T) {
	repo := NewLandingPageRepository(setupTestDB(t))

	for _, slug := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(&models.LandingPage{Title: slug, Slug: slug}))
	}

	pages, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, pages, 3)

	require.NoError(t, repo.Delete(pages[0].ID))

	pages, err = repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
