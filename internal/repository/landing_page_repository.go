package repository

import (
	"landing-builder-backend/internal/models"

	"gorm.io/gorm"
)

type LandingPageRepository interface {
	Create(page *models.LandingPage) error
	Update(page *models.LandingPage) error
	Delete(id uint) error
	GetByID(id uint) (*models.LandingPage, error)
	GetBySlug(slug string) (*models.LandingPage, error)
	GetBySlugAny(slug string) (*models.LandingPage, error)
	GetAll() ([]models.LandingPage, error)
	ExistsBySlug(slug string) (bool, error)
	ExistsBySlugExceptID(slug string, excludeID uint) (bool, error)
}

type landingPageRepository struct {
	db *gorm.DB
}

func NewLandingPageRepository(db *gorm.DB) LandingPageRepository {
	return &landingPageRepository{db: db}
}

func (r *landingPageRepository) Create(page *models.LandingPage) error {
	return r.db.Create(page).Error
}

// Update writes the whole row. Concurrent editors overwrite each other.
func (r *landingPageRepository) Update(page *models.LandingPage) error {
	return r.db.Save(page).Error
}

func (r *landingPageRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.LandingPage{}, id).Error
}

func (r *landingPageRepository) GetByID(id uint) (*models.LandingPage, error) {
	var page models.LandingPage
	if err := r.db.First(&page, id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// GetBySlug returns a published page.
func (r *landingPageRepository) GetBySlug(slug string) (*models.LandingPage, error) {
	var page models.LandingPage
	if err := r.db.Where("slug = ? AND published = ?", slug, true).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *landingPageRepository) GetBySlugAny(slug string) (*models.LandingPage, error) {
	var page models.LandingPage
	if err := r.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *landingPageRepository) GetAll() ([]models.LandingPage, error) {
	var pages []models.LandingPage
	if err := r.db.Order("updated_at DESC").Order("id DESC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *landingPageRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.LandingPage{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *landingPageRepository) ExistsBySlugExceptID(slug string, excludeID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.LandingPage{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
