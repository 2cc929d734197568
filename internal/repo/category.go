package repo

import (
	"backstage-brain-backend/internal/models"

	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

type CategoryRepoInterface interface {
	ListCategories() ([]models.Category, error)
	CategoryExists(name string) (bool, error)
}

func NewCategoryRepository(db *gorm.DB) CategoryRepoInterface {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepo) CategoryExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
