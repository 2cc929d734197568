package repo

import (
	"time"

	"backstage-brain-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

type UserRepoInterface interface {
	CreateUser(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	RolesForUser(userID uuid.UUID) ([]models.EventUser, error)
}

func NewUserRepository(db *gorm.DB) UserRepoInterface {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(user *models.User) error {
	if user.UUID == uuid.Nil {
		user.UUID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *UserRepo) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("uuid = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RolesForUser returns every event role assignment the user holds.
func (r *UserRepo) RolesForUser(userID uuid.UUID) ([]models.EventUser, error) {
	var assignments []models.EventUser
	err := r.db.Where("user_uuid = ?", userID).Find(&assignments).Error
	return assignments, err
}
