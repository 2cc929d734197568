package repo

import (
	"errors"
	"time"

	"backstage-brain-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepo struct {
	db *gorm.DB
}

type FileRepoInterface interface {
	CreateFile(file *models.EventFile) error
	GetByID(fileID uuid.UUID) (*models.EventFile, error)
	ListByEvent(eventID uuid.UUID) ([]models.EventFile, error)
	ListInUploadOrder(eventID uuid.UUID) ([]models.EventFile, error)
	DeleteFile(fileID uuid.UUID) error
	CountByEvent(eventID uuid.UUID) (int64, error)
	CountByEvents(eventIDs []uuid.UUID) (int64, error)
	CountUploadedBetween(eventIDs []uuid.UUID, from, to time.Time) (int64, error)
	LatestUploadTime(eventIDs []uuid.UUID) (*time.Time, error)
}

func NewFileRepository(db *gorm.DB) FileRepoInterface {
	return &FileRepo{db: db}
}

func (r *FileRepo) CreateFile(file *models.EventFile) error {
	if file.UUID == uuid.Nil {
		file.UUID = uuid.New()
	}
	file.CreatedAt = time.Now()
	file.UpdatedAt = time.Now()
	return r.db.Create(file).Error
}

func (r *FileRepo) GetByID(fileID uuid.UUID) (*models.EventFile, error) {
	var file models.EventFile
	if err := r.db.Where("uuid = ?", fileID).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByEvent returns the event's files newest first, for display.
func (r *FileRepo) ListByEvent(eventID uuid.UUID) ([]models.EventFile, error) {
	var files []models.EventFile
	err := r.db.Where("event_uuid = ?", eventID).Order("created_at DESC").Find(&files).Error
	return files, err
}

// ListInUploadOrder returns the event's files oldest first. The corpus uses
// this ordering, so the first uploaded document is the provenance tag.
func (r *FileRepo) ListInUploadOrder(eventID uuid.UUID) ([]models.EventFile, error) {
	var files []models.EventFile
	err := r.db.Where("event_uuid = ?", eventID).Order("created_at ASC").Find(&files).Error
	return files, err
}

func (r *FileRepo) DeleteFile(fileID uuid.UUID) error {
	return r.db.Where("uuid = ?", fileID).Delete(&models.EventFile{}).Error
}

func (r *FileRepo) CountByEvent(eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventFile{}).Where("event_uuid = ?", eventID).Count(&count).Error
	return count, err
}

func (r *FileRepo) CountByEvents(eventIDs []uuid.UUID) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.EventFile{}).Where("event_uuid IN ?", eventIDs).Count(&count).Error
	return count, err
}

func (r *FileRepo) CountUploadedBetween(eventIDs []uuid.UUID, from, to time.Time) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.EventFile{}).
		Where("event_uuid IN ? AND created_at BETWEEN ? AND ?", eventIDs, from, to).
		Count(&count).Error
	return count, err
}

func (r *FileRepo) LatestUploadTime(eventIDs []uuid.UUID) (*time.Time, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var file models.EventFile
	err := r.db.Where("event_uuid IN ?", eventIDs).Order("created_at DESC").First(&file).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file.CreatedAt, nil
}
