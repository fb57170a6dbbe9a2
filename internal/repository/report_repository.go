package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/models"
	"gorm.io/gorm"
)

// ReportRepository is the persistence contract for moderation reports.
type ReportRepository interface {
	Create(report *models.Report) error
	GetAll() ([]models.Report, error)
	GetByID(id uint) (*models.Report, error)
	GetByComment(commentID uint) ([]models.Report, error)
	GetByReporter(reporterID uuid.UUID) ([]models.Report, error)
	GetByStatus(status string) ([]models.Report, error)
	Update(report *models.Report) error
	Delete(id uint) error
}

type GormReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *GormReportRepository) GetAll() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *GormReportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *GormReportRepository) GetByComment(commentID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("comment_id = ?", commentID).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *GormReportRepository) GetByReporter(reporterID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("reporter_id = ?", reporterID).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *GormReportRepository) GetByStatus(status string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *GormReportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *GormReportRepository) Delete(id uint) error {
	return r.db.Delete(&models.Report{}, id).Error
}
