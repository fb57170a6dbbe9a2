package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/dto"
	"github.com/mealshare/mealapi/internal/models"
	"github.com/mealshare/mealapi/internal/repository"
)

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrReportForbidden     = errors.New("admin access required")
	ErrInvalidReportTarget = errors.New("report must reference exactly one of recipe or comment")
)

type ReportService struct {
	reports  repository.ReportRepository
	recipes  repository.RecipeRepository
	comments repository.CommentRepository
	users    repository.UserRepository
}

func NewReportService(reports repository.ReportRepository, recipes repository.RecipeRepository, comments repository.CommentRepository, users repository.UserRepository) *ReportService {
	return &ReportService{
		reports:  reports,
		recipes:  recipes,
		comments: comments,
		users:    users,
	}
}

func (s *ReportService) Create(reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if !models.ValidReportReason(req.Reason) {
		return nil, errors.New("invalid reason: must be inappropriate_content, spam, harassment or other")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("description is required")
	}
	if (req.RecipeID == nil) == (req.CommentID == nil) {
		return nil, ErrInvalidReportTarget
	}

	if req.RecipeID != nil {
		recipe, err := s.recipes.GetByID(*req.RecipeID)
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			return nil, ErrRecipeNotFound
		}
	}
	if req.CommentID != nil {
		comment, err := s.comments.GetByID(*req.CommentID)
		if err != nil {
			return nil, err
		}
		if comment == nil {
			return nil, ErrCommentNotFound
		}
	}

	report := models.Report{
		ReporterID:  reporterID,
		RecipeID:    req.RecipeID,
		CommentID:   req.CommentID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.ReportStatusPending,
	}
	if err := s.reports.Create(&report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ReportService) GetAll(callerID uuid.UUID) ([]models.Report, error) {
	if !isAdminUser(s.users, callerID) {
		return nil, ErrReportForbidden
	}
	return s.reports.GetAll()
}

func (s *ReportService) GetByComment(commentID uint, callerID uuid.UUID) ([]models.Report, error) {
	if !isAdminUser(s.users, callerID) {
		return nil, ErrReportForbidden
	}
	return s.reports.GetByComment(commentID)
}

func (s *ReportService) GetByStatus(status string, callerID uuid.UUID) ([]models.Report, error) {
	if !models.ValidReportStatus(status) {
		return nil, errors.New("invalid status: must be pending, resolved or rejected")
	}
	if !isAdminUser(s.users, callerID) {
		return nil, ErrReportForbidden
	}
	return s.reports.GetByStatus(status)
}

// GetByReporter lists a user's own reports; admins may read anyone's.
func (s *ReportService) GetByReporter(reporterID, callerID uuid.UUID) ([]models.Report, error) {
	if reporterID != callerID && !isAdminUser(s.users, callerID) {
		return nil, ErrReportForbidden
	}
	return s.reports.GetByReporter(reporterID)
}

func (s *ReportService) UpdateStatus(id uint, callerID uuid.UUID, req *dto.UpdateReportStatusRequest) (*models.Report, error) {
	if !models.ValidReportStatus(req.Status) {
		return nil, errors.New("invalid status: must be pending, resolved or rejected")
	}
	if !isAdminUser(s.users, callerID) {
		return nil, ErrReportForbidden
	}

	report, err := s.reports.GetByID(id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	report.Status = req.Status
	if req.Status == models.ReportStatusResolved || req.Status == models.ReportStatusRejected {
		now := time.Now().UTC()
		report.ResolvedBy = &callerID
		report.ResolutionNote = req.ResolutionNote
		report.ResolvedAt = &now
	} else {
		report.ResolvedBy = nil
		report.ResolutionNote = ""
		report.ResolvedAt = nil
	}

	if err := s.reports.Update(report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

func (s *ReportService) Delete(id uint, callerID uuid.UUID) error {
	if !isAdminUser(s.users, callerID) {
		return ErrReportForbidden
	}
	report, err := s.reports.GetByID(id)
	if err != nil {
		return err
	}
	if report == nil {
		return ErrReportNotFound
	}
	return s.reports.Delete(id)
}
