package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/models"
	"gorm.io/gorm"
)

// CommentRepository is the persistence contract for comments and their
// attached ratings. Create and Update run in a single transaction so a
// comment never points at a rating that was not persisted.
type CommentRepository interface {
	Create(comment *models.Comment, rating *models.Rating) error
	GetByID(id uint) (*models.Comment, error)
	GetByRecipe(recipeID uint) ([]models.Comment, error)
	GetByUser(userID uuid.UUID) ([]models.Comment, error)
	Update(comment *models.Comment, newRating *models.Rating) error
	Delete(id uint) error
}

type GormCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment, rating *models.Rating) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if rating != nil {
			if err := tx.Create(rating).Error; err != nil {
				return err
			}
			comment.RatingID = &rating.ID
		}
		return tx.Create(comment).Error
	})
}

func (r *GormCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Rating").First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) GetByRecipe(recipeID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Rating").
		Where("recipe_id = ?", recipeID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) GetByUser(userID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Rating").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *GormCommentRepository) Update(comment *models.Comment, newRating *models.Rating) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if newRating != nil {
			if err := tx.Create(newRating).Error; err != nil {
				return err
			}
			comment.RatingID = &newRating.ID
		}
		return tx.Save(comment).Error
	})
}

func (r *GormCommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
