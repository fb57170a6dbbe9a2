package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/cache"
	"github.com/mealshare/mealapi/internal/dto"
	"github.com/mealshare/mealapi/internal/models"
	"github.com/mealshare/mealapi/internal/repository"
)

const maxCommentLength = 1000

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentOwner  = errors.New("not authorized to modify this comment")
	ErrCommentForbidden = errors.New("can only view your own comments unless admin")
)

type CommentService struct {
	comments repository.CommentRepository
	recipes  repository.RecipeRepository
	users    repository.UserRepository
	cache    *cache.RecipeCache
}

func NewCommentService(comments repository.CommentRepository, recipes repository.RecipeRepository, users repository.UserRepository, recipeCache *cache.RecipeCache) *CommentService {
	return &CommentService{
		comments: comments,
		recipes:  recipes,
		users:    users,
		cache:    recipeCache,
	}
}

func (s *CommentService) Create(ctx context.Context, authorID uuid.UUID, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if err := validateCommentContent(req.Content); err != nil {
		return nil, err
	}
	if err := validateRatingValue(req.Rating); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.GetByID(req.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	comment := models.Comment{
		RecipeID: req.RecipeID,
		AuthorID: authorID,
		Content:  req.Content,
	}

	// The rating row, when present, always carries the comment's own
	// author and recipe.
	var rating *models.Rating
	if req.Rating != nil {
		rating = &models.Rating{
			Value:    *req.Rating,
			RecipeID: req.RecipeID,
			AuthorID: authorID,
		}
	}

	if err := s.comments.Create(&comment, rating); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Rating = rating

	if rating != nil {
		if _, err := s.recipes.RecalculateAverageRating(req.RecipeID); err != nil {
			return nil, fmt.Errorf("failed to update average rating: %w", err)
		}
		s.cache.Invalidate(ctx, req.RecipeID)
	}
	return &comment, nil
}

func (s *CommentService) GetByID(id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

func (s *CommentService) GetByRecipe(recipeID uint) ([]models.Comment, error) {
	recipe, err := s.recipes.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return s.comments.GetByRecipe(recipeID)
}

// GetByUser lists a user's comments; only the user themselves or an
// admin may read them.
func (s *CommentService) GetByUser(userID, callerID uuid.UUID) ([]models.Comment, error) {
	if userID != callerID && !isAdminUser(s.users, callerID) {
		return nil, ErrCommentForbidden
	}
	return s.comments.GetByUser(userID)
}

func (s *CommentService) Update(ctx context.Context, id uint, callerID uuid.UUID, req *dto.UpdateCommentRequest) (*models.Comment, error) {
	if err := validateCommentContent(req.Content); err != nil {
		return nil, err
	}
	if err := validateRatingValue(req.Rating); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID != callerID && !isAdminUser(s.users, callerID) {
		return nil, ErrNotCommentOwner
	}

	comment.Content = req.Content

	// A changed rating inserts a fresh row, still owned by the comment's
	// original author, and repoints the comment at it.
	var rating *models.Rating
	if req.Rating != nil {
		rating = &models.Rating{
			Value:    *req.Rating,
			RecipeID: comment.RecipeID,
			AuthorID: comment.AuthorID,
		}
	}

	if err := s.comments.Update(comment, rating); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	if rating != nil {
		comment.Rating = rating
		if _, err := s.recipes.RecalculateAverageRating(comment.RecipeID); err != nil {
			return nil, fmt.Errorf("failed to update average rating: %w", err)
		}
		s.cache.Invalidate(ctx, comment.RecipeID)
	}
	return comment, nil
}

func (s *CommentService) Delete(id uint, callerID uuid.UUID) error {
	comment, err := s.comments.GetByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != callerID && !isAdminUser(s.users, callerID) {
		return ErrNotCommentOwner
	}
	return s.comments.Delete(id)
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("comment content cannot be empty")
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("comment content cannot exceed %d characters", maxCommentLength)
	}
	return nil
}

func validateRatingValue(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
