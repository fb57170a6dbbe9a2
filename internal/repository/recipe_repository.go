package repository

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecipeRepository is the persistence contract for recipes and their
// derived average rating.
type RecipeRepository interface {
	Create(recipe *models.Recipe) error
	GetAll() ([]models.Recipe, error)
	GetByID(id uint) (*models.Recipe, error)
	GetByName(name string) ([]models.Recipe, error)
	GetByCategory(category string) ([]models.Recipe, error)
	GetByAuthor(author uuid.UUID) ([]models.Recipe, error)
	GetByTag(tag string) ([]models.Recipe, error)
	GetByMaxPreparationTime(minutes int) ([]models.Recipe, error)
	GetByMinRating(min float64) ([]models.Recipe, error)
	Update(recipe *models.Recipe) error
	Delete(id uint) error
	SetAIDetected(id uint, score float64) error
	RecalculateAverageRating(recipeID uint) (float64, error)
}

type GormRecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

func (r *GormRecipeRepository) Create(recipe *models.Recipe) error {
	return r.db.Create(recipe).Error
}

func (r *GormRecipeRepository) GetAll() ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) GetByID(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *GormRecipeRepository) GetByName(name string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Where("name ILIKE ?", "%"+name+"%").Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) GetByCategory(category string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Where("category = ?", category).Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) GetByAuthor(author uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Where("author_id = ?", author).Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) GetByTag(tag string) ([]models.Recipe, error) {
	needle, err := json.Marshal([]string{tag})
	if err != nil {
		return nil, err
	}
	var recipes []models.Recipe
	err = r.db.Where("tags @> ?", datatypes.JSON(needle)).Order("created_at DESC").Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) GetByMaxPreparationTime(minutes int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Where("preparation_time <= ?", minutes).Order("preparation_time ASC").Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) GetByMinRating(min float64) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.Where("average_rating >= ?", min).Order("average_rating DESC").Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) Update(recipe *models.Recipe) error {
	return r.db.Save(recipe).Error
}

func (r *GormRecipeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("recipe_id = ?", id).Delete(&models.Comment{})
		tx.Where("recipe_id = ?", id).Delete(&models.Rating{})
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

func (r *GormRecipeRepository) SetAIDetected(id uint, score float64) error {
	return r.db.Model(&models.Recipe{}).Where("id = ?", id).Update("ai_detected", score).Error
}

// RecalculateAverageRating recomputes the average from rating rows and
// stores it on the recipe. Rating rows are never trusted from the client.
func (r *GormRecipeRepository) RecalculateAverageRating(recipeID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(value), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	err = r.db.Model(&models.Recipe{}).Where("id = ?", recipeID).Update("average_rating", avg).Error
	return avg, err
}
