package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/cache"
	"github.com/mealshare/mealapi/internal/dto"
	"github.com/mealshare/mealapi/internal/models"
	"github.com/mealshare/mealapi/internal/repository"
	"gorm.io/datatypes"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("not authorized to modify this recipe")
)

type RecipeService struct {
	recipes repository.RecipeRepository
	users   repository.UserRepository
	cache   *cache.RecipeCache
	sapling *SaplingClient
}

func NewRecipeService(recipes repository.RecipeRepository, users repository.UserRepository, recipeCache *cache.RecipeCache, sapling *SaplingClient) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		users:   users,
		cache:   recipeCache,
		sapling: sapling,
	}
}

func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, req *dto.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipeInput(req); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:            req.Name,
		Description:     req.Description,
		Instructions:    req.Instructions,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		Ingredients:     toJSONList(req.Ingredients),
		Steps:           toJSONList(req.Steps),
		Tags:            toJSONList(req.Tags),
		PreparationTime: req.PreparationTime,
		Servings:        req.Servings,
		AuthorID:        authorID,
	}
	if err := s.recipes.Create(&recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.cache.Invalidate(ctx, recipe.ID)
	s.scoreAsync(recipe.ID, req.Description+"\n"+req.Instructions)

	return &recipe, nil
}

// scoreAsync runs AI-content detection off the request path; a scoring
// failure never affects the recipe itself.
func (s *RecipeService) scoreAsync(recipeID uint, text string) {
	if s.sapling == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		score, err := s.sapling.DetectAI(ctx, text)
		if err != nil {
			slog.Error("ai detection failed", "recipe_id", recipeID, "error", err)
			return
		}
		if err := s.recipes.SetAIDetected(recipeID, score); err != nil {
			slog.Error("failed to store ai score", "recipe_id", recipeID, "error", err)
			return
		}
		s.cache.Invalidate(context.Background(), recipeID)
	}()
}

func (s *RecipeService) GetAll(ctx context.Context) ([]models.Recipe, error) {
	if recipes, ok := s.cache.GetAll(ctx); ok {
		return recipes, nil
	}
	recipes, err := s.recipes.GetAll()
	if err != nil {
		return nil, err
	}
	s.cache.SetAll(ctx, recipes)
	return recipes, nil
}

func (s *RecipeService) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	if recipe, ok := s.cache.Get(ctx, id); ok {
		return recipe, nil
	}
	recipe, err := s.recipes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	s.cache.Set(ctx, recipe)
	return recipe, nil
}

func (s *RecipeService) GetByName(name string) ([]models.Recipe, error) {
	return s.recipes.GetByName(name)
}

func (s *RecipeService) GetByCategory(category string) ([]models.Recipe, error) {
	return s.recipes.GetByCategory(category)
}

func (s *RecipeService) GetByAuthor(author uuid.UUID) ([]models.Recipe, error) {
	return s.recipes.GetByAuthor(author)
}

func (s *RecipeService) GetByTag(tag string) ([]models.Recipe, error) {
	return s.recipes.GetByTag(tag)
}

func (s *RecipeService) GetByMaxPreparationTime(minutes int) ([]models.Recipe, error) {
	if minutes <= 0 {
		return nil, errors.New("preparation time must be positive")
	}
	return s.recipes.GetByMaxPreparationTime(minutes)
}

func (s *RecipeService) GetByMinRating(min float64) ([]models.Recipe, error) {
	if min < 0 || min > 5 {
		return nil, errors.New("rating must be between 0 and 5")
	}
	return s.recipes.GetByMinRating(min)
}

// GetByIngredients keeps recipes whose ingredient list is covered by the
// available ingredients at least minMatch of the way. Stored entries use
// the "amount:ingredient" form; matching is on the ingredient part.
func (s *RecipeService) GetByIngredients(ctx context.Context, available []string, minMatch float64) ([]models.Recipe, error) {
	if len(available) == 0 {
		return nil, errors.New("ingredients list cannot be empty")
	}
	if minMatch < 0 || minMatch > 1 {
		return nil, errors.New("min match percentage must be between 0 and 1")
	}

	have := make(map[string]bool, len(available))
	for _, ing := range available {
		have[strings.ToLower(strings.TrimSpace(ing))] = true
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []models.Recipe
	for _, recipe := range all {
		needed := IngredientNames(recipe.Ingredients)
		if len(needed) == 0 {
			continue
		}
		found := 0
		for _, name := range needed {
			if have[name] {
				found++
			}
		}
		if float64(found)/float64(len(needed)) >= minMatch {
			matched = append(matched, recipe)
		}
	}
	return matched, nil
}

func (s *RecipeService) Update(ctx context.Context, id uint, callerID uuid.UUID, req *dto.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipeInput(req); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	if recipe.AuthorID != callerID && !isAdminUser(s.users, callerID) {
		return nil, ErrNotRecipeOwner
	}

	recipe.Name = req.Name
	recipe.Description = req.Description
	recipe.Instructions = req.Instructions
	recipe.Category = req.Category
	recipe.Difficulty = req.Difficulty
	recipe.Ingredients = toJSONList(req.Ingredients)
	recipe.Steps = toJSONList(req.Steps)
	recipe.Tags = toJSONList(req.Tags)
	recipe.PreparationTime = req.PreparationTime
	recipe.Servings = req.Servings

	if err := s.recipes.Update(recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, id uint, callerID uuid.UUID) error {
	recipe, err := s.recipes.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	if recipe.AuthorID != callerID && !isAdminUser(s.users, callerID) {
		return ErrNotRecipeOwner
	}

	if err := s.recipes.Delete(id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

func validateRecipeInput(req *dto.RecipeRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(req.Instructions) == "" {
		return errors.New("instructions are required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return errors.New("category is required")
	}
	if len(req.Ingredients) == 0 {
		return errors.New("at least one ingredient is required")
	}
	if req.PreparationTime <= 0 {
		return errors.New("preparation time must be positive")
	}
	if req.Servings != nil && *req.Servings <= 0 {
		return errors.New("servings must be positive")
	}
	return nil
}

// IngredientNames extracts lowercased ingredient names from a stored
// jsonb list of "amount:ingredient" entries.
func IngredientNames(stored datatypes.JSON) []string {
	var entries []string
	if err := json.Unmarshal(stored, &entries); err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry
		if idx := strings.Index(entry, ":"); idx >= 0 {
			name = entry[idx+1:]
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func toJSONList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(b)
}

// isAdminUser is the shared ownership-check escape hatch: mutations on
// someone else's content are allowed only for a live ADMIN role.
func isAdminUser(users repository.UserRepository, id uuid.UUID) bool {
	user, err := users.GetByID(id)
	if err != nil {
		return false
	}
	return user != nil && user.IsAdmin()
}
