package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mealshare/mealapi/internal/config"
	"github.com/mealshare/mealapi/internal/models"
	"github.com/redis/go-redis/v9"
)

const allRecipesKey = "recipes:all"

// RecipeCache fronts recipe list/detail reads with Redis. A nil
// *RecipeCache is a valid no-op cache, so callers never branch on
// whether caching is configured.
type RecipeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis, or returns nil when no address is configured.
func New(cfg *config.Config) *RecipeCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("redis unavailable, recipe cache disabled", "addr", cfg.RedisAddr, "error", err)
		return nil
	}

	slog.Info("redis connected", "addr", cfg.RedisAddr)
	return &RecipeCache{client: client, ttl: cfg.CacheTTL}
}

func (c *RecipeCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *RecipeCache) GetAll(ctx context.Context) ([]models.Recipe, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, allRecipesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var recipes []models.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, false
	}
	return recipes, true
}

func (c *RecipeCache) SetAll(ctx context.Context, recipes []models.Recipe) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, allRecipesKey, raw, c.ttl).Err(); err != nil {
		slog.Error("recipe cache write failed", "key", allRecipesKey, "error", err)
	}
}

func (c *RecipeCache) Get(ctx context.Context, id uint) (*models.Recipe, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, recipeKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var recipe models.Recipe
	if err := json.Unmarshal(raw, &recipe); err != nil {
		return nil, false
	}
	return &recipe, true
}

func (c *RecipeCache) Set(ctx context.Context, recipe *models.Recipe) {
	if c == nil || recipe == nil {
		return
	}
	raw, err := json.Marshal(recipe)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, recipeKey(recipe.ID), raw, c.ttl).Err(); err != nil {
		slog.Error("recipe cache write failed", "key", recipeKey(recipe.ID), "error", err)
	}
}

// Invalidate drops the list key and the detail key for one recipe.
// Called on every write that can change what readers see, including
// rating inserts that move the average.
func (c *RecipeCache) Invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, allRecipesKey, recipeKey(id)).Err(); err != nil {
		slog.Error("recipe cache invalidation failed", "recipe_id", id, "error", err)
	}
}

func recipeKey(id uint) string {
	return fmt.Sprintf("recipes:id:%d", id)
}
