package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/mealshare/mealapi/internal/config"
	"github.com/mealshare/mealapi/internal/handlers"
	"github.com/mealshare/mealapi/internal/middleware"
	"github.com/mealshare/mealapi/internal/repository"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	recipeHandler *handlers.RecipeHandler,
	commentHandler *handlers.CommentHandler,
	reportHandler *handlers.ReportHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/health", healthHandler.Check)

	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(users)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	usersGroup := app.Group("/users")
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	usersGroup.Post("/register", authLimit, authHandler.Register)
	usersGroup.Post("/token", authLimit, authHandler.Token)
	usersGroup.Put("/:user_id/role", jwt, admin, authHandler.UpdateRole)
	usersGroup.Get("/:user_id", jwt, authHandler.GetUser)

	recipes := app.Group("/recipes")
	recipes.Get("/", recipeHandler.GetAll)
	recipes.Get("/search/by-ingredients", recipeHandler.GetByIngredients)
	recipes.Get("/search/name/:name", recipeHandler.GetByName)
	recipes.Get("/search/category/:category", recipeHandler.GetByCategory)
	recipes.Get("/search/tag/:tag", recipeHandler.GetByTag)
	recipes.Get("/search/preparation-time/:minutes", recipeHandler.GetByPreparationTime)
	recipes.Get("/search/rating/:min", recipeHandler.GetByRating)
	recipes.Get("/author/:author_id", recipeHandler.GetByAuthor)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Post("/", jwt, recipeHandler.Create)
	recipes.Put("/:id", jwt, recipeHandler.Update)
	recipes.Delete("/:id", jwt, recipeHandler.Delete)

	comments := app.Group("/comments")
	comments.Post("/", jwt, commentHandler.Create)
	comments.Get("/recipe/:recipe_id", commentHandler.GetByRecipe)
	comments.Get("/user/:user_id", jwt, commentHandler.GetByUser)
	comments.Get("/:id", commentHandler.GetByID)
	comments.Put("/:id", jwt, commentHandler.Update)
	comments.Delete("/:id", jwt, commentHandler.Delete)

	reports := app.Group("/reports", jwt)
	reports.Post("/", reportHandler.Create)
	reports.Get("/", reportHandler.GetAll)
	reports.Get("/comment/:comment_id", reportHandler.GetByComment)
	reports.Get("/status/:status", reportHandler.GetByStatus)
	reports.Get("/user/:user_id", reportHandler.GetByReporter)
	reports.Put("/:id/status", reportHandler.UpdateStatus)
	reports.Delete("/:id", reportHandler.Delete)
}
