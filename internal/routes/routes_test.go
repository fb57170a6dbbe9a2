package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealshare/mealapi/internal/config"
	"github.com/mealshare/mealapi/internal/dto"
	"github.com/mealshare/mealapi/internal/handlers"
	"github.com/mealshare/mealapi/internal/models"
	"github.com/mealshare/mealapi/internal/routes"
	"github.com/mealshare/mealapi/internal/services"
)

// memUserRepo is the in-memory stand-in the auth flow runs against.
type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (r *memUserRepo) Create(user *models.User) error {
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateRole(id uuid.UUID, role string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	user.Role = role
	out := *user
	return &out, nil
}

// memRecipeRepo carries just enough state for the recipe routes.
type memRecipeRepo struct {
	recipes map[uint]*models.Recipe
	nextID  uint
}

func (r *memRecipeRepo) Create(recipe *models.Recipe) error {
	r.nextID++
	recipe.ID = r.nextID
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *memRecipeRepo) GetAll() ([]models.Recipe, error) {
	out := make([]models.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		out = append(out, *recipe)
	}
	return out, nil
}

func (r *memRecipeRepo) GetByID(id uint) (*models.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, nil
	}
	out := *recipe
	return &out, nil
}

func (r *memRecipeRepo) GetByName(string) ([]models.Recipe, error)          { return nil, nil }
func (r *memRecipeRepo) GetByCategory(string) ([]models.Recipe, error)      { return nil, nil }
func (r *memRecipeRepo) GetByAuthor(uuid.UUID) ([]models.Recipe, error)     { return nil, nil }
func (r *memRecipeRepo) GetByTag(string) ([]models.Recipe, error)           { return nil, nil }
func (r *memRecipeRepo) GetByMaxPreparationTime(int) ([]models.Recipe, error) {
	return nil, nil
}
func (r *memRecipeRepo) GetByMinRating(float64) ([]models.Recipe, error) { return nil, nil }

func (r *memRecipeRepo) Update(recipe *models.Recipe) error {
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *memRecipeRepo) Delete(id uint) error {
	delete(r.recipes, id)
	return nil
}

func (r *memRecipeRepo) SetAIDetected(uint, float64) error { return nil }

func (r *memRecipeRepo) RecalculateAverageRating(uint) (float64, error) { return 0, nil }

// memCommentRepo and memReportRepo exist to satisfy the route wiring;
// the comment and report flows have their own service-level tests.
type memCommentRepo struct{}

func (memCommentRepo) Create(*models.Comment, *models.Rating) error        { return nil }
func (memCommentRepo) GetByID(uint) (*models.Comment, error)               { return nil, nil }
func (memCommentRepo) GetByRecipe(uint) ([]models.Comment, error)          { return nil, nil }
func (memCommentRepo) GetByUser(uuid.UUID) ([]models.Comment, error)       { return nil, nil }
func (memCommentRepo) Update(*models.Comment, *models.Rating) error        { return nil }
func (memCommentRepo) Delete(uint) error                                   { return nil }

type memReportRepo struct{}

func (memReportRepo) Create(*models.Report) error                       { return nil }
func (memReportRepo) GetAll() ([]models.Report, error)                  { return nil, nil }
func (memReportRepo) GetByID(uint) (*models.Report, error)              { return nil, nil }
func (memReportRepo) GetByComment(uint) ([]models.Report, error)        { return nil, nil }
func (memReportRepo) GetByReporter(uuid.UUID) ([]models.Report, error)  { return nil, nil }
func (memReportRepo) GetByStatus(string) ([]models.Report, error)       { return nil, nil }
func (memReportRepo) Update(*models.Report) error                       { return nil }
func (memReportRepo) Delete(uint) error                                 { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		AdminEmails: "root@example.com",
	}

	users := &memUserRepo{users: map[uuid.UUID]*models.User{}}
	recipes := &memRecipeRepo{recipes: map[uint]*models.Recipe{}}

	authService := services.NewAuthService(users, cfg)
	recipeService := services.NewRecipeService(recipes, users, nil, nil)
	commentService := services.NewCommentService(memCommentRepo{}, recipes, users, nil)
	reportService := services.NewReportService(memReportRepo{}, recipes, memCommentRepo{}, users)

	app := fiber.New()
	routes.Setup(app, cfg, users,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewRecipeHandler(recipeService),
		handlers.NewCommentHandler(commentService),
		handlers.NewReportHandler(reportService),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, app *fiber.App, email, role string) dto.UserResponse {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/users/register", "", dto.RegisterRequest{
		Email: email, Password: "password123", Role: role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.UserResponse](t, resp)
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/users/token", "", dto.LoginRequest{
		Email: email, Password: "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decode[dto.TokenResponse](t, resp).AccessToken
}

func TestRegisterAndToken(t *testing.T) {
	app := newTestApp(t)

	user := register(t, app, "user@example.com", "")
	assert.Equal(t, models.RoleUser, user.Role)

	resp := doJSON(t, app, fiber.MethodPost, "/users/register", "", dto.RegisterRequest{
		Email: "user@example.com", Password: "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Claiming a role the account does not hold fails authentication.
	resp = doJSON(t, app, fiber.MethodPost, "/users/token", "", dto.LoginRequest{
		Email: "user@example.com", Password: "password123", Role: models.RoleAdmin,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/users/token", "", dto.LoginRequest{
		Email: "user@example.com", Password: "password123", Role: models.RoleUser,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := decode[dto.TokenResponse](t, resp)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
}

func TestAdminSignupGate(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/users/register", "", dto.RegisterRequest{
		Email: "wannabe@example.com", Password: "password123", Role: models.RoleAdmin,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := register(t, app, "root@example.com", models.RoleAdmin)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestRoleChangeAndStaleToken(t *testing.T) {
	app := newTestApp(t)

	user := register(t, app, "user@example.com", "")
	register(t, app, "root@example.com", models.RoleAdmin)

	userToken := login(t, app, "user@example.com")
	adminToken := login(t, app, "root@example.com")

	rolePath := fmt.Sprintf("/users/%s/role", user.ID)

	// A plain user cannot grant roles.
	resp := doJSON(t, app, fiber.MethodPut, rolePath, userToken, dto.UpdateRoleRequest{Role: models.RoleAdmin})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, rolePath, adminToken, dto.UpdateRoleRequest{Role: models.RoleAdmin})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	promoted := decode[dto.UserResponse](t, resp)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	// The pre-promotion token still says USER; the live-role check
	// rejects it instead of honoring either role.
	resp = doJSON(t, app, fiber.MethodPut, rolePath, userToken, dto.UpdateRoleRequest{Role: models.RoleUser})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// A token issued after the change works.
	freshToken := login(t, app, "user@example.com")
	resp = doJSON(t, app, fiber.MethodPut, rolePath, freshToken, dto.UpdateRoleRequest{Role: models.RoleUser})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateRoleUnknownUser(t *testing.T) {
	app := newTestApp(t)

	register(t, app, "root@example.com", models.RoleAdmin)
	adminToken := login(t, app, "root@example.com")

	resp := doJSON(t, app, fiber.MethodPut, "/users/"+uuid.NewString()+"/role", adminToken,
		dto.UpdateRoleRequest{Role: models.RoleAdmin})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRecipeRoutesAuth(t *testing.T) {
	app := newTestApp(t)

	register(t, app, "cook@example.com", "")
	token := login(t, app, "cook@example.com")

	recipeReq := dto.RecipeRequest{
		Name:            "Omelette",
		Instructions:    "Whisk and fry.",
		Category:        "breakfast",
		Ingredients:     []string{"3:egg"},
		PreparationTime: 10,
	}

	resp := doJSON(t, app, fiber.MethodPost, "/recipes/", "", recipeReq)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/recipes/", token, recipeReq)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[models.Recipe](t, resp)
	assert.NotZero(t, created.ID)

	// Reads stay public.
	resp = doJSON(t, app, fiber.MethodGet, "/recipes/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	listed := decode[[]models.Recipe](t, resp)
	assert.Len(t, listed, 1)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/recipes/%d", created.ID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/recipes/999", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
