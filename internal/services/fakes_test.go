package services_test

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/models"
)

// In-memory repository fakes. They mirror the persistence contract the
// services rely on: lookups return (nil, nil) when the row is absent.

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	out := *user
	return &out, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(id uuid.UUID, role string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	user.Role = role
	out := *user
	return &out, nil
}

type fakeRecipeRepo struct {
	recipes      map[uint]*models.Recipe
	ratings      []models.Rating
	nextID       uint
	nextRatingID uint
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[uint]*models.Recipe{}}
}

func (r *fakeRecipeRepo) Create(recipe *models.Recipe) error {
	r.nextID++
	recipe.ID = r.nextID
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *fakeRecipeRepo) GetAll() ([]models.Recipe, error) {
	out := make([]models.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		out = append(out, *recipe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRecipeRepo) GetByID(id uint) (*models.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, nil
	}
	out := *recipe
	return &out, nil
}

func (r *fakeRecipeRepo) filter(keep func(*models.Recipe) bool) ([]models.Recipe, error) {
	all, _ := r.GetAll()
	out := make([]models.Recipe, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (r *fakeRecipeRepo) GetByName(name string) ([]models.Recipe, error) {
	return r.filter(func(recipe *models.Recipe) bool {
		return strings.Contains(strings.ToLower(recipe.Name), strings.ToLower(name))
	})
}

func (r *fakeRecipeRepo) GetByCategory(category string) ([]models.Recipe, error) {
	return r.filter(func(recipe *models.Recipe) bool {
		return strings.EqualFold(recipe.Category, category)
	})
}

func (r *fakeRecipeRepo) GetByAuthor(author uuid.UUID) ([]models.Recipe, error) {
	return r.filter(func(recipe *models.Recipe) bool {
		return recipe.AuthorID == author
	})
}

func (r *fakeRecipeRepo) GetByTag(tag string) ([]models.Recipe, error) {
	return r.filter(func(recipe *models.Recipe) bool {
		return strings.Contains(string(recipe.Tags), `"`+tag+`"`)
	})
}

func (r *fakeRecipeRepo) GetByMaxPreparationTime(minutes int) ([]models.Recipe, error) {
	return r.filter(func(recipe *models.Recipe) bool {
		return recipe.PreparationTime <= minutes
	})
}

func (r *fakeRecipeRepo) GetByMinRating(min float64) ([]models.Recipe, error) {
	return r.filter(func(recipe *models.Recipe) bool {
		return recipe.AverageRating >= min
	})
}

func (r *fakeRecipeRepo) Update(recipe *models.Recipe) error {
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *fakeRecipeRepo) Delete(id uint) error {
	delete(r.recipes, id)
	return nil
}

func (r *fakeRecipeRepo) SetAIDetected(id uint, score float64) error {
	if recipe, ok := r.recipes[id]; ok {
		recipe.AIDetected = &score
	}
	return nil
}

func (r *fakeRecipeRepo) RecalculateAverageRating(recipeID uint) (float64, error) {
	sum, count := 0, 0
	for _, rating := range r.ratings {
		if rating.RecipeID == recipeID {
			sum += rating.Value
			count++
		}
	}
	avg := 0.0
	if count > 0 {
		avg = float64(sum) / float64(count)
	}
	if recipe, ok := r.recipes[recipeID]; ok {
		recipe.AverageRating = avg
	}
	return avg, nil
}

func (r *fakeRecipeRepo) addRating(rating *models.Rating) {
	r.nextRatingID++
	rating.ID = r.nextRatingID
	r.ratings = append(r.ratings, *rating)
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	recipes  *fakeRecipeRepo
	nextID   uint
}

func newFakeCommentRepo(recipes *fakeRecipeRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint]*models.Comment{}, recipes: recipes}
}

func (r *fakeCommentRepo) Create(comment *models.Comment, rating *models.Rating) error {
	if rating != nil {
		r.recipes.addRating(rating)
		comment.RatingID = &rating.ID
	}
	r.nextID++
	comment.ID = r.nextID
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) GetByID(id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	out := *comment
	if out.RatingID != nil {
		for _, rating := range r.recipes.ratings {
			if rating.ID == *out.RatingID {
				loaded := rating
				out.Rating = &loaded
				break
			}
		}
	}
	return &out, nil
}

func (r *fakeCommentRepo) GetByRecipe(recipeID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range r.comments {
		if comment.RecipeID == recipeID {
			out = append(out, *comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) GetByUser(userID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range r.comments {
		if comment.AuthorID == userID {
			out = append(out, *comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) Update(comment *models.Comment, newRating *models.Rating) error {
	if newRating != nil {
		r.recipes.addRating(newRating)
		comment.RatingID = &newRating.ID
	}
	stored := *comment
	stored.Rating = nil
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) Delete(id uint) error {
	delete(r.comments, id)
	return nil
}

type fakeReportRepo struct {
	reports map[uint]*models.Report
	nextID  uint
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[uint]*models.Report{}}
}

func (r *fakeReportRepo) Create(report *models.Report) error {
	r.nextID++
	report.ID = r.nextID
	stored := *report
	r.reports[report.ID] = &stored
	return nil
}

func (r *fakeReportRepo) GetAll() ([]models.Report, error) {
	out := make([]models.Report, 0, len(r.reports))
	for _, report := range r.reports {
		out = append(out, *report)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReportRepo) GetByID(id uint) (*models.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, nil
	}
	out := *report
	return &out, nil
}

func (r *fakeReportRepo) GetByComment(commentID uint) ([]models.Report, error) {
	var out []models.Report
	for _, report := range r.reports {
		if report.CommentID != nil && *report.CommentID == commentID {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) GetByReporter(reporterID uuid.UUID) ([]models.Report, error) {
	var out []models.Report
	for _, report := range r.reports {
		if report.ReporterID == reporterID {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) GetByStatus(status string) ([]models.Report, error) {
	var out []models.Report
	for _, report := range r.reports {
		if report.Status == status {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) Update(report *models.Report) error {
	stored := *report
	r.reports[report.ID] = &stored
	return nil
}

func (r *fakeReportRepo) Delete(id uint) error {
	delete(r.reports, id)
	return nil
}

// seedUser registers a user directly in the repo and returns its ID.
func seedUser(repo *fakeUserRepo, email, role string) uuid.UUID {
	id := uuid.New()
	repo.users[id] = &models.User{ID: id, Email: email, Role: role}
	return id
}
