package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealshare/mealapi/internal/dto"
	"github.com/mealshare/mealapi/internal/models"
	"github.com/mealshare/mealapi/internal/services"
)

type reportFixture struct {
	svc       *services.ReportService
	users     *fakeUserRepo
	reporter  uuid.UUID
	admin     uuid.UUID
	recipeID  uint
	commentID uint
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	recipes := newFakeRecipeRepo()
	comments := newFakeCommentRepo(recipes)
	reports := newFakeReportRepo()
	users := newFakeUserRepo()

	reporter := seedUser(users, "user@example.com", models.RoleUser)
	admin := seedUser(users, "admin@example.com", models.RoleAdmin)

	recipe := &models.Recipe{Name: "Lentil Soup", AuthorID: reporter}
	require.NoError(t, recipes.Create(recipe))

	comment := &models.Comment{RecipeID: recipe.ID, AuthorID: reporter, Content: "spam spam"}
	require.NoError(t, comments.Create(comment, nil))

	return &reportFixture{
		svc:       services.NewReportService(reports, recipes, comments, users),
		users:     users,
		reporter:  reporter,
		admin:     admin,
		recipeID:  recipe.ID,
		commentID: comment.ID,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestCreateReportTargetExactlyOne(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		Reason: models.ReportReasonSpam, Description: "spam",
	})
	assert.ErrorIs(t, err, services.ErrInvalidReportTarget)

	_, err = f.svc.Create(f.reporter, &dto.CreateReportRequest{
		RecipeID: uintPtr(f.recipeID), CommentID: uintPtr(f.commentID),
		Reason: models.ReportReasonSpam, Description: "spam",
	})
	assert.ErrorIs(t, err, services.ErrInvalidReportTarget)
}

func TestCreateReportTargetMustExist(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		RecipeID: uintPtr(999), Reason: models.ReportReasonSpam, Description: "spam",
	})
	assert.ErrorIs(t, err, services.ErrRecipeNotFound)

	_, err = f.svc.Create(f.reporter, &dto.CreateReportRequest{
		CommentID: uintPtr(999), Reason: models.ReportReasonSpam, Description: "spam",
	})
	assert.ErrorIs(t, err, services.ErrCommentNotFound)
}

func TestCreateReportValidation(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		RecipeID: uintPtr(f.recipeID), Reason: "dislike", Description: "meh",
	})
	assert.Error(t, err)

	_, err = f.svc.Create(f.reporter, &dto.CreateReportRequest{
		RecipeID: uintPtr(f.recipeID), Reason: models.ReportReasonOther, Description: "  ",
	})
	assert.Error(t, err)
}

func TestCreateReportStartsPending(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		CommentID: uintPtr(f.commentID), Reason: models.ReportReasonHarassment, Description: "abusive",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, f.reporter, report.ReporterID)
	assert.Nil(t, report.ResolvedBy)
	assert.Nil(t, report.ResolvedAt)
}

func TestReportListingsAdminOnly(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		CommentID: uintPtr(f.commentID), Reason: models.ReportReasonSpam, Description: "spam",
	})
	require.NoError(t, err)

	_, err = f.svc.GetAll(f.reporter)
	assert.ErrorIs(t, err, services.ErrReportForbidden)

	all, err := f.svc.GetAll(f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = f.svc.GetByComment(f.commentID, f.reporter)
	assert.ErrorIs(t, err, services.ErrReportForbidden)

	byComment, err := f.svc.GetByComment(f.commentID, f.admin)
	require.NoError(t, err)
	assert.Len(t, byComment, 1)

	_, err = f.svc.GetByStatus(models.ReportStatusPending, f.reporter)
	assert.ErrorIs(t, err, services.ErrReportForbidden)

	_, err = f.svc.GetByStatus("open", f.admin)
	assert.Error(t, err)

	pending, err := f.svc.GetByStatus(models.ReportStatusPending, f.admin)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestGetByReporterSelfOrAdmin(t *testing.T) {
	f := newReportFixture(t)
	stranger := seedUser(f.users, "other@example.com", models.RoleUser)

	_, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		RecipeID: uintPtr(f.recipeID), Reason: models.ReportReasonSpam, Description: "spam",
	})
	require.NoError(t, err)

	_, err = f.svc.GetByReporter(f.reporter, stranger)
	assert.ErrorIs(t, err, services.ErrReportForbidden)

	mine, err := f.svc.GetByReporter(f.reporter, f.reporter)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	seen, err := f.svc.GetByReporter(f.reporter, f.admin)
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestUpdateStatusStampsResolution(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		RecipeID: uintPtr(f.recipeID), Reason: models.ReportReasonSpam, Description: "spam",
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(report.ID, f.reporter, &dto.UpdateReportStatusRequest{
		Status: models.ReportStatusResolved,
	})
	assert.ErrorIs(t, err, services.ErrReportForbidden)

	resolved, err := f.svc.UpdateStatus(report.ID, f.admin, &dto.UpdateReportStatusRequest{
		Status: models.ReportStatusResolved, ResolutionNote: "recipe removed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, f.admin, *resolved.ResolvedBy)
	assert.Equal(t, "recipe removed", resolved.ResolutionNote)
	assert.NotNil(t, resolved.ResolvedAt)

	// Reopening clears the resolution fields.
	reopened, err := f.svc.UpdateStatus(report.ID, f.admin, &dto.UpdateReportStatusRequest{
		Status: models.ReportStatusPending,
	})
	require.NoError(t, err)
	assert.Nil(t, reopened.ResolvedBy)
	assert.Nil(t, reopened.ResolvedAt)
	assert.Empty(t, reopened.ResolutionNote)

	_, err = f.svc.UpdateStatus(999, f.admin, &dto.UpdateReportStatusRequest{
		Status: models.ReportStatusRejected,
	})
	assert.ErrorIs(t, err, services.ErrReportNotFound)
}

func TestDeleteReportAdminOnly(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.svc.Create(f.reporter, &dto.CreateReportRequest{
		RecipeID: uintPtr(f.recipeID), Reason: models.ReportReasonSpam, Description: "spam",
	})
	require.NoError(t, err)

	err = f.svc.Delete(report.ID, f.reporter)
	assert.ErrorIs(t, err, services.ErrReportForbidden)

	err = f.svc.Delete(report.ID, f.admin)
	require.NoError(t, err)

	err = f.svc.Delete(report.ID, f.admin)
	assert.ErrorIs(t, err, services.ErrReportNotFound)
}
