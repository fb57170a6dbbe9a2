package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealshare/mealapi/internal/models"
)

func TestValidRole(t *testing.T) {
	assert.True(t, models.ValidRole(models.RoleUser))
	assert.True(t, models.ValidRole(models.RoleAdmin))
	assert.False(t, models.ValidRole("user"))
	assert.False(t, models.ValidRole(""))
}

func TestValidReportStatus(t *testing.T) {
	for _, s := range []string{models.ReportStatusPending, models.ReportStatusResolved, models.ReportStatusRejected} {
		assert.True(t, models.ValidReportStatus(s))
	}
	assert.False(t, models.ValidReportStatus("open"))
}

func TestValidReportReason(t *testing.T) {
	for _, r := range []string{
		models.ReportReasonInappropriate,
		models.ReportReasonSpam,
		models.ReportReasonHarassment,
		models.ReportReasonOther,
	} {
		assert.True(t, models.ValidReportReason(r))
	}
	assert.False(t, models.ValidReportReason("dislike"))
}
