package services

import (
	"testing"

	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAdmin(t *testing.T, env *testEnv, emailAddr, role string) *models.Admin {
	t.Helper()

	admin, err := env.admins.CreateAdmin(env.db, &dto.CreateAdminRequest{
		Email:    emailAddr,
		Password: "adminpassword",
		Role:     role,
	})
	require.NoError(t, err)
	return admin
}

func TestAdminLogin(t *testing.T) {
	env := setupEnv(t)
	createAdmin(t, env, "staff@example.com", "portal")

	resp, err := env.admins.Login(env.db, &dto.LoginRequest{
		Email:    "staff@example.com",
		Password: "adminpassword",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "portal", resp.Role)

	_, err = env.admins.Login(env.db, &dto.LoginRequest{
		Email:    "staff@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
}

func TestCreateAdmin_DuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	createAdmin(t, env, "dup@example.com", "super")

	_, err := env.admins.CreateAdmin(env.db, &dto.CreateAdminRequest{
		Email:    "dup@example.com",
		Password: "adminpassword",
		Role:     "portal",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestStats_CountsAndPercentages(t *testing.T) {
	env := setupEnv(t)

	createDraft(t, env, "one@example.com")
	createDraft(t, env, "two@example.com")
	id := createDraft(t, env, "three@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 9, validStepNine())
	require.NoError(t, err)

	stats, err := env.admins.Stats(env.db)
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.ByStatus["draft"].Count)
	assert.EqualValues(t, 1, stats.ByStatus["submitted"].Count)
	assert.InDelta(t, 66.67, stats.ByStatus["draft"].Percentage, 0.01)
	assert.InDelta(t, 33.33, stats.ByStatus["submitted"].Percentage, 0.01)

	// Every known status is present even when zero
	assert.Contains(t, stats.ByStatus, "approved")
	assert.EqualValues(t, 0, stats.ByStatus["approved"].Count)

	assert.EqualValues(t, 3, stats.ByGender["female"].Count)
}

func TestUpdateStatus_ForwardOnly(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "review@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 9, validStepNine())
	require.NoError(t, err)

	// submitted -> reviewing -> approved is the happy path
	require.NoError(t, env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{Status: "reviewing"}))
	require.NoError(t, env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{Status: "approved"}))

	// No transitions leave a terminal state
	err = env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{Status: "rejected"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestUpdateStatus_PersistsReviewNotes(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "notes@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 9, validStepNine())
	require.NoError(t, err)

	require.NoError(t, env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{
		Status: "reviewing",
		Notes:  "Strong traction, verify CAC certificate",
	}))

	var app models.Application
	require.NoError(t, env.db.First(&app, "id = ?", id).Error)
	assert.Equal(t, "Strong traction, verify CAC certificate", app.ReviewNotes)

	// A later update without notes keeps the earlier ones
	require.NoError(t, env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{Status: "approved"}))
	require.NoError(t, env.db.First(&app, "id = ?", id).Error)
	assert.Equal(t, "Strong traction, verify CAC certificate", app.ReviewNotes)
}

func TestUpdateStatus_NoBackwardTransition(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "backward@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 9, validStepNine())
	require.NoError(t, err)

	require.NoError(t, env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{Status: "reviewing"}))

	err = env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{Status: "submitted"})
	require.Error(t, err)
}

func TestUpdateStatus_SkippingReviewRejected(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "skip@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 9, validStepNine())
	require.NoError(t, err)

	err = env.admins.UpdateStatus(env.db, id, &dto.UpdateStatusRequest{Status: "approved"})
	require.Error(t, err)
}

func TestListApplications_SearchAndFilter(t *testing.T) {
	env := setupEnv(t)

	a := createDraft(t, env, "findme@example.com")
	createDraft(t, env, "other@example.com")

	_, err := env.apps.ApplyStep(env.db, a, 2, validStepTwo())
	require.NoError(t, err)

	resp, err := env.admins.ListApplications(env.db, repositories.ApplicationFilter{Search: "AGRILINK"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "findme@example.com", resp.Items[0].Email)

	resp, err = env.admins.ListApplications(env.db, repositories.ApplicationFilter{Status: models.StatusDraft})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
}
