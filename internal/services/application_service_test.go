package services

import (
	"regexp"
	"testing"
	"time"

	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/internal/validator"
	"ayuteng_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateApplication_Success(t *testing.T) {
	env := setupEnv(t)

	resp, err := env.apps.CreateApplication(env.db, validStepOne("amina@example.com"))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.NextStep)

	var app models.Application
	require.NoError(t, env.db.First(&app, "id = ?", resp.ApplicationID).Error)

	assert.Equal(t, models.StatusDraft, app.Status)
	assert.Equal(t, 2, app.StepCursor)
	assert.False(t, app.IsVerified)
	assert.Regexp(t, regexp.MustCompile(`^AYT-[0-9A-F]{10}$`), app.ReferenceNumber)
	assert.NotEqual(t, "str0ngpassword", app.Password, "password must be stored hashed")

	// A verification token exists and the mail went out
	var tokenCount int64
	env.db.Model(&models.EmailVerificationToken{}).Where("owner_id = ?", app.ID).Count(&tokenCount)
	assert.EqualValues(t, 1, tokenCount)

	// Delivery is fire-and-forget, so give the goroutine a moment
	assert.Eventually(t, func() bool { return env.mailbox.Count() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestCreateApplication_Under18Rejected(t *testing.T) {
	env := setupEnv(t)

	req := validStepOne("kid@example.com")
	req.Dob = time.Now().AddDate(-17, 0, 0)

	_, err := env.apps.CreateApplication(env.db, req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	details, ok := appErr.Details.(validator.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, details, "dob")
}

func TestCreateApplication_DuplicateEmailConflict(t *testing.T) {
	env := setupEnv(t)

	createDraft(t, env, "dup@example.com")

	_, err := env.apps.CreateApplication(env.db, validStepOne("dup@example.com"))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestApplyStep_UnknownApplication(t *testing.T) {
	env := setupEnv(t)

	_, err := env.apps.ApplyStep(env.db, "00000000-0000-0000-0000-000000000000", 2, validStepTwo())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestApplyStep_CursorOnlyMovesForward(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "cursor@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 2, validStepTwo())
	require.NoError(t, err)
	_, err = env.apps.ApplyStep(env.db, id, 3, validStepThree())
	require.NoError(t, err)

	var app models.Application
	require.NoError(t, env.db.First(&app, "id = ?", id).Error)
	assert.Equal(t, 4, app.StepCursor, "completing step three points the cursor at step four")

	// Going back to edit step two must not regress the cursor
	redo := validStepTwo()
	redo.StartupName = "AgriLink Revised"
	resp, err := env.apps.ApplyStep(env.db, id, 2, redo)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.NextStep)

	require.NoError(t, env.db.First(&app, "id = ?", id).Error)
	assert.Equal(t, 4, app.StepCursor)
	assert.Equal(t, "AgriLink Revised", app.StartupName)
}

func TestApplyStep_ValidationAccumulates(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "accum@example.com")

	// Both consents missing plus both mandatory documents absent
	_, err := env.apps.ApplyStep(env.db, id, 9, &dto.StepNineRequest{})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	details, ok := appErr.Details.(validator.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, details, "pitch_deck_url")
	assert.Contains(t, details, "cac_url")
	assert.Contains(t, details, "agree_to_tos_ayute")
	assert.Contains(t, details, "agree_to_tos_heifer")
}

func TestApplyStep_RegisteredStartupNeedsCacDetails(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "cac@example.com")

	req := validStepTwo()
	req.LegallyRegistered = true

	_, err := env.apps.ApplyStep(env.db, id, 2, req)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	details, ok := appErr.Details.(validator.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, details, "cac_reg_number")
	assert.Contains(t, details, "year_of_incorporation")

	// Unregistered startups skip both fields entirely
	_, err = env.apps.ApplyStep(env.db, id, 2, validStepTwo())
	require.NoError(t, err)
}

func TestApplyStep_FoundersCannotExceedEmployees(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "team@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 7, &dto.StepSevenRequest{
		NoOfFounders:    5,
		NoOfEmployees:   3,
		FoundersDetails: "Five co-founders",
		TeamSkill:       "Agronomy and software",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	details, ok := appErr.Details.(validator.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, details, "no_of_founders")
}

func TestApplyStep_SubmitFreezesRecord(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "freeze@example.com")

	resp, err := env.apps.ApplyStep(env.db, id, 9, validStepNine())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.NextStep)

	var app models.Application
	require.NoError(t, env.db.First(&app, "id = ?", id).Error)
	assert.Equal(t, models.StatusSubmitted, app.Status)
	assert.Equal(t, 9, app.StepCursor)

	// Any further edit is rejected with a conflict
	_, err = env.apps.ApplyStep(env.db, id, 2, validStepTwo())
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestApplyStep_UnknownStepNumber(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "badstep@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 12, validStepTwo())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestLogin_RequiresVerifiedEmail(t *testing.T) {
	env := setupEnv(t)
	createDraft(t, env, "unverified@example.com")

	_, err := env.apps.Login(env.db, &dto.LoginRequest{
		Email:    "unverified@example.com",
		Password: "str0ngpassword",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestLogin_ResolvesNextStep(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "resume@example.com")

	require.NoError(t, env.db.Model(&models.Application{}).
		Where("id = ?", id).Update("is_verified", true).Error)

	_, err := env.apps.ApplyStep(env.db, id, 2, validStepTwo())
	require.NoError(t, err)
	_, err = env.apps.ApplyStep(env.db, id, 3, validStepThree())
	require.NoError(t, err)

	resp, err := env.apps.Login(env.db, &dto.LoginRequest{
		Email:    "resume@example.com",
		Password: "str0ngpassword",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, id, resp.UserID)
	assert.Contains(t, resp.RedirectURL, "step-four", "resume lands on the first incomplete step")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupEnv(t)
	createDraft(t, env, "wrongpw@example.com")

	_, err := env.apps.Login(env.db, &dto.LoginRequest{
		Email:    "wrongpw@example.com",
		Password: "not-the-password",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCredentials, appErr.Code)
}
