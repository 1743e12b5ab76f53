package services

import (
	"testing"
	"time"

	"ayuteng_backend/internal/models"
	"ayuteng_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_ReissueLeavesSingleLiveToken(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "tokens@example.com")

	first, err := env.verifier.Issue(env.db, id)
	require.NoError(t, err)
	second, err := env.verifier.Issue(env.db, id)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Len(t, second, 64, "32 random bytes hex encoded")

	// Only the latest token survives; the earlier unused one is gone
	var count int64
	env.db.Model(&models.EmailVerificationToken{}).
		Where("owner_id = ? AND is_used = ?", id, false).Count(&count)
	assert.EqualValues(t, 1, count)

	ok, err := env.verifier.Validate(env.db, first)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.verifier.Validate(env.db, second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidate_IsPure(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "pure@example.com")

	token, err := env.verifier.Issue(env.db, id)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ok, err := env.verifier.Validate(env.db, token)
		require.NoError(t, err)
		assert.True(t, ok, "validation must not consume the token")
	}

	ok, err := env.verifier.Validate(env.db, "no-such-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyEmail_ConsumesOnce(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "verify@example.com")

	token, err := env.verifier.Issue(env.db, id)
	require.NoError(t, err)

	require.NoError(t, env.verifier.VerifyEmail(env.db, token))

	var app models.Application
	require.NoError(t, env.db.First(&app, "id = ?", id).Error)
	assert.True(t, app.IsVerified)

	// Second use of the same link fails
	err = env.verifier.VerifyEmail(env.db, token)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidToken, appErr.Code)
}

func TestVerifyEmail_ExpiredToken(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "expired@example.com")

	token, err := env.verifier.Issue(env.db, id)
	require.NoError(t, err)

	// Age the token past its 24 hour window
	require.NoError(t, env.db.Model(&models.EmailVerificationToken{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().UTC().Add(-time.Hour)).Error)

	err = env.verifier.VerifyEmail(env.db, token)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeTokenExpired, appErr.Code)

	var app models.Application
	require.NoError(t, env.db.First(&app, "id = ?", id).Error)
	assert.False(t, app.IsVerified)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	env := setupEnv(t)

	err := env.verifier.VerifyEmail(env.db, "bogus")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidToken, appErr.Code)
}
