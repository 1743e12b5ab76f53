package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"ayuteng_backend/internal/models"
	"ayuteng_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportApplications_Csv(t *testing.T) {
	env := setupEnv(t)

	createDraft(t, env, "alpha@example.com")
	createDraft(t, env, "beta@example.com")

	result, err := env.exporter.ExportApplications(env.db, "csv", repositories.ApplicationFilter{})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "applications.csv", result.FileName)

	records, err := csv.NewReader(bytes.NewReader(result.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	header := records[0]
	assert.Equal(t, "Reference Number", header[0])
	assert.Equal(t, len(header), len(records[1]), "every row matches the header width")
}

func TestExportApplications_JsonAndFilters(t *testing.T) {
	env := setupEnv(t)

	id := createDraft(t, env, "submitted@example.com")
	createDraft(t, env, "draft@example.com")

	_, err := env.apps.ApplyStep(env.db, id, 9, validStepNine())
	require.NoError(t, err)

	result, err := env.exporter.ExportApplications(env.db, "json",
		repositories.ApplicationFilter{Status: models.StatusSubmitted})
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)

	var apps []models.Application
	require.NoError(t, json.Unmarshal(result.Content, &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "submitted@example.com", apps[0].Email)
}

func TestExportApplications_UnsupportedFormat(t *testing.T) {
	env := setupEnv(t)

	_, err := env.exporter.ExportApplications(env.db, "xlsx", repositories.ApplicationFilter{})
	require.Error(t, err)
}

func TestExportSingleApplication(t *testing.T) {
	env := setupEnv(t)
	id := createDraft(t, env, "single@example.com")

	result, err := env.exporter.ExportApplication(env.db, "csv", id)
	require.NoError(t, err)
	assert.Contains(t, result.FileName, "application_AYT-")

	_, err = env.exporter.ExportApplication(env.db, "csv", "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
}
