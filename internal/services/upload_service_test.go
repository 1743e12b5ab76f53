package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"ayuteng_backend/internal/storage"
	"ayuteng_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUploads(t *testing.T) UploadService {
	t.Helper()
	setupTestConfig(t)

	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "/uploads",
	})
	require.NoError(t, err)

	return NewUploadService(store)
}

func pdfBody() *bytes.Reader {
	return bytes.NewReader([]byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n%%EOF"))
}

func TestUploadDocument_Success(t *testing.T) {
	uploads := setupUploads(t)

	body := pdfBody()
	resp, err := uploads.UploadDocument(context.Background(),
		"app-1", "pitch_deck_url", "deck.pdf", "application/pdf", int64(body.Len()), body)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "app-1_pitch_deck_url.pdf", resp.FileName)
	assert.True(t, strings.HasPrefix(resp.URL, "http://localhost:4000/uploads/"), resp.URL)
}

func TestUploadDocument_ReplacementGetsCounterSuffix(t *testing.T) {
	uploads := setupUploads(t)

	body := pdfBody()
	_, err := uploads.UploadDocument(context.Background(),
		"app-1", "cac_url", "cac.pdf", "application/pdf", int64(body.Len()), body)
	require.NoError(t, err)

	body = pdfBody()
	resp, err := uploads.UploadDocument(context.Background(),
		"app-1", "cac_url", "cac.pdf", "application/pdf", int64(body.Len()), body)
	require.NoError(t, err)
	assert.Equal(t, "app-1_cac_url_1.pdf", resp.FileName)
}

func TestUploadDocument_RejectsWrongMagicBytes(t *testing.T) {
	uploads := setupUploads(t)

	body := bytes.NewReader([]byte("<html>not a pdf</html>"))
	_, err := uploads.UploadDocument(context.Background(),
		"app-1", "tin_url", "doc.pdf", "application/pdf", int64(body.Len()), body)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUploadDocument_RejectsWrongExtension(t *testing.T) {
	uploads := setupUploads(t)

	body := pdfBody()
	_, err := uploads.UploadDocument(context.Background(),
		"app-1", "tin_url", "doc.docx", "application/pdf", int64(body.Len()), body)
	require.Error(t, err)
}

func TestUploadDocument_RejectsWrongContentType(t *testing.T) {
	uploads := setupUploads(t)

	body := pdfBody()
	_, err := uploads.UploadDocument(context.Background(),
		"app-1", "tin_url", "doc.pdf", "image/png", int64(body.Len()), body)
	require.Error(t, err)
}

func TestUploadDocument_RejectsOversizeFile(t *testing.T) {
	uploads := setupUploads(t)

	body := pdfBody()
	_, err := uploads.UploadDocument(context.Background(),
		"app-1", "tin_url", "doc.pdf", "application/pdf", 11*1024*1024, body)
	require.Error(t, err)
}

func TestUploadDocument_RejectsUnknownField(t *testing.T) {
	uploads := setupUploads(t)

	body := pdfBody()
	_, err := uploads.UploadDocument(context.Background(),
		"app-1", "resume_url", "doc.pdf", "application/pdf", int64(body.Len()), body)
	require.Error(t, err)
}
