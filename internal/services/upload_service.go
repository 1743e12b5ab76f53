package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"ayuteng_backend/internal/config"
	"ayuteng_backend/internal/services/dto"
	"ayuteng_backend/internal/storage"
	"ayuteng_backend/pkg/apperrors"
)

var pdfMagic = []byte("%PDF-")

// documentFields are the accepted upload targets; the tag doubles as the
// storage folder name.
var documentFields = map[string]bool{
	"pitch_deck_url": true,
	"cac_url":        true,
	"tin_url":        true,
	"others_url":     true,
}

type UploadService interface {
	UploadDocument(ctx context.Context, applicationID, fieldName, fileName, contentType string, size int64, file io.Reader) (*dto.UploadResponse, error)
}

type UploadServiceImpl struct {
	store storage.Storage
}

func NewUploadService(store storage.Storage) UploadService {
	return &UploadServiceImpl{store: store}
}

// UploadDocument validates and stores one PDF document. The stored key is
// deterministic per application and field, so re-uploading a document
// replaces the previous slot rather than piling up files.
func (s *UploadServiceImpl) UploadDocument(ctx context.Context, applicationID, fieldName, fileName, contentType string, size int64, file io.Reader) (*dto.UploadResponse, error) {
	fieldTag := strings.ToLower(fieldName)
	if !documentFields[fieldTag] {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown document field: %s", fieldName))
	}

	if size == 0 {
		return nil, apperrors.NewBadRequestError("No file uploaded")
	}

	maxSize := config.GetConfig().Upload.MaxSize
	if size > maxSize {
		return nil, apperrors.NewBadRequestError("File size must be less than 10MB")
	}

	if err := validatePdf(fileName, contentType, file); err != nil {
		return nil, err
	}

	key, finalName, err := s.uniqueKey(ctx, applicationID, fieldTag, fileName)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	if err := s.store.Save(ctx, key, file, contentType); err != nil {
		return nil, apperrors.StorageError(err)
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.StorageError(err)
	}

	return &dto.UploadResponse{
		Success:  true,
		URL:      absoluteURL(url),
		FileName: finalName,
	}, nil
}

// validatePdf checks extension, declared MIME type and the %PDF- signature.
// The reader must support seeking back via io.Seeker or be pre-buffered by
// the caller; multipart file handles satisfy io.ReadSeeker.
func validatePdf(fileName, contentType string, file io.Reader) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".pdf" {
		return apperrors.NewBadRequestError("Only PDF files are allowed")
	}

	ct := strings.ToLower(contentType)
	if ct != "application/pdf" && ct != "application/x-pdf" {
		return apperrors.NewBadRequestError("Only PDF files are allowed")
	}

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(file, header); err != nil {
		return apperrors.NewBadRequestError("Only PDF files are allowed")
	}
	if seeker, ok := file.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	if !bytes.Equal(header, pdfMagic) {
		return apperrors.NewBadRequestError("Only PDF files are allowed")
	}
	return nil
}

// uniqueKey builds {fieldTag}/{applicationId}_{fieldTag}{ext}. On the rare
// collision it appends a counter, then falls back to a timestamp.
func (s *UploadServiceImpl) uniqueKey(ctx context.Context, applicationID, fieldTag, fileName string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := fmt.Sprintf("%s_%s", applicationID, fieldTag)

	name := base + ext
	key := fieldTag + "/" + name

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return key, name, nil
	}

	for counter := 1; counter <= 100; counter++ {
		name = fmt.Sprintf("%s_%d%s", base, counter, ext)
		key = fieldTag + "/" + name
		exists, err = s.store.Exists(ctx, key)
		if err != nil {
			return "", "", err
		}
		if !exists {
			return key, name, nil
		}
	}

	name = fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102150405"), ext)
	return fieldTag + "/" + name, name, nil
}

// absoluteURL prefixes relative storage URLs with the public base URL.
func absoluteURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	base := strings.TrimRight(config.GetConfig().Server.BaseURL, "/")
	if base == "" {
		return url
	}
	return base + "/" + strings.TrimLeft(url, "/")
}
