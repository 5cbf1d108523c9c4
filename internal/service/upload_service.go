package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ridereg/internal/auth"
	"ridereg/internal/authz"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
)

// 5 MiB of decoded bytes; rider photos only.
const maxUploadBytes = 5 << 20

var uploadExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadService accepts base64 data URIs and stores them under the uploads
// directory, returning the public URL.
type UploadService interface {
	Store(ctx context.Context, claims *auth.Claims, dataURI string) (url string, err error)
}

type uploadService struct {
	policy        authz.Policy
	uploadDir     string
	publicBaseURL string
}

// NewUploadService creates a new upload service rooted at uploadDir.
func NewUploadService(policy authz.Policy, uploadDir, publicBaseURL string) UploadService {
	return &uploadService{
		policy:        policy,
		uploadDir:     uploadDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Store decodes a data URI and writes it under the uploads dir.
func (s *uploadService) Store(ctx context.Context, claims *auth.Claims, dataURI string) (string, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleUser, model.RoleViewer, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return "", err
	}

	mime, data, err := parseDataURI(dataURI)
	if err != nil {
		return "", err
	}
	ext, ok := uploadExtensions[mime]
	if !ok {
		return "", apperrors.NewValidationError("unsupported image type")
	}
	if len(data) > maxUploadBytes {
		return "", apperrors.NewValidationError("file exceeds the 5MB limit")
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.publicBaseURL + "/uploads/" + name, nil
}

// parseDataURI splits "data:<mime>;base64,<payload>" into its MIME type and
// decoded bytes.
func parseDataURI(dataURI string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, apperrors.NewValidationError("file must be a base64 data URI")
	}
	rest := strings.TrimPrefix(dataURI, "data:")
	header, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(header, ";base64") {
		return "", nil, apperrors.NewValidationError("file must be a base64 data URI")
	}
	mime = strings.TrimSuffix(header, ";base64")

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, apperrors.NewValidationError("file payload is not valid base64")
	}
	return mime, data, nil
}
