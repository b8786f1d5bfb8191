package mediastore

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/eduverse/eduverse/internal/pkg/logger"
)

// LocalStore persists inline media payloads to the local filesystem and
// serves them back through the static uploads route.
type LocalStore struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL prepended to returned file paths
}

// NewLocalStore creates a new LocalStore instance.
// basePath is the required directory path on the server.
// baseURL is the public URL of the uploads route.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create media storage directory")
		return nil, fmt.Errorf("failed to create media storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local media storage directory ensured")

	return &LocalStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Resolve implements Store
func (s *LocalStore) Resolve(ctx context.Context, ref string, kind Kind) (string, error) {
	if ref == "" || !IsInline(ref) {
		return ref, nil
	}

	data, ext, err := decodeInlinePayload(ref, kind)
	if err != nil {
		return "", err
	}

	subDir := string(kind) + "s" // videos, pdfs
	fullDirPath := filepath.Join(s.basePath, subDir)
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create media subdirectory")
		return "", fmt.Errorf("failed to create media subdirectory: %w", err)
	}

	// Unique filename to prevent collisions
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write media file")
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, subDir, uniqueFilename), nil
}

// decodeInlinePayload parses a "data:<mime>;base64,<payload>" reference
func decodeInlinePayload(ref string, kind Kind) ([]byte, string, error) {
	rest := strings.TrimPrefix(ref, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", ErrInvalidPayload
	}

	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", ErrInvalidPayload
	}
	mimeType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return data, extensionFor(mimeType, kind), nil
}

// extensionFor maps a MIME type to a file extension, falling back on the kind
func extensionFor(mimeType string, kind Kind) string {
	switch mimeType {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "application/pdf":
		return ".pdf"
	}
	if kind == KindVideo {
		return ".mp4"
	}
	return ".pdf"
}
