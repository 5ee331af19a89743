package asset

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const MaxPayloadSize = 10 * 1024 * 1024 // 10 MB

// AllowedMimeTypes defines which payload types are accepted
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DiskStore keeps assets on local disk under baseDir/namespace and serves them
// from urlBase. Simple: sniff type -> write file -> return URL.
type DiskStore struct {
	baseDir   string
	namespace string
	urlBase   string // URL prefix the files are served from
}

func NewDiskStore(baseDir, namespace, urlBase string) *DiskStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if urlBase == "" {
		urlBase = "/static/uploads"
	}
	return &DiskStore{baseDir: baseDir, namespace: namespace, urlBase: urlBase}
}

// Dir returns the directory assets are written to, for static file serving.
func (s *DiskStore) Dir() string {
	return filepath.Join(s.baseDir, s.namespace)
}

func (s *DiskStore) Create(ctx context.Context, payload []byte, contentType, key string) (string, error) {
	if len(payload) == 0 {
		return "", ErrEmptyPayload
	}
	if len(payload) > MaxPayloadSize {
		return "", ErrPayloadTooLarge
	}

	// Trust the sniffed type over the declared one
	mimeType := http.DetectContentType(payload)
	mimeType = strings.Split(mimeType, ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return "", ErrInvalidMimeType
	}

	dir := s.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create asset directory: %w", err)
	}

	filename := key + mimeToExt(mimeType)
	absPath := filepath.Join(dir, filename)
	if err := os.WriteFile(absPath, payload, 0644); err != nil {
		return "", fmt.Errorf("failed to write asset: %w", err)
	}

	return s.urlBase + "/" + s.namespace + "/" + filename, nil
}

// Delete removes the asset stored under key regardless of its extension.
func (s *DiskStore) Delete(ctx context.Context, key string) error {
	matches, err := filepath.Glob(filepath.Join(s.Dir(), key+".*"))
	if err != nil {
		return fmt.Errorf("failed to locate asset: %w", err)
	}
	if len(matches) == 0 {
		return ErrNotFound
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("failed to remove asset: %w", err)
		}
	}
	return nil
}

func mimeToExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
