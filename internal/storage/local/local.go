package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LocalObjectStore keeps objects on the local filesystem under
// baseDir/<bucket>/<path> and serves them through /media/<bucket>/<path>.
type LocalObjectStore struct {
	baseDir       string
	publicBaseURL string
}

func NewLocalObjectStore(baseDir, publicBaseURL string) (*LocalObjectStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalObjectStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *LocalObjectStore) Upload(ctx context.Context, bucket, path string, r io.Reader) error {
	filePath, err := s.safeJoin(bucket, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func (s *LocalObjectStore) Open(ctx context.Context, bucket, path string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(bucket, path)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("object not found")
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, ExtToMimeType(filePath), nil
}

func (s *LocalObjectStore) Delete(ctx context.Context, bucket, path string) error {
	filePath, err := s.safeJoin(bucket, path)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("object not found")
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalObjectStore) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/media/%s/%s", s.publicBaseURL, bucket, path)
}

// safeJoin resolves bucket/path relative to baseDir and rejects directory traversal.
func (s *LocalObjectStore) safeJoin(bucket, path string) (string, error) {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.baseDir, bucket, path))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}

// MimeTypeToExt maps a content type to a file extension, defaulting to .jpg.
func MimeTypeToExt(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// ExtToMimeType maps a file extension back to a content type.
func ExtToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
