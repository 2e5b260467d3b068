package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	basePath string
	baseURL  string // e.g. "http://localhost:8080/uploads"
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// resolve sanitizes a reference and anchors it under basePath.
func (s *LocalStorage) resolve(ref string) (string, error) {
	cleanPath := filepath.Clean(ref)
	fullPath := filepath.Join(s.basePath, cleanPath)

	if !strings.HasPrefix(fullPath, s.basePath) {
		return "", fmt.Errorf("invalid file path: %s", ref)
	}
	return fullPath, nil
}

func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, ref string, contentType string) (string, error) {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filepath.ToSlash(filepath.Clean(ref)), nil
}

func (s *LocalStorage) Download(ctx context.Context, ref string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", ref)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, ref string) error {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // already gone
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// PublicURL maps a reference to its static serving URL.
func (s *LocalStorage) PublicURL(ref string) string {
	return s.baseURL + "/" + path.Clean(filepath.ToSlash(ref))
}

func (s *LocalStorage) Exists(ctx context.Context, ref string) (bool, error) {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
