// Package analysis orchestrates the Nutriscope pipeline: detection, scoring,
// and result storage.
package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for detection payloads and score
// summaries.
type StorageClient interface {
	PutDetection(ctx context.Context, analysisID string, data []byte) error
	GetDetection(ctx context.Context, analysisID string) ([]byte, error)
	PutSummary(ctx context.Context, analysisID string, data []byte) error
	GetSummary(ctx context.Context, analysisID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(kind, id string) string {
	return filepath.Join(s.BaseDir, kind, id+".json")
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutDetection stores a detection blob.
func (s *LocalStorage) PutDetection(ctx context.Context, analysisID string, data []byte) error {
	return s.put(s.path("detections", analysisID), data)
}

// GetDetection retrieves a detection blob.
func (s *LocalStorage) GetDetection(ctx context.Context, analysisID string) ([]byte, error) {
	return os.ReadFile(s.path("detections", analysisID))
}

// PutSummary stores a summary blob.
func (s *LocalStorage) PutSummary(ctx context.Context, analysisID string, data []byte) error {
	return s.put(s.path("summaries", analysisID), data)
}

// GetSummary retrieves a summary blob.
func (s *LocalStorage) GetSummary(ctx context.Context, analysisID string) ([]byte, error) {
	return os.ReadFile(s.path("summaries", analysisID))
}
