package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReportStorage manages the directory generated review PDFs are written to.
// Filenames are keyed by review id, so concurrent writers never collide.
type ReportStorage interface {
	EnsureDir() error
	PathFor(reviewID uuid.UUID) string
	Exists(reviewID uuid.UUID) bool
}

type reportStorage struct {
	dir string
}

func NewReportStorage(dir string) ReportStorage {
	return &reportStorage{
		dir: dir,
	}
}

// EnsureDir implements ReportStorage.
func (s *reportStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	return nil
}

// PathFor implements ReportStorage.
func (s *reportStorage) PathFor(reviewID uuid.UUID) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.pdf", reviewID))
}

// Exists implements ReportStorage.
func (s *reportStorage) Exists(reviewID uuid.UUID) bool {
	_, err := os.Stat(s.PathFor(reviewID))
	return err == nil
}
