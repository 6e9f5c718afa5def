package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Saver is the platform save-blob-as-file primitive: it persists artifact
// bytes under a suggested filename.
type Saver interface {
	// SaveFile writes content under the given filename inside the base
	// directory, creating parent directories as needed.
	SaveFile(filename string, content []byte) (string, error)
}

// LocalSaver implements Saver on the local filesystem, scoped to a downloads
// directory.
type LocalSaver struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalSaver creates a saver rooted at baseDir.
func NewLocalSaver(baseDir string, logger *zap.Logger) *LocalSaver {
	return &LocalSaver{
		baseDir: baseDir,
		logger:  logger,
	}
}

// SaveFile writes content to baseDir/filename and returns the full path.
// Saving the same filename twice simply overwrites the earlier copy, which
// keeps repeated downloads of one artifact safe.
func (s *LocalSaver) SaveFile(filename string, content []byte) (string, error) {
	fullPath := filepath.Join(s.baseDir, filepath.Base(filename))
	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		s.logger.Error("Failed to create downloads directory",
			zap.String("path", filepath.Dir(fullPath)),
			zap.Error(err))
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write file",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("File saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))
	return fullPath, nil
}

// validatePath checks that the resolved path stays within the base directory.
func (s *LocalSaver) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes downloads directory: %s", fullPath)
	}
	return nil
}
