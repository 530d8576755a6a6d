package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

func (s *LocalFileStorage) SaveBytes(data []byte, originalFileName string, prefix string) (string, error) {
	ext := filepath.Ext(originalFileName)
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(fullDirPath, uniqueFileName), data, 0o644); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Exists(filePath string) bool {
	if filePath == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.basePath, filepath.FromSlash(filePath)))
	return err == nil
}

func (s *LocalFileStorage) Delete(filePath string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(filePath))
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(fullPath)
}
