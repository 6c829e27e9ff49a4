package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
)

// File storage
type FileStorage struct {
	filePath string
}

// New file storage
func NewFileStorage(filePath string) *FileStorage {
	return &FileStorage{filePath: filePath}
}

// Read snapshot from file. Missing or empty file gives an empty snapshot.
func (fs *FileStorage) Snapshot() (models.Snapshot, error) {
	var snapshot models.Snapshot
	file, err := os.Open(fs.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snapshot, nil
		}
		return snapshot, fmt.Errorf("could not load data from file: %w", err)
	}
	defer file.Close()

	if err = json.NewDecoder(file).Decode(&snapshot); err != nil && !errors.Is(err, io.EOF) {
		return models.Snapshot{}, fmt.Errorf("could not restore data: %w", err)
	}

	return snapshot, nil
}

// Save snapshot to file
func (fs *FileStorage) Dump(snapshot models.Snapshot) error {
	tmpPath := fs.filePath + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}

	if err = json.NewEncoder(file).Encode(snapshot); err != nil {
		_ = file.Close()
		return fmt.Errorf("could not dump storage: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}

	// readers never see a partially written snapshot
	if err = os.Rename(tmpPath, fs.filePath); err != nil {
		return fmt.Errorf("could not dump storage: %w", err)
	}

	return nil
}
