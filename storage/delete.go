package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediavault/mediavault/types"
)

// DeletionService removes files under the media root. Multi-target
// operations are not transactional: every target is attempted independently
// and the result reports per-target success.
type DeletionService struct {
	root string
}

func NewDeletionService(root string) *DeletionService {
	return &DeletionService{root: root}
}

// DeleteOne removes a single file.
func (s *DeletionService) DeleteOne(relPath string) error {
	abs, err := Resolve(s.root, relPath)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("file not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("target is a folder, not a file")
	}
	return os.Remove(abs)
}

// DeleteMany attempts each path independently. A failure on one file never
// prevents attempting the rest.
func (s *DeletionService) DeleteMany(relPaths []string) []types.DeleteResult {
	results := make([]types.DeleteResult, 0, len(relPaths))
	for _, p := range relPaths {
		result := types.DeleteResult{Path: p, Success: true}
		if err := s.DeleteOne(p); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

// DeleteAll removes every regular file directly under folderPath,
// reporting per-file outcomes. Subfolders are left untouched.
func (s *DeletionService) DeleteAll(folderPath string) ([]types.DeleteResult, error) {
	dir, err := Resolve(s.root, folderPath)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	results := make([]types.DeleteResult, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rel := RelativeTo(s.root, filepath.Join(dir, entry.Name()))
		result := types.DeleteResult{Path: rel, Success: true}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}
