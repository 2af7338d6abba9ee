package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/mediavault/mediavault/types"
)

// FolderStore lists and creates folders under a single media root. Listings
// are derived fresh on every call; nothing is cached.
type FolderStore struct {
	root string
}

func NewFolderStore(root string) *FolderStore {
	return &FolderStore{root: root}
}

func (s *FolderStore) Root() string {
	return s.root
}

// List returns the folders and recognized media files directly under
// relPath. Files with an unrecognized extension are excluded; directories are
// always included.
func (s *FolderStore) List(relPath string) (*types.FolderListing, error) {
	dir, err := Resolve(s.root, relPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	listing := &types.FolderListing{
		Folders:     make([]types.FolderEntry, 0),
		Files:       make([]types.FolderEntry, 0),
		CurrentPath: path.Clean("/" + filepath.ToSlash(relPath))[1:],
	}

	for _, entry := range entries {
		entryPath := RelativeTo(s.root, filepath.Join(dir, entry.Name()))
		if entry.IsDir() {
			listing.Folders = append(listing.Folders, types.FolderEntry{
				Name: entry.Name(),
				Type: types.EntryKindFolder,
				Path: entryPath,
			})
			continue
		}
		kind := ClassifyMedia(entry.Name())
		if kind == "" {
			continue
		}
		listing.Files = append(listing.Files, types.FolderEntry{
			Name:     entry.Name(),
			Type:     kind,
			Path:     entryPath,
			URL:      "/media/" + entryPath,
			MimeType: MimeTypeOf(entry.Name()),
		})
	}

	return listing, nil
}

// CreateFolder creates a subfolder under parentPath, succeeding quietly when
// it already exists. Returns the normalized relative path of the folder.
func (s *FolderStore) CreateFolder(parentPath, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("folder name is required")
	}
	rel := path.Join(filepath.ToSlash(parentPath), name)
	dir, err := Resolve(s.root, rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder failed: %w", err)
	}
	return RelativeTo(s.root, dir), nil
}

// EnsureFolder resolves relPath and creates the directory if absent,
// returning the absolute path. Used by the upload path before writing files.
func (s *FolderStore) EnsureFolder(relPath string) (string, error) {
	dir, err := Resolve(s.root, relPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir failed: %w", err)
	}
	return dir, nil
}
