package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mediavault/mediavault/tool"
)

// MaxUploadSize is the per-file upload cap (500 MiB).
const MaxUploadSize = 500 * 1024 * 1024

var (
	// ErrInvalidFileType rejects a file whose extension is not a recognized
	// image or video. Per-file: siblings in the same request continue.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrPayloadTooLarge rejects a file exceeding MaxUploadSize. Per-file.
	ErrPayloadTooLarge = errors.New("file exceeds maximum upload size")
)

// SaveFile streams body to disk under folderPath with a collision-resistant
// stored name, returning the stored path relative to the media root. The
// body is never buffered whole in memory; an oversized or failed write
// leaves no partial file behind.
func SaveFile(store *FolderStore, folderPath, originalName string, body io.Reader) (string, int64, error) {
	if !IsAllowedMedia(originalName) {
		return "", 0, ErrInvalidFileType
	}

	dir, err := store.EnsureFolder(folderPath)
	if err != nil {
		return "", 0, err
	}

	storedName := tool.GenerateStoredName(originalName)
	targetPath := filepath.Join(dir, storedName)

	file, err := os.Create(targetPath)
	if err != nil {
		return "", 0, fmt.Errorf("create file failed: %w", err)
	}

	// Copy one byte past the cap so an oversized body is detectable without
	// reading it to the end.
	written, err := io.Copy(file, io.LimitReader(body, MaxUploadSize+1))
	closeErr := file.Close()

	switch {
	case err != nil:
		removePartial(targetPath)
		return "", written, fmt.Errorf("write file failed: %w", err)
	case written > MaxUploadSize:
		removePartial(targetPath)
		return "", written, ErrPayloadTooLarge
	case closeErr != nil:
		removePartial(targetPath)
		return "", written, fmt.Errorf("close file failed: %w", closeErr)
	}

	return RelativeTo(store.Root(), targetPath), written, nil
}

func removePartial(path string) {
	if err := os.Remove(path); err != nil {
		tool.DefaultLogger.Errorf("Failed to remove partial file %s: %v", path, err)
	}
}
