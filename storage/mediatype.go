package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// Recognized media extensions, matched case-insensitively. Anything else is
// rejected on upload and silently excluded from listings.
var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".webp": true, ".heic": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true,
		".webm": true, ".mkv": true, ".m4v": true, ".3gp": true,
	}
)

// ClassifyMedia returns "image" or "video" for a recognized media filename,
// or "" when the extension is not in the recognized set.
func ClassifyMedia(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExtensions[ext]:
		return "image"
	case videoExtensions[ext]:
		return "video"
	default:
		return ""
	}
}

// IsAllowedMedia reports whether the filename carries a recognized image or
// video extension.
func IsAllowedMedia(name string) bool {
	return ClassifyMedia(name) != ""
}

// MimeTypeOf returns the MIME type inferred from the file extension.
func MimeTypeOf(name string) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return mimeType
}
