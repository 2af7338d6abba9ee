package types

// Entry kinds reported by folder listings.
const (
	EntryKindFolder = "folder"
	EntryKindImage  = "image"
	EntryKindVideo  = "video"
)

// FolderEntry is one entry of a folder listing. Derived fresh on every
// listing call; its only identity is the relative path.
type FolderEntry struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Path     string `json:"path"`
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// FolderListing is the response of GET /api/folders.
type FolderListing struct {
	Folders     []FolderEntry `json:"folders"`
	Files       []FolderEntry `json:"files"`
	CurrentPath string        `json:"currentPath"`
}

// UploadResult describes one accepted file of an upload request.
// Request-scoped, not persisted beyond the HTTP response.
type UploadResult struct {
	Name string `json:"name"` // original client-supplied name
	Path string `json:"path"` // stored path relative to the media root
	URL  string `json:"url"`  // serving URL under /media
}

// UploadError describes one rejected file of an upload request.
// A rejected file never aborts its siblings.
type UploadError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadResponse is the response of POST /api/upload.
type UploadResponse struct {
	Success bool           `json:"success"`
	Files   []UploadResult `json:"files"`
	Errors  []UploadError  `json:"errors,omitempty"`
}

// DeleteResult reports the outcome for a single deletion target.
type DeleteResult struct {
	Path    string `json:"path"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
