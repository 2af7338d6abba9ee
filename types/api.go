package types

// AuthRequest is the body of POST /api/auth.
type AuthRequest struct {
	Code string `json:"code"`
}

// AuthResponse is returned when the access code matches.
// The token is the shared secret itself, echoed back as a bearer token.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// CreateFolderRequest is the body of POST /api/folders.
type CreateFolderRequest struct {
	Name       string `json:"name"`
	ParentPath string `json:"parentPath"`
}

// CreateFolderResponse is returned from POST /api/folders.
type CreateFolderResponse struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
}

// DeleteFileRequest is the body of DELETE /api/files.
type DeleteFileRequest struct {
	FilePath string `json:"filePath"`
}

// BulkDeleteRequest is the body of DELETE /api/files/bulk.
type BulkDeleteRequest struct {
	FilePaths []string `json:"filePaths"`
}

// BulkDeleteResponse reports per-target outcomes for a bulk delete.
type BulkDeleteResponse struct {
	Success bool           `json:"success"`
	Results []DeleteResult `json:"results"`
}

// DeleteAllRequest is the body of DELETE /api/files/all.
type DeleteAllRequest struct {
	FolderPath string `json:"folderPath"`
}

// DeleteAllResponse reports per-target outcomes when clearing a folder.
type DeleteAllResponse struct {
	Success      bool           `json:"success"`
	Results      []DeleteResult `json:"results"`
	DeletedCount int            `json:"deletedCount"`
}
