package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mediavault/mediavault/storage"
	"github.com/mediavault/mediavault/types"
)

// setupDeleteRouter creates a test router with the delete endpoints over a
// temporary media root
func setupDeleteRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	router := gin.New()
	ctrl := NewDeleteController(storage.NewDeletionService(root))
	router.DELETE("/api/files", ctrl.HandleDeleteOne)
	router.DELETE("/api/files/bulk", ctrl.HandleDeleteBulk)
	router.DELETE("/api/files/all", ctrl.HandleDeleteAll)
	return router, root
}

func seedFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func deleteJSON(t *testing.T, router *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("DELETE", url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDeleteFile(t *testing.T) {
	router, root := setupDeleteRouter(t)
	seedFile(t, root, "gone.jpg")

	w := deleteJSON(t, router, "/api/files", types.DeleteFileRequest{FilePath: "gone.jpg"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(filepath.Join(root, "gone.jpg")); !os.IsNotExist(err) {
		t.Error("File should be removed from disk")
	}
}

func TestDeleteFileMissingPath(t *testing.T) {
	router, _ := setupDeleteRouter(t)

	w := deleteJSON(t, router, "/api/files", types.DeleteFileRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}

func TestDeleteFileTraversal(t *testing.T) {
	router, _ := setupDeleteRouter(t)

	w := deleteJSON(t, router, "/api/files", types.DeleteFileRequest{FilePath: "../../etc/passwd"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}

func TestDeleteBulkReportsPerTarget(t *testing.T) {
	router, root := setupDeleteRouter(t)
	seedFile(t, root, "a.jpg")
	seedFile(t, root, "b.jpg")

	w := deleteJSON(t, router, "/api/files/bulk",
		types.BulkDeleteRequest{FilePaths: []string{"a.jpg", "missing.jpg", "b.jpg"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}

	var response types.BulkDeleteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(response.Results))
	}
	failed := 0
	for _, r := range response.Results {
		if !r.Success {
			failed++
			if r.Path != "missing.jpg" {
				t.Errorf("Unexpected failing path: %s", r.Path)
			}
		}
	}
	if failed != 1 {
		t.Errorf("Expected exactly 1 failure, got %d", failed)
	}
}

func TestDeleteBulkEmpty(t *testing.T) {
	router, _ := setupDeleteRouter(t)

	w := deleteJSON(t, router, "/api/files/bulk", types.BulkDeleteRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}

func TestDeleteAllFolder(t *testing.T) {
	router, root := setupDeleteRouter(t)
	seedFile(t, root, "albums/a.jpg")
	seedFile(t, root, "albums/b.mp4")
	seedFile(t, root, "albums/nested/keep.jpg")

	w := deleteJSON(t, router, "/api/files/all", types.DeleteAllRequest{FolderPath: "albums"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}

	var response types.DeleteAllResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.DeletedCount != 2 {
		t.Errorf("Expected 2 deletions, got %d", response.DeletedCount)
	}
	if _, err := os.Stat(filepath.Join(root, "albums", "nested", "keep.jpg")); err != nil {
		t.Error("Nested file should survive a top-level clear")
	}
}
