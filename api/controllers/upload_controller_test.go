package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mediavault/mediavault/storage"
	"github.com/mediavault/mediavault/types"
)

// setupUploadRouter creates a test router with the upload endpoint over a
// temporary media root
func setupUploadRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	router := gin.New()
	ctrl := NewUploadController(storage.NewFolderStore(root), nil, nil)
	router.POST("/api/upload", ctrl.HandleUpload)
	return router, root
}

// buildMultipart assembles a multipart body with an optional folderPath field
// followed by the named file parts
func buildMultipart(t *testing.T, folderPath string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if folderPath != "" {
		if err := writer.WriteField("folderPath", folderPath); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, router *gin.Engine, url string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, types.UploadResponse) {
	t.Helper()
	req, _ := http.NewRequest("POST", url, body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response types.UploadResponse
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}
	}
	return w, response
}

func TestUploadSingleImage(t *testing.T) {
	router, root := setupUploadRouter(t)

	body, contentType := buildMultipart(t, "trips", map[string]string{"beach.jpg": "jpeg bytes"})
	w, response := doUpload(t, router, "/api/upload", body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d: %s", w.Code, w.Body.String())
	}
	if !response.Success {
		t.Error("Expected success to be true")
	}
	if len(response.Files) != 1 {
		t.Fatalf("Expected 1 accepted file, got %d", len(response.Files))
	}
	if response.Files[0].Name != "beach.jpg" {
		t.Errorf("Expected original name beach.jpg, got %s", response.Files[0].Name)
	}
	if !strings.HasPrefix(response.Files[0].URL, "/media/trips/") {
		t.Errorf("Unexpected serving URL: %s", response.Files[0].URL)
	}

	stored := filepath.Join(root, filepath.FromSlash(response.Files[0].Path))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("Stored file missing: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("Stored content mismatch: %q", data)
	}
}

func TestUploadRejectsUnrecognizedType(t *testing.T) {
	router, root := setupUploadRouter(t)

	body, contentType := buildMultipart(t, "", map[string]string{"tool.exe": "mz"})
	w, response := doUpload(t, router, "/api/upload", body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	if response.Success {
		t.Error("Expected success to be false")
	}
	if len(response.Files) != 0 || len(response.Errors) != 1 {
		t.Fatalf("Expected 0 files and 1 error, got %d/%d", len(response.Files), len(response.Errors))
	}
	if response.Errors[0].Name != "tool.exe" || response.Errors[0].Error != "Invalid file type" {
		t.Errorf("Unexpected error entry: %+v", response.Errors[0])
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Errorf("Rejected upload must leave nothing on disk, found %d entries", len(entries))
	}
}

func TestUploadMixedBatchIsolatesFailures(t *testing.T) {
	router, _ := setupUploadRouter(t)

	body, contentType := buildMultipart(t, "", map[string]string{
		"ok.jpg":  "image",
		"bad.exe": "mz",
	})
	w, response := doUpload(t, router, "/api/upload", body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	if response.Success {
		t.Error("Expected success to be false when any file fails")
	}
	if len(response.Files) != 1 || response.Files[0].Name != "ok.jpg" {
		t.Errorf("Expected ok.jpg to be accepted, got %+v", response.Files)
	}
	if len(response.Errors) != 1 || response.Errors[0].Name != "bad.exe" {
		t.Errorf("Expected bad.exe to be rejected, got %+v", response.Errors)
	}
}

func TestUploadTraversalDestinationAbortsRequest(t *testing.T) {
	router, _ := setupUploadRouter(t)

	body, contentType := buildMultipart(t, "../../outside", map[string]string{"a.jpg": "x"})
	w, _ := doUpload(t, router, "/api/upload", body, contentType)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}

func TestUploadFolderPathFromQuery(t *testing.T) {
	router, root := setupUploadRouter(t)

	body, contentType := buildMultipart(t, "", map[string]string{"q.png": "png"})
	w, response := doUpload(t, router, "/api/upload?folderPath=fromquery", body, contentType)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	if len(response.Files) != 1 {
		t.Fatalf("Expected 1 accepted file, got %d", len(response.Files))
	}
	if !strings.HasPrefix(response.Files[0].Path, "fromquery/") {
		t.Errorf("Expected file under fromquery/, got %s", response.Files[0].Path)
	}
	if _, err := os.Stat(filepath.Join(root, "fromquery")); err != nil {
		t.Errorf("Destination folder missing: %v", err)
	}
}

func TestUploadNotMultipart(t *testing.T) {
	router, _ := setupUploadRouter(t)

	req, _ := http.NewRequest("POST", "/api/upload", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}
