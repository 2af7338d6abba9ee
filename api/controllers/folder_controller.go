package controllers

import (
	"errors"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/mediavault/mediavault/storage"
	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/types"
)

type FolderController struct {
	store    *storage.FolderStore
	recorder *storage.MetadataRecorder
}

func NewFolderController(store *storage.FolderStore, recorder *storage.MetadataRecorder) *FolderController {
	return &FolderController{store: store, recorder: recorder}
}

// HandleList lists folders and recognized media files under ?path=.
// GET /api/folders
func (ctrl *FolderController) HandleList(c *gin.Context) {
	folderPath := c.Query("path")

	listing, err := ctrl.store.List(folderPath)
	if err != nil {
		status, msg := mapStorageError(err)
		c.JSON(status, tool.FastReturnError(msg))
		return
	}
	c.JSON(http.StatusOK, listing)
}

// HandleCreate creates a subfolder, succeeding quietly when it exists.
// POST /api/folders
func (ctrl *FolderController) HandleCreate(c *gin.Context) {
	var request types.CreateFolderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}

	relPath, err := ctrl.store.CreateFolder(request.ParentPath, request.Name)
	if err != nil {
		status, msg := mapStorageError(err)
		c.JSON(status, tool.FastReturnError(msg))
		return
	}

	tool.DefaultLogger.Infof("[Folders] Created folder: %s", relPath)
	ctrl.recorder.RecordFolder(path.Base(relPath), relPath, request.ParentPath)

	c.JSON(http.StatusOK, types.CreateFolderResponse{Success: true, Path: relPath})
}

// mapStorageError translates storage errors to HTTP statuses. Traversal and
// malformed paths are client errors and never reach the filesystem.
func mapStorageError(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrTraversal):
		return http.StatusBadRequest, "Path escapes media root"
	case errors.Is(err, storage.ErrInvalidPath):
		return http.StatusBadRequest, "Invalid path"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
