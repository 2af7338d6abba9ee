package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediavault/mediavault/storage"
	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/types"
)

type DeleteController struct {
	deleter *storage.DeletionService
}

func NewDeleteController(deleter *storage.DeletionService) *DeleteController {
	return &DeleteController{deleter: deleter}
}

// HandleDeleteOne removes a single file.
// DELETE /api/files
func (ctrl *DeleteController) HandleDeleteOne(c *gin.Context) {
	var request types.DeleteFileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if request.FilePath == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing required parameter: filePath"))
		return
	}

	if err := ctrl.deleter.DeleteOne(request.FilePath); err != nil {
		status, msg := mapStorageError(err)
		c.JSON(status, tool.FastReturnError(msg))
		return
	}
	tool.DefaultLogger.Infof("[Delete] Removed file: %s", request.FilePath)
	c.JSON(http.StatusOK, tool.FastReturnSuccess("File deleted successfully"))
}

// HandleDeleteBulk removes an explicit set of files, attempting each target
// independently and reporting per-target outcomes.
// DELETE /api/files/bulk
func (ctrl *DeleteController) HandleDeleteBulk(c *gin.Context) {
	var request types.BulkDeleteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if len(request.FilePaths) == 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("No file paths provided"))
		return
	}

	results := ctrl.deleter.DeleteMany(request.FilePaths)
	tool.DefaultLogger.Infof("[Delete] Bulk delete: %d targets", len(results))
	c.JSON(http.StatusOK, types.BulkDeleteResponse{Success: true, Results: results})
}

// HandleDeleteAll removes every file directly under a folder.
// DELETE /api/files/all
func (ctrl *DeleteController) HandleDeleteAll(c *gin.Context) {
	var request types.DeleteAllRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}

	results, err := ctrl.deleter.DeleteAll(request.FolderPath)
	if err != nil {
		status, msg := mapStorageError(err)
		c.JSON(status, tool.FastReturnError(msg))
		return
	}

	deleted := 0
	for _, r := range results {
		if r.Success {
			deleted++
		}
	}
	tool.DefaultLogger.Infof("[Delete] Cleared folder %q: %d/%d removed", request.FolderPath, deleted, len(results))
	c.JSON(http.StatusOK, types.DeleteAllResponse{Success: true, Results: results, DeletedCount: deleted})
}
