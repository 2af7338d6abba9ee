package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mediavault/mediavault/notify"
	"github.com/mediavault/mediavault/storage"
	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/types"
)

type UploadController struct {
	store    *storage.FolderStore
	recorder *storage.MetadataRecorder
	notify   *notify.Buffer
}

func NewUploadController(store *storage.FolderStore, recorder *storage.MetadataRecorder, buffer *notify.Buffer) *UploadController {
	return &UploadController{store: store, recorder: recorder, notify: buffer}
}

// HandleUpload accepts a multipart batch of media files and streams each one
// to disk under the resolved destination folder. Files are judged
// individually: an unrecognized extension or an oversized body rejects that
// file only, reported in the same response, and never aborts its siblings.
// POST /api/upload
func (ctrl *UploadController) HandleUpload(c *gin.Context) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid multipart request: "+err.Error()))
		return
	}

	// folderPath may arrive as a query parameter or as a form field ahead of
	// the file parts; the bundled clients send the field first.
	folderPath := c.Query("folderPath")

	response := types.UploadResponse{
		Files:  make([]types.UploadResult, 0),
		Errors: make([]types.UploadError, 0),
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("Malformed multipart stream: "+err.Error()))
			return
		}

		if part.FormName() == "folderPath" && part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, 4096))
			if err == nil {
				folderPath = string(value)
			}
			part.Close()
			continue
		}
		if part.FileName() == "" {
			part.Close()
			continue
		}

		originalName := part.FileName()
		storedPath, written, err := storage.SaveFile(ctrl.store, folderPath, originalName, part)
		part.Close()
		if err != nil {
			// Traversal poisons the whole request: the destination itself is
			// invalid, so no file of this batch has a legal target.
			if errors.Is(err, storage.ErrTraversal) || errors.Is(err, storage.ErrInvalidPath) {
				status, msg := mapStorageError(err)
				c.JSON(status, tool.FastReturnError(msg))
				return
			}
			tool.DefaultLogger.Warnf("[Upload] Rejected %s: %v", originalName, err)
			response.Errors = append(response.Errors, types.UploadError{
				Name:  originalName,
				Error: uploadErrorMessage(err),
			})
			continue
		}

		tool.DefaultLogger.Infof("[Upload] Saved %s as %s (%d bytes)", originalName, storedPath, written)
		ctrl.recorder.RecordUpload(
			storedPath, originalName, storedPath, storage.MimeTypeOf(originalName), written, folderPath)
		response.Files = append(response.Files, types.UploadResult{
			Name: originalName,
			Path: storedPath,
			URL:  "/media/" + storedPath,
		})
	}

	response.Success = len(response.Errors) == 0

	if ctrl.notify != nil && len(response.Files) > 0 {
		ctrl.notify.Post("upload_complete",
			fmt.Sprintf("Uploaded %d file(s)", len(response.Files)), 5*time.Second)
	}

	c.JSON(http.StatusOK, response)
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrInvalidFileType):
		return "Invalid file type"
	case errors.Is(err, storage.ErrPayloadTooLarge):
		return "File exceeds maximum upload size"
	default:
		return err.Error()
	}
}
