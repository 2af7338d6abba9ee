package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"

	"github.com/bytedance/sonic"

	"github.com/mediavault/mediavault/tool"
	"github.com/mediavault/mediavault/types"
)

// Client talks to a media server. Control-plane calls (listing, folder
// creation, deletion) go through a retrying HTTP client; file transfers use
// a plain client because a failed transfer is surfaced as a terminal Error,
// never retried automatically.
type Client struct {
	baseURL    string
	token      string
	uploadHTTP *http.Client
	apiHTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		uploadHTTP: tool.UploadHttpClient,
		apiHTTP:    tool.NewAPIHTTPClient(),
	}
}

// UploadFile streams one local file to the server as a multipart request,
// reporting progress through the callback. Satisfies UploadFunc.
func (c *Client) UploadFile(ctx context.Context, t *types.PendingTransfer, progress func(percent int)) error {
	file, err := os.Open(t.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	// Pipe the multipart body so the file streams straight from disk into
	// the request without being buffered whole.
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		// folderPath travels ahead of the file part so the server knows the
		// destination before the body arrives.
		if err := writer.WriteField("folderPath", t.DestinationFolder); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := writer.CreateFormFile("files", t.DisplayName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		body := newProgressReader(file, info.Size(), progress)
		if _, err := io.Copy(part, body); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", pr)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.uploadHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send upload request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("upload request failed: %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upload response: %w", err)
	}
	var result types.UploadResponse
	if err := sonic.Unmarshal(payload, &result); err != nil {
		return fmt.Errorf("failed to parse upload response: %w", err)
	}
	// The server isolates per-file failures inside a 200 response; a
	// rejection of this file still counts as a failed transfer.
	for _, e := range result.Errors {
		if e.Name == t.DisplayName {
			return fmt.Errorf("server rejected file: %s", e.Error)
		}
	}
	if len(result.Files) == 0 {
		return fmt.Errorf("server accepted no files")
	}
	return nil
}

// ListFolder fetches the listing for a folder path.
func (c *Client) ListFolder(ctx context.Context, folderPath string) (*types.FolderListing, error) {
	var listing types.FolderListing
	if err := c.getJSON(ctx, "/api/folders?path="+url.QueryEscape(folderPath), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// CreateFolder creates a folder on the server, idempotently.
func (c *Client) CreateFolder(ctx context.Context, parentPath, name string) (string, error) {
	var out types.CreateFolderResponse
	body := types.CreateFolderRequest{Name: name, ParentPath: parentPath}
	if err := c.doJSON(ctx, http.MethodPost, "/api/folders", body, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// DeleteFile removes one file on the server.
func (c *Client) DeleteFile(ctx context.Context, filePath string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/files", types.DeleteFileRequest{FilePath: filePath}, nil)
}

// DeleteMany removes an explicit set of files, returning per-target outcomes.
func (c *Client) DeleteMany(ctx context.Context, filePaths []string) (*types.BulkDeleteResponse, error) {
	var out types.BulkDeleteResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/api/files/bulk", types.BulkDeleteRequest{FilePaths: filePaths}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAll clears a folder on the server, returning per-file outcomes.
func (c *Client) DeleteAll(ctx context.Context, folderPath string) (*types.DeleteAllResponse, error) {
	var out types.DeleteAllResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/api/files/all", types.DeleteAllRequest{FolderPath: folderPath}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.apiHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, string(payload))
	}
	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
