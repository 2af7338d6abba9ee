package tool

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

var (
	DefaultTimeout = 30 * time.Second
	// UploadHttpClient carries file bodies. No overall timeout: a 500 MiB
	// video over a slow link legitimately takes longer than any sane fixed
	// deadline, and the scheduler deliberately has no timeout policy.
	UploadHttpClient *http.Client
)

func init() {
	UploadHttpClient = NewUploadHTTPClient()
}

// NewUploadHTTPClient creates the HTTP client used for file transfers.
// Transfers are never retried automatically, so this is a plain client.
func NewUploadHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// NewAPIHTTPClient creates the client for control-plane calls (listing,
// folder creation, deletion). These are small idempotent-ish JSON requests,
// so transient network errors get a bounded retry.
func NewAPIHTTPClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = DefaultTimeout
	rc.Logger = nil
	return rc.StandardClient()
}
