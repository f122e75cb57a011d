package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client wraps HTTP operations shared by the catalog client and the
// file downloader.
//
// A single Client holds one connection pool, so API lookups and downloads
// reuse connections. Client provides:
//   - Configured User-Agent header
//   - Per-request timeouts for API calls and for downloads
//   - File download with progress tracking, reporting the HTTP status
//
// Example usage:
//
//	client := NewClient("modfetch", 60*time.Second, 10*time.Minute)
//
//	// Fetch a JSON document
//	resp, err := client.Get(ctx, "https://api.curseforge.com/v1/mods/1", header)
//
//	// Download file with progress
//	status, err := client.DownloadFile(ctx, jarURL, "/mods/jei.jar", func(written, total int64) {
//	    fmt.Printf("%d/%d\n", written, total)
//	})
type Client struct {
	httpClient      *http.Client
	userAgent       string
	requestTimeout  time.Duration
	downloadTimeout time.Duration
}

// NewClient creates a new HTTP client.
//
// requestTimeout bounds Get calls and downloadTimeout bounds DownloadFile
// calls, body included. Zero disables the respective timeout.
func NewClient(userAgent string, requestTimeout, downloadTimeout time.Duration) *Client {
	return &Client{
		httpClient:      &http.Client{},
		userAgent:       userAgent,
		requestTimeout:  requestTimeout,
		downloadTimeout: downloadTimeout,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ProgressWriter wraps a writer to track download progress.
//
// Use this to monitor large downloads by providing an OnUpdate callback
// that receives the current bytes written and total expected bytes.
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header).
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the status and body.
//
// Unlike a plain status check, non-2xx responses are not errors here:
// the caller decides what a status means. An error is returned only when
// the request could not be made or the body could not be read.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// DownloadFile downloads a file to destPath and returns the HTTP status.
//
// The content is streamed to a temporary ".part" file next to destPath
// and renamed into place once complete, so an interrupted or rejected
// download never leaves a truncated file at destPath. A non-200 status is
// returned with a nil error and nothing written.
//
// Pass nil as onProgress to disable progress tracking.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int, error) {
	if c.downloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.downloadTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	partPath := destPath + ".part"
	file, err := os.Create(partPath)
	if err != nil {
		return resp.StatusCode, err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, copyErr := io.Copy(writer, resp.Body)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(partPath)
		if copyErr != nil {
			return resp.StatusCode, fmt.Errorf("writing %s: %w", destPath, copyErr)
		}
		return resp.StatusCode, closeErr
	}

	if err := os.Rename(partPath, destPath); err != nil {
		os.Remove(partPath)
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}
