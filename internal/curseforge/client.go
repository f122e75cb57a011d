package curseforge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"

	"github.com/rs/zerolog"

	"github.com/handiism/modfetch/internal/curseforge/dto"
	"github.com/handiism/modfetch/internal/http"
	"github.com/handiism/modfetch/internal/model"
	"github.com/handiism/modfetch/internal/ratelimit"
)

// DefaultBaseURL is the public catalog API endpoint.
const DefaultBaseURL = "https://api.curseforge.com/v1"

// Client issues authenticated JSON requests against the catalog API.
//
// Every successful request is followed by an Acquire on the shared
// limiter, so the limiter paces the requests that come after it. The
// limiter is injected so several clients can share one budget.
type Client struct {
	http    *http.Client
	limiter *ratelimit.Limiter
	baseURL string
	header  nethttp.Header
	logger  zerolog.Logger
}

// NewClient creates a catalog client sending apiKey in the X-Api-Key header.
func NewClient(httpClient *http.Client, limiter *ratelimit.Limiter, baseURL, apiKey string, logger zerolog.Logger) *Client {
	header := nethttp.Header{}
	header.Set("X-Api-Key", apiKey)
	header.Set("Accept", "application/json")

	return &Client{
		http:    httpClient,
		limiter: limiter,
		baseURL: baseURL,
		header:  header,
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// GetJSON fetches baseURL+path and decodes the body into out.
//
// Returns *APIError for transport failures and non-2xx statuses, and
// *DecodeError when a 2xx body is not valid JSON.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	resp, err := c.http.Get(ctx, url, c.header)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn().Err(err).Str("url", url).Msg("Catalog request failed")
		return &APIError{URL: url, Err: err}
	}

	if !resp.OK() {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("url", url).
			Str("body", string(resp.Body)).
			Msg("Catalog returned an error")
		return &APIError{URL: url, Status: resp.StatusCode, Body: string(resp.Body)}
	}

	if err := c.limiter.Acquire(ctx); err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &DecodeError{URL: url, Err: err}
	}
	return nil
}

// GetMod looks up a project.
func (c *Client) GetMod(ctx context.Context, projectID int) (model.ProjectInfo, error) {
	path := fmt.Sprintf("/mods/%d", projectID)

	var resp dto.ModResponse
	if err := c.GetJSON(ctx, path, &resp); err != nil {
		return model.ProjectInfo{}, err
	}
	if resp.Data == nil {
		return model.ProjectInfo{}, &DecodeError{URL: c.baseURL + path, Err: errors.New("missing data")}
	}
	return resp.Data.ToProjectInfo(), nil
}

// GetModFile looks up one file of a project.
func (c *Client) GetModFile(ctx context.Context, projectID, fileID int) (model.FileInfo, error) {
	path := fmt.Sprintf("/mods/%d/files/%d", projectID, fileID)

	var resp dto.FileResponse
	if err := c.GetJSON(ctx, path, &resp); err != nil {
		return model.FileInfo{}, err
	}
	if resp.Data == nil {
		return model.FileInfo{}, &DecodeError{URL: c.baseURL + path, Err: errors.New("missing data")}
	}
	return resp.Data.ToFileInfo(), nil
}
