// Package uploader integrates the direct-to-storage upload flow: the
// browser sends the file straight to the uploader service, which virus
// scans it and drops it into S3. This package initiates sessions, polls
// them to a terminal state and forwards accepted files to the backend.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/rs/zerolog"
)

// Client talks to the uploader service's session API.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logger.Get(),
	}
}

type initiateRequest struct {
	Redirect    string   `json:"redirect"`
	S3Bucket    string   `json:"s3Bucket"`
	S3Path      string   `json:"s3Path"`
	MimeTypes   []string `json:"mimeTypes"`
	MaxFileSize int64    `json:"maxFileSize"`
}

// Initiate opens an upload session. The response carries the uploadId
// used for status polling and the URL the browser posts the file to.
func (c *Client) Initiate(ctx context.Context, redirect string) (*model.UploadSession, error) {
	payload := initiateRequest{
		Redirect:    redirect,
		S3Bucket:    c.cfg.Uploader.S3Bucket,
		S3Path:      c.cfg.Uploader.S3Path,
		MimeTypes:   c.cfg.Upload.AllowedMimeTypes,
		MaxFileSize: c.cfg.Upload.MaxFileSize,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initiate payload: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.Uploader.URL, "/") + "/initiate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewRetryableError(err, "uploader initiate failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("uploader initiate returned status %d", resp.StatusCode)
	}

	var session model.UploadSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode initiate response: %w", err)
	}
	if session.UploadID == "" {
		return nil, fmt.Errorf("uploader initiate response missing uploadId")
	}
	session.UploadStatus = model.UploadStatusPending
	session.InitiatedAt = time.Now()

	c.log.Info().Str("upload_id", session.UploadID).Msg("Upload session initiated")
	return &session, nil
}

// Status fetches the current state of an upload session.
func (c *Client) Status(ctx context.Context, uploadID string) (*model.UploadSession, error) {
	endpoint := strings.TrimRight(c.cfg.Uploader.URL, "/") + "/status/" + url.PathEscape(uploadID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewRetryableError(err, "uploader status request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uploader status returned %d", resp.StatusCode)
	}

	var session model.UploadSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return &session, nil
}
