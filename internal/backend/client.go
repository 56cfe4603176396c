package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/rs/zerolog"
)

// Client talks to the external review service. The service owns all job
// state; this client only submits content and reads status.
type Client struct {
	cfg         *config.Config
	httpClient  *http.Client
	authManager *AuthManager
	log         zerolog.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
		authManager: NewAuthManager(cfg),
		log:         logger.Get(),
	}
}

// SubmitAck is the canonical result of a successful submission.
type SubmitAck struct {
	ReviewID string
	Filename string
}

// BackendError carries a message the backend chose for the user, e.g. a
// rejection of the content itself. It is safe to show verbatim.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e BackendError) Error() string {
	return fmt.Sprintf("backend rejected request (HTTP %d): %s", e.StatusCode, e.Message)
}

// SubmitFile forwards an uploaded document as multipart/form-data and
// returns the backend-issued review id unchanged.
func (c *Client) SubmitFile(ctx context.Context, filename, contentType string, file io.Reader) (*SubmitAck, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file into request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BackendURL(c.cfg.Backend.UploadEndpoint), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.Info().Str("filename", filename).Msg("Forwarding file to backend")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return c.normalizeSubmitAck(raw)
}

// SubmitText forwards pasted text as JSON.
func (c *Client) SubmitText(ctx context.Context, content, title string) (*SubmitAck, error) {
	payload := model.TextReviewRequest{
		TextContent: content,
		Title:       title,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal text payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BackendURL(c.cfg.Backend.TextEndpoint), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Info().Int("length", len(content)).Msg("Forwarding text content to backend")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return c.normalizeSubmitAck(raw)
}

// GetStatus fetches the current state of a review job.
func (c *Client) GetStatus(ctx context.Context, reviewID string) (*model.Review, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BackendURL(c.cfg.Backend.ReviewEndpoint)+"/"+url.PathEscape(reviewID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return c.normalizeStatus(raw)
}

// ListReviews fetches the review history page from the backend.
func (c *Client) ListReviews(ctx context.Context, limit, skip int) (*model.ReviewListResponse, error) {
	u := c.cfg.BackendURL(c.cfg.Backend.ListEndpoint) +
		"?limit=" + strconv.Itoa(limit) + "&skip=" + strconv.Itoa(skip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var list model.ReviewListResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode review list: %w", err)
	}
	return &list, nil
}

// DeleteReview removes a review and its stored content on the backend.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.cfg.BackendURL(c.cfg.Backend.ListEndpoint)+"/"+url.PathEscape(reviewID), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	_, err = c.do(req)
	return err
}

// do sends the request and maps the response status to the error
// taxonomy: 2xx returns the body, 4xx surfaces the backend's message,
// everything else is a backend availability failure.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.authManager.Enabled() {
		token, err := c.authManager.GetToken(req.Context())
		if err != nil {
			return nil, errors.NewRetryableError(err, "failed to get auth token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewRetryableError(err, "backend request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.ErrReviewNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		// Token may have expired, caller retry will refresh it.
		c.authManager.Invalidate()
		return nil, errors.NewRetryableError(fmt.Errorf("unauthorized"), "backend authentication failed")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, BackendError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body),
		}
	default:
		c.log.Error().Int("status", resp.StatusCode).Msg("Backend returned server error")
		return nil, fmt.Errorf("%w: HTTP %d", errors.ErrBackendUnavailable, resp.StatusCode)
	}
}

func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "Backend rejected the request"
}
