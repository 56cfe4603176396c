package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{
			BaseURL:        baseURL,
			UploadEndpoint: "/api/upload",
			TextEndpoint:   "/api/review-text",
			ReviewEndpoint: "/api/review",
			ListEndpoint:   "/api/reviews",
			Timeout:        5 * time.Second,
		},
	}
}

func TestSubmitTextReturnsReviewID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/review-text", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.TextReviewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "some content to review", req.TextContent)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"reviewId": "abc123",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	ack, err := client.SubmitText(context.Background(), "some content to review", "")

	require.NoError(t, err)
	assert.Equal(t, "abc123", ack.ReviewID)
}

func TestSubmitFileSendsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/upload", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 test", string(content))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  true,
			"reviewId": "abc123",
			"filename": "report.pdf",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	ack, err := client.SubmitFile(context.Background(), "report.pdf", "application/pdf",
		strings.NewReader("%PDF-1.4 test"))

	require.NoError(t, err)
	assert.Equal(t, "abc123", ack.ReviewID)
	assert.Equal(t, "report.pdf", ack.Filename)
}

func TestSubmitSurfacesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Content could not be analysed",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.SubmitText(context.Background(), "some content to review", "")

	var be BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
	assert.Equal(t, "Content could not be analysed", be.Message)
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.SubmitText(context.Background(), "some content to review", "")

	assert.ErrorIs(t, err, errors.ErrBackendUnavailable)
}

func TestNetworkErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(testConfig(server.URL))
	_, err := client.SubmitText(context.Background(), "some content to review", "")

	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
}

func TestGetStatusNormalizesEnvelope(t *testing.T) {
	completed := time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/review/abc123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"reviewId":    "abc123",
				"status":      "completed",
				"filename":    "report.pdf",
				"createdAt":   completed.Add(-45 * time.Second).Format(time.RFC3339),
				"completedAt": completed.Format(time.RFC3339),
				"result": map[string]interface{}{
					"overallStatus": "pass",
					"sections": map[string]interface{}{
						"overallAssessment": "Reads well.",
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	review, err := client.GetStatus(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "abc123", review.ID)
	assert.Equal(t, model.ReviewStatusCompleted, review.Status)
	require.NotNil(t, review.Result)
	assert.Equal(t, "pass", review.Result.OverallStatus)
	assert.Equal(t, "Reads well.", review.Result.Sections.OverallAssessment)
	require.NotNil(t, review.CompletedAt)
	assert.True(t, review.CompletedAt.Equal(completed))
}

func TestGetStatusRepeatableForTerminalJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"reviewId": "abc123",
				"status":   "completed",
				"result":   map[string]interface{}{"overallStatus": "pass"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	first, err := client.GetStatus(context.Background(), "abc123")
	require.NoError(t, err)
	second, err := client.GetStatus(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIDAliasIsContractViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"jobId":   "abc123",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.SubmitText(context.Background(), "some content to review", "")

	assert.ErrorIs(t, err, errors.ErrBackendContract)
}

func TestStatusNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.GetStatus(context.Background(), "missing")

	assert.ErrorIs(t, err, errors.ErrReviewNotFound)
}

func TestListReviews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/reviews", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("skip"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"reviews": []map[string]interface{}{
				{"reviewId": "abc123", "status": "completed", "uploadedAt": "2026-02-03T10:30:00Z"},
			},
			"pagination": map[string]int{"limit": 25, "skip": 50, "total": 51},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	list, err := client.ListReviews(context.Background(), 25, 50)

	require.NoError(t, err)
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, "abc123", list.Reviews[0].ID)
	assert.Equal(t, 51, list.Pagination.Total)
}

func TestDeleteReview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/reviews/abc123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	assert.NoError(t, client.DeleteReview(context.Background(), "abc123"))
}
