package uploader

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DEFRA/content-reviewer-frontend/internal/backend"
	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/internal/poller"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instantClock struct{}

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// fakeStorage records downloads and deletes instead of talking to S3.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakeStorage(objects map[string]string) *fakeStorage {
	return &fakeStorage{objects: objects}
}

func (s *fakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.objects[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

// uploaderStub serves the session status endpoint, returning a scripted
// sequence of sessions, one per status call.
func uploaderStub(t *testing.T, sessions []model.UploadSession) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	var call int
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/status/"), "unexpected path %s", r.URL.Path)
		mu.Lock()
		session := sessions[call]
		if call < len(sessions)-1 {
			call++
		}
		mu.Unlock()
		json.NewEncoder(w).Encode(session)
	}))
}

func serviceUnderTest(t *testing.T, uploaderURL, backendURL string, store *fakeStorage) *Service {
	t.Helper()
	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL:        backendURL,
			UploadEndpoint: "/api/upload",
			Timeout:        5 * time.Second,
		},
		Uploader: config.UploaderConfig{
			URL:      uploaderURL,
			S3Bucket: "uploads",
			S3Path:   "scanned",
		},
		Poller: config.PollerConfig{Interval: time.Millisecond, MaxAttempts: 10},
	}

	p := poller.New(cfg.Poller).WithClock(instantClock{})
	return NewService(cfg, NewClient(cfg), store, backend.NewClient(cfg), p)
}

func TestAwaitAndForwardReadySession(t *testing.T) {
	sessions := []model.UploadSession{
		{UploadID: "up1", UploadStatus: model.UploadStatusPending},
		{UploadID: "up1", UploadStatus: model.UploadStatusPending},
		{
			UploadID:     "up1",
			UploadStatus: model.UploadStatusReady,
			Filename:     "report.pdf",
			ContentType:  "application/pdf",
			S3Key:        "scanned/up1/report.pdf",
		},
	}
	uploaderSrv := uploaderStub(t, sessions)
	defer uploaderSrv.Close()

	var forwarded string
	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)
		content, _ := io.ReadAll(file)
		forwarded = string(content)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "reviewId": "abc123"})
	}))
	defer backendSrv.Close()

	store := newFakeStorage(map[string]string{"scanned/up1/report.pdf": "%PDF-1.4 scanned"})
	svc := serviceUnderTest(t, uploaderSrv.URL, backendSrv.URL, store)

	ack, err := svc.AwaitAndForward(context.Background(), "up1")

	require.NoError(t, err)
	assert.Equal(t, "abc123", ack.ReviewID)
	assert.Equal(t, "%PDF-1.4 scanned", forwarded)
	assert.Equal(t, []string{"scanned/up1/report.pdf"}, store.deleted)
}

func TestAwaitAndForwardRejectedSession(t *testing.T) {
	sessions := []model.UploadSession{
		{UploadID: "up1", UploadStatus: model.UploadStatusPending},
		{UploadID: "up1", UploadStatus: model.UploadStatusRejected, Reason: "virus detected"},
	}
	uploaderSrv := uploaderStub(t, sessions)
	defer uploaderSrv.Close()

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for a rejected upload")
	}))
	defer backendSrv.Close()

	store := newFakeStorage(nil)
	svc := serviceUnderTest(t, uploaderSrv.URL, backendSrv.URL, store)

	_, err := svc.AwaitAndForward(context.Background(), "up1")

	require.ErrorIs(t, err, errors.ErrUploadRejected)
	assert.Contains(t, err.Error(), "virus detected")
	assert.Empty(t, store.deleted)
}

func TestAwaitAndForwardTimesOut(t *testing.T) {
	sessions := []model.UploadSession{
		{UploadID: "up1", UploadStatus: model.UploadStatusPending},
	}
	uploaderSrv := uploaderStub(t, sessions)
	defer uploaderSrv.Close()

	store := newFakeStorage(nil)
	svc := serviceUnderTest(t, uploaderSrv.URL, "http://localhost:0", store)

	_, err := svc.AwaitAndForward(context.Background(), "up1")

	assert.ErrorIs(t, err, errors.ErrPollTimeout)
}

func TestInitiateOpensSession(t *testing.T) {
	uploaderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/initiate", r.URL.Path)

		var req initiateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "/review/after-upload", req.Redirect)
		assert.Equal(t, "uploads", req.S3Bucket)

		json.NewEncoder(w).Encode(map[string]string{
			"uploadId":  "up1",
			"uploadUrl": "http://uploader/upload-and-scan/up1",
		})
	}))
	defer uploaderSrv.Close()

	store := newFakeStorage(nil)
	svc := serviceUnderTest(t, uploaderSrv.URL, "http://localhost:0", store)

	session, err := svc.Initiate(context.Background(), "/review/after-upload")

	require.NoError(t, err)
	assert.Equal(t, "up1", session.UploadID)
	assert.Equal(t, model.UploadStatusPending, session.UploadStatus)
	assert.False(t, session.InitiatedAt.IsZero())
}

func TestInitiateRequiresUploadID(t *testing.T) {
	uploaderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer uploaderSrv.Close()

	store := newFakeStorage(nil)
	svc := serviceUnderTest(t, uploaderSrv.URL, "http://localhost:0", store)

	_, err := svc.Initiate(context.Background(), "/review/after-upload")
	assert.Error(t, err)
}
