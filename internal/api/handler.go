package api

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DEFRA/content-reviewer-frontend/internal/backend"
	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/form"
	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/internal/uploader"
	"github.com/DEFRA/content-reviewer-frontend/internal/validate"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	backend   *backend.Client
	uploads   *uploader.Service
	validator *validate.Validator
	cfg       *config.Config
	log       zerolog.Logger
}

func NewHandler(
	backendClient *backend.Client,
	uploads *uploader.Service,
	validator *validate.Validator,
	cfg *config.Config,
) *Handler {
	return &Handler{
		backend:   backendClient,
		uploads:   uploads,
		validator: validator,
		cfg:       cfg,
		log:       logger.Get(),
	}
}

// UploadFile accepts a multipart document, re-validates it server-side
// and forwards it to the backend review service.
func (h *Handler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	hasFile := err == nil && fileHeader != nil
	hasText := strings.TrimSpace(c.PostForm("textContent")) != ""

	if err := form.CheckSubmission(hasFile, hasText); err != nil {
		message := "No file provided"
		if stderrors.Is(err, errors.ErrBothInputs) {
			message = "Please either upload a file or enter text content, not both."
		}
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Message: message})
		return
	}

	if err := h.validator.ValidateFile(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size); err != nil {
		h.respondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Success: false, Message: "Internal server error"})
		return
	}
	defer file.Close()

	h.log.Info().
		Str("filename", fileHeader.Filename).
		Int64("size", fileHeader.Size).
		Msg("Uploading file to backend")

	ack, err := h.backend.SubmitFile(c.Request.Context(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := ack.Filename
	if filename == "" {
		filename = fileHeader.Filename
	}

	h.log.Info().Str("review_id", ack.ReviewID).Msg("File uploaded successfully")
	c.JSON(http.StatusOK, model.SubmitResponse{
		Success:  true,
		ReviewID: ack.ReviewID,
		Filename: filename,
		Message:  "File uploaded successfully",
	})
}

// ReviewText accepts pasted text content and forwards it to the backend.
func (h *Handler) ReviewText(c *gin.Context) {
	var req model.TextReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.TextContent) == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Message: "No text content provided"})
		return
	}

	if err := h.validator.ValidateText(req.TextContent); err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Info().Int("length", len(req.TextContent)).Msg("Submitting text content to backend")

	ack, err := h.backend.SubmitText(c.Request.Context(), req.TextContent, req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Info().Str("review_id", ack.ReviewID).Msg("Text content submitted successfully")
	c.JSON(http.StatusOK, model.SubmitResponse{
		Success:  true,
		ReviewID: ack.ReviewID,
		Message:  "Text content submitted successfully",
	})
}

// GetReviews proxies the backend's review history listing.
func (h *Handler) GetReviews(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	list, err := h.backend.ListReviews(c.Request.Context(), limit, skip)
	if err != nil {
		h.respondError(c, err)
		return
	}

	list.Success = true
	c.JSON(http.StatusOK, list)
}

// DeleteReview forwards a delete to the backend.
func (h *Handler) DeleteReview(c *gin.Context) {
	reviewID := c.Param("reviewId")

	if err := h.backend.DeleteReview(c.Request.Context(), reviewID); err != nil {
		h.respondError(c, err)
		return
	}

	h.log.Info().Str("review_id", reviewID).Msg("Review deleted")
	c.JSON(http.StatusOK, model.DeleteResponse{
		Success:  true,
		ReviewID: reviewID,
		Message:  "Review deleted successfully",
	})
}

// GetReviewStatus proxies one status observation for the given review.
func (h *Handler) GetReviewStatus(c *gin.Context) {
	reviewID := c.Param("reviewId")

	review, err := h.backend.GetStatus(c.Request.Context(), reviewID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{
		ReviewID: review.ID,
		Status:   review.Status,
		Progress: review.Progress,
		Result:   review.Result,
		Error:    review.Error,
	})
}

// InitiateUpload opens a direct-to-storage upload session.
func (h *Handler) InitiateUpload(c *gin.Context) {
	var req struct {
		Redirect string `json:"redirect"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	session, err := h.uploads.Initiate(c.Request.Context(), req.Redirect)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// UploadStatus reports the state of an upload session. Once the
// scanner marks the session ready the scanned file is fetched from
// storage and forwarded to the backend, and the response carries the
// review id instead of the session.
func (h *Handler) UploadStatus(c *gin.Context) {
	uploadID := c.Param("uploadId")

	session, err := h.uploads.Status(c.Request.Context(), uploadID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if session.UploadStatus == model.UploadStatusReady {
		ack, err := h.uploads.AwaitAndForward(c.Request.Context(), uploadID)
		if err != nil {
			h.respondError(c, err)
			return
		}

		filename := ack.Filename
		if filename == "" {
			filename = session.Filename
		}

		h.log.Info().Str("upload_id", uploadID).Str("review_id", ack.ReviewID).
			Msg("Scanned upload submitted for review")
		c.JSON(http.StatusOK, model.SubmitResponse{
			Success:  true,
			ReviewID: ack.ReviewID,
			Filename: filename,
			Message:  "File uploaded successfully",
		})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

// respondError maps the failure taxonomy onto the normalized
// {success:false, message} shape. Internal detail stays in the log.
func (h *Handler) respondError(c *gin.Context, err error) {
	var ve errors.ValidationError
	if stderrors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Message: ve.Message})
		return
	}

	var be backend.BackendError
	if stderrors.As(err, &be) {
		status := be.StatusCode
		if status < 400 || status >= 500 {
			status = http.StatusBadRequest
		}
		c.JSON(status, model.ErrorResponse{Success: false, Message: be.Message})
		return
	}

	switch {
	case stderrors.Is(err, errors.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Success: false, Message: "Review not found"})
	case stderrors.Is(err, errors.ErrUploadRejected):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Success: false, Message: err.Error()})
	case stderrors.Is(err, errors.ErrBackendContract):
		h.log.Error().Err(err).Msg("Backend contract violation")
		c.JSON(http.StatusBadGateway, model.ErrorResponse{Success: false,
			Message: "The review service returned an unexpected response. Please try again later."})
	case errors.IsRetryable(err), stderrors.Is(err, errors.ErrBackendUnavailable):
		h.log.Error().Err(err).Msg("Backend unavailable")
		c.JSON(http.StatusBadGateway, model.ErrorResponse{Success: false,
			Message: "The review service is currently unavailable. Please try again later."})
	default:
		h.log.Error().Err(err).Msg("Unexpected error handling request")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Success: false, Message: "Internal server error"})
	}
}
