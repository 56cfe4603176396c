package web

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/DEFRA/content-reviewer-frontend/internal/api"
	"github.com/DEFRA/content-reviewer-frontend/internal/backend"
	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/export"
	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/internal/poller"
	"github.com/DEFRA/content-reviewer-frontend/internal/session"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	backend *backend.Client
	poller  *poller.Poller
	flashes *session.Flashes
	cfg     *config.Config
	log     zerolog.Logger
}

func NewHandler(backendClient *backend.Client, p *poller.Poller, flashes *session.Flashes, cfg *config.Config) *Handler {
	return &Handler{
		backend: backendClient,
		poller:  p,
		flashes: flashes,
		cfg:     cfg,
		log:     logger.Get(),
	}
}

// Home renders the submission form.
func (h *Handler) Home(c *gin.Context) {
	data := gin.H{
		"PageTitle":     "Submit content for review",
		"MaxFileSizeMB": h.cfg.Upload.MaxFileSize / 1024 / 1024,
		"MinTextLength": h.cfg.Upload.MinTextLength,
		"MaxTextLength": h.cfg.Upload.MaxTextLength,
	}
	if flash, ok := h.flashes.Pop(c.Request.Context(), api.SessionID(c)); ok {
		data["Flash"] = flash
	}
	c.HTML(http.StatusOK, "home.html", data)
}

// StatusPoller runs one transition of the polling state machine per
// page load. The page refreshes itself carrying the attempt counter, so
// polls for a given review are strictly sequential within one tab.
func (h *Handler) StatusPoller(c *gin.Context) {
	reviewID := c.Param("reviewId")
	if reviewID == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	attempt, err := strconv.Atoi(c.DefaultQuery("attempt", "1"))
	if err != nil || attempt < 1 {
		attempt = 1
	}

	state := poller.StateUnknown
	var review *model.Review
	review, err = h.backend.GetStatus(c.Request.Context(), reviewID)
	if err != nil {
		if stderrors.Is(err, errors.ErrReviewNotFound) {
			h.renderError(c, http.StatusNotFound, "Review not found",
				"No review exists with this id. It may have been deleted.")
			return
		}
		// A failed poll is not terminal, the next refresh retries it.
		h.log.Warn().Err(err).Str("review_id", reviewID).Int("attempt", attempt).
			Msg("Status poll failed, page will retry")
	} else {
		switch review.Status {
		case model.ReviewStatusCompleted:
			state = poller.StateDone
		case model.ReviewStatusFailed:
			state = poller.StateFailed
		case model.ReviewStatusProcessing:
			state = poller.StatePending
		default:
			h.log.Warn().Str("status", string(review.Status)).Msg("Unrecognized review status, treating as processing")
		}
	}

	switch poller.Next(state, attempt, h.poller.MaxAttempts()) {
	case poller.StepCompleted:
		c.Redirect(http.StatusSeeOther, "/review/results/"+reviewID)
	case poller.StepFailed:
		reason := "The review could not be completed."
		if review != nil && review.Error != "" {
			reason = review.Error
		}
		c.HTML(http.StatusOK, "review_failed.html", gin.H{
			"PageTitle": "Review failed",
			"ReviewID":  reviewID,
			"Reason":    reason,
		})
	case poller.StepTimedOut:
		c.HTML(http.StatusOK, "review_timeout.html", gin.H{
			"PageTitle": "Review still running",
			"ReviewID":  reviewID,
		})
	default:
		progress := 0
		if review != nil {
			progress = review.Progress
		}
		// The Refresh header schedules the next poll only after this one
		// has rendered, keeping polls for a review strictly sequential.
		c.Header("Refresh", fmt.Sprintf("%d;url=/review/status-poller/%s?attempt=%d",
			int(h.poller.Interval().Seconds()), reviewID, attempt+1))
		c.HTML(http.StatusOK, "status_poller.html", gin.H{
			"PageTitle":   "Review in progress",
			"ReviewID":    reviewID,
			"Attempt":     attempt,
			"MaxAttempts": h.poller.MaxAttempts(),
			"Progress":    progress,
		})
	}
}

// Results renders the completed review, or a "still processing"
// placeholder when the page is opened before the job finishes.
func (h *Handler) Results(c *gin.Context) {
	reviewID := c.Param("id")

	review, err := h.backend.GetStatus(c.Request.Context(), reviewID)
	if err != nil {
		if stderrors.Is(err, errors.ErrReviewNotFound) {
			h.renderError(c, http.StatusNotFound, "Review not found",
				"No review exists with this id. It may have been deleted.")
			return
		}
		h.log.Error().Err(err).Str("review_id", reviewID).Msg("Failed to fetch review results")
		h.renderError(c, http.StatusBadGateway, "Error loading results",
			"Unable to load review results. The review service may be unavailable. Please try again later.")
		return
	}

	switch review.Status {
	case model.ReviewStatusCompleted:
		c.HTML(http.StatusOK, "results.html", gin.H{
			"PageTitle": "Review results",
			"ReviewID":  reviewID,
			"Results":   export.FromReview(review),
		})
	case model.ReviewStatusFailed:
		reason := "The review could not be completed."
		if review.Error != "" {
			reason = review.Error
		}
		c.HTML(http.StatusOK, "review_failed.html", gin.H{
			"PageTitle": "Review failed",
			"ReviewID":  reviewID,
			"Reason":    reason,
		})
	default:
		c.HTML(http.StatusOK, "results_pending.html", gin.H{
			"PageTitle": "Review in progress",
			"ReviewID":  reviewID,
			"Progress":  review.Progress,
		})
	}
}

// History lists past reviews. A backend failure degrades to an empty
// list with an inline error rather than a dead-end page.
func (h *Handler) History(c *gin.Context) {
	data := gin.H{
		"PageTitle": "Review history",
	}
	if flash, ok := h.flashes.Pop(c.Request.Context(), api.SessionID(c)); ok {
		data["Flash"] = flash
	}

	list, err := h.backend.ListReviews(c.Request.Context(), 100, 0)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch review history")
		data["Reviews"] = []model.ReviewListItem{}
		data["Error"] = "Unable to load review history. Please try again later."
		c.HTML(http.StatusOK, "history.html", data)
		return
	}

	data["Reviews"] = list.Reviews
	data["Count"] = len(list.Reviews)
	c.HTML(http.StatusOK, "history.html", data)
}

// DeleteFromHistory deletes one review and redirects back with a flash.
func (h *Handler) DeleteFromHistory(c *gin.Context) {
	reviewID := c.Param("reviewId")

	flash := session.Flash{Kind: "success", Message: "Review deleted"}
	if err := h.backend.DeleteReview(c.Request.Context(), reviewID); err != nil {
		h.log.Error().Err(err).Str("review_id", reviewID).Msg("Failed to delete review")
		flash = session.Flash{Kind: "error", Message: "Could not delete the review. Please try again later."}
	}
	h.flashes.Set(c.Request.Context(), api.SessionID(c), flash)

	c.Redirect(http.StatusSeeOther, "/review/history")
}

func (h *Handler) renderError(c *gin.Context, status int, heading, message string) {
	c.HTML(status, "error.html", gin.H{
		"PageTitle": heading,
		"Heading":   heading,
		"Message":   message,
	})
}
