package web

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/DEFRA/content-reviewer-frontend/internal/export"
	"github.com/DEFRA/content-reviewer-frontend/internal/model"
	"github.com/DEFRA/content-reviewer-frontend/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	pdfContentType  = "application/pdf"
	wordContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) ExportPDF(c *gin.Context) {
	h.export(c, "pdf", pdfContentType, export.PDF)
}

func (h *Handler) ExportWord(c *gin.Context) {
	h.export(c, "docx", wordContentType, export.Word)
}

func (h *Handler) ExportExcel(c *gin.Context) {
	h.export(c, "xlsx", xlsxContentType, export.Excel)
}

// export fetches the review and streams it through the given renderer.
// An incomplete review redirects to the results page, which shows the
// pending placeholder instead of erroring.
func (h *Handler) export(c *gin.Context, ext, contentType string, render func(*export.Document) ([]byte, error)) {
	reviewID := c.Param("id")

	review, err := h.backend.GetStatus(c.Request.Context(), reviewID)
	if err != nil {
		if stderrors.Is(err, errors.ErrReviewNotFound) {
			h.renderError(c, http.StatusNotFound, "Review not found",
				"No review exists with this id. It may have been deleted.")
			return
		}
		h.log.Error().Err(err).Str("review_id", reviewID).Msg("Failed to fetch review for export")
		h.renderError(c, http.StatusBadGateway, "Export failed",
			"Unable to load review results for export. Please try again later.")
		return
	}

	if review.Status != model.ReviewStatusCompleted {
		c.Redirect(http.StatusSeeOther, "/review/results/"+reviewID)
		return
	}

	data, err := render(export.FromReview(review))
	if err != nil {
		h.log.Error().Err(err).Str("review_id", reviewID).Str("format", ext).Msg("Export rendering failed")
		h.renderError(c, http.StatusInternalServerError, "Export failed",
			"Something went wrong while generating the download. Please try again.")
		return
	}

	filename := fmt.Sprintf("review-results-%s.%s", reviewID, ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
