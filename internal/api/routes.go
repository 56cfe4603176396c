package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// Relay API consumed by the browser client
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/upload", handler.UploadFile)
		apiGroup.POST("/review-text", handler.ReviewText)
		apiGroup.GET("/reviews", handler.GetReviews)
		apiGroup.DELETE("/reviews/:reviewId", handler.DeleteReview)

		apiGroup.POST("/upload/initiate", handler.InitiateUpload)
		apiGroup.GET("/upload/status/:uploadId", handler.UploadStatus)
	}

	// Status proxy used by the polling page
	router.GET("/review/status/:reviewId", handler.GetReviewStatus)
}
