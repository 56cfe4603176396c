package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every embedded page template.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.SetHTMLTemplate(Templates())

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(staticSub))

	router.GET("/", handler.Home)

	review := router.Group("/review")
	{
		review.GET("/status-poller/:reviewId", handler.StatusPoller)
		review.GET("/results/:id", handler.Results)
		review.GET("/history", handler.History)
		review.POST("/history/:reviewId/delete", handler.DeleteFromHistory)

		review.GET("/export/:id/pdf", handler.ExportPDF)
		review.GET("/export/:id/word", handler.ExportWord)
		review.GET("/export/:id/excel", handler.ExportExcel)
	}
}
