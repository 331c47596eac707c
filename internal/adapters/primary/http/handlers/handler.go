package handlers

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"

	"ct-price-predictor/internal/core/services"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	predictionSvc *services.PredictionService
}

func New(predictionSvc *services.PredictionService) *Handler {
	return &Handler{predictionSvc: predictionSvc}
}

// RegisterRoutes mounts the JSON API.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/options", h.GetOptions)
	r.POST("/predictions", h.CreatePrediction)
}

// RegisterPages mounts the HTML form at the engine root.
func (h *Handler) RegisterPages(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"selected": func(a, b string) bool { return a == b },
	}).ParseFS(templateFS, "templates/*.html")))

	r.GET("/", h.ShowForm)
	r.POST("/", h.SubmitForm)
}
