package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"ct-price-predictor/internal/adapters/primary/http/dto"
)

func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewOptionsResponse())
}

func (h *Handler) CreatePrediction(c *gin.Context) {
	var req dto.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictionSvc.Predict(c.Request.Context(), req.ToDomain())
	if err != nil {
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("create prediction failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(prediction))
}
