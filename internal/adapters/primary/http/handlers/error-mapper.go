package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ct-price-predictor/internal/core/domain"
)

func statusFor(err error) int {
	switch {
	// Bad request / validation errors
	case errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, domain.ErrInvalidAssessedValue),
		errors.Is(err, domain.ErrUnknownTown),
		errors.Is(err, domain.ErrUnknownPropertyType),
		errors.Is(err, domain.ErrUnknownModel):
		return http.StatusBadRequest

	// Upstream file host errors
	case errors.Is(err, domain.ErrRetrieval):
		return http.StatusBadGateway

	// Model load / prediction errors
	case errors.Is(err, domain.ErrPrediction):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

func mapDomainError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
