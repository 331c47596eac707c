package dto

import (
	"time"

	"ct-price-predictor/internal/core/domain"
)

// ============================================================================
// Prediction DTOs
// ============================================================================

// PredictionRequest is bound from both the JSON API and the HTML form.
type PredictionRequest struct {
	AssessedValue float64 `json:"assessed_value" form:"assessed_value" binding:"required,min=1000"`
	SaleDate      string  `json:"sale_date" form:"sale_date"`
	PropertyType  string  `json:"property_type" form:"property_type" binding:"required"`
	Town          string  `json:"town" form:"town" binding:"required"`
	Model         string  `json:"model" form:"model" binding:"required"`
}

func (r PredictionRequest) ToDomain() domain.PredictionRequest {
	saleDate := r.SaleDate
	if saleDate == "" {
		saleDate = domain.DefaultSaleDate
	}
	return domain.PredictionRequest{
		AssessedValue: r.AssessedValue,
		SaleDate:      saleDate,
		PropertyType:  r.PropertyType,
		Town:          r.Town,
		Model:         domain.ModelChoice(r.Model),
	}
}

type PredictionResponse struct {
	Model       string             `json:"model"`
	Price       float64            `json:"price"`
	Formatted   string             `json:"formatted"`
	Features    map[string]float64 `json:"features"`
	LatencyMS   int64              `json:"latency_ms"`
	PredictedAt time.Time          `json:"predicted_at"`
}

func ToPredictionResponse(p *domain.Prediction) PredictionResponse {
	return PredictionResponse{
		Model:       string(p.Model),
		Price:       p.Price,
		Formatted:   FormatPrice(p.Price),
		Features:    p.Features,
		LatencyMS:   p.Latency.Milliseconds(),
		PredictedAt: p.Predicted,
	}
}

type OptionsResponse struct {
	PropertyTypes    []string `json:"property_types"`
	Towns            []string `json:"towns"`
	Models           []string `json:"models"`
	MinAssessedValue int      `json:"min_assessed_value"`
	DefaultSaleDate  string   `json:"default_sale_date"`
}

func NewOptionsResponse() OptionsResponse {
	models := make([]string, 0, len(domain.ModelChoices))
	for _, m := range domain.ModelChoices {
		models = append(models, string(m))
	}
	return OptionsResponse{
		PropertyTypes:    domain.PropertyTypes,
		Towns:            domain.Towns,
		Models:           models,
		MinAssessedValue: domain.MinAssessedValue,
		DefaultSaleDate:  domain.DefaultSaleDate,
	}
}
