package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	MinAssessedValue = 1000
	DefaultSaleDate  = "2022-01-01"
)

// PredictionRequest is one form submission.
type PredictionRequest struct {
	AssessedValue float64
	SaleDate      string
	PropertyType  string
	Town          string
	Model         ModelChoice
}

// Validate checks the enumerated fields and the assessed value floor. The
// sale date is parsed later by the feature builder.
func (r PredictionRequest) Validate() error {
	v := r.AssessedValue
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinAssessedValue {
		return ErrInvalidAssessedValue
	}
	if !IsKnownPropertyType(r.PropertyType) {
		return fmt.Errorf("%w: %q", ErrUnknownPropertyType, r.PropertyType)
	}
	if !IsKnownTown(r.Town) {
		return fmt.Errorf("%w: %q", ErrUnknownTown, r.Town)
	}
	if !IsKnownModel(r.Model) {
		return fmt.Errorf("%w: %q", ErrUnknownModel, r.Model)
	}
	return nil
}

// Prediction is a successful model output.
type Prediction struct {
	Model     ModelChoice
	ModelID   string
	Price     float64
	Features  map[string]float64
	Latency   time.Duration
	Predicted time.Time
}

// PredictionResult is what the form shows: exactly one of a price or an error.
type PredictionResult struct {
	Model ModelChoice
	Price float64
	Err   error
}

func (r PredictionResult) OK() bool { return r.Err == nil }

// Stage reports which half of the pipeline failed.
func (r PredictionResult) Stage() string {
	switch {
	case r.Err == nil:
		return ""
	case errors.Is(r.Err, ErrRetrieval):
		return "download"
	case errors.Is(r.Err, ErrPrediction):
		return "prediction"
	default:
		return "validation"
	}
}

// NewPredictionResult folds an orchestrator return into a result.
func NewPredictionResult(model ModelChoice, p *Prediction, err error) PredictionResult {
	if err != nil {
		return PredictionResult{Model: model, Err: err}
	}
	return PredictionResult{Model: model, Price: p.Price}
}
