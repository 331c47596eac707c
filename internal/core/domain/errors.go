package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Request Validation Errors
// ============================================================================

var (
	ErrMalformedInput       = errors.New("malformed input")
	ErrInvalidAssessedValue = errors.New("assessed value must be at least 1000")
	ErrUnknownTown          = errors.New("unknown town")
	ErrUnknownPropertyType  = errors.New("unknown property type")
	ErrUnknownModel         = errors.New("unknown model choice")
)

// ============================================================================
// Pipeline Errors
// ============================================================================

var (
	ErrRetrieval       = errors.New("download failed")
	ErrPrediction      = errors.New("prediction failed")
	ErrCorruptArtifact = errors.New("corrupt model artifact")
	ErrIncompatible    = errors.New("incompatible model artifact")
	ErrSchemaMismatch  = errors.New("feature row does not match model schema")
)

// RetrievalError reports a failed artifact fetch. Cause is shown to the user.
type RetrievalError struct {
	ModelID string
	Cause   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("download failed: %v", e.Cause)
}

func (e *RetrievalError) Unwrap() []error { return []error{ErrRetrieval, e.Cause} }

// PredictionError covers everything after a successful retrieval: loading,
// schema alignment and the model call itself.
type PredictionError struct {
	Cause error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Cause)
}

func (e *PredictionError) Unwrap() []error { return []error{ErrPrediction, e.Cause} }
