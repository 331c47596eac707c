package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"ct-price-predictor/internal/core/domain"
	"ct-price-predictor/internal/core/ports/output"
)

// PredictionService runs the retrieve, load, build, reindex, predict pipeline
// for one request. It keeps no state between calls beyond what the retriever
// memoizes.
type PredictionService struct {
	models    *ModelTable
	retriever ports.ModelRetriever
	loader    ports.ModelLoader
	now       func() time.Time
}

func NewPredictionService(models *ModelTable, retriever ports.ModelRetriever, loader ports.ModelLoader) *PredictionService {
	return &PredictionService{
		models:    models,
		retriever: retriever,
		loader:    loader,
		now:       time.Now,
	}
}

// Predict returns the model's price for req. Failures are *domain.RetrievalError
// when the artifact could not be fetched, *domain.PredictionError for anything
// after that, or a validation error when req itself is invalid.
func (s *PredictionService) Predict(ctx context.Context, req domain.PredictionRequest) (*domain.Prediction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	modelID, err := s.models.Resolve(req.Model)
	if err != nil {
		return nil, err
	}

	// Reject a bad date before paying for a download.
	if _, err := ParseSaleDate(req.SaleDate); err != nil {
		return nil, err
	}

	start := s.now()
	logger := log.WithFields(log.Fields{
		"model":    req.Model,
		"model_id": modelID,
		"town":     req.Town,
	})

	path, err := s.retriever.Retrieve(ctx, modelID)
	if err != nil {
		logger.WithError(err).Warn("model download failed")
		return nil, &domain.RetrievalError{ModelID: modelID, Cause: unwrapRetrieval(err)}
	}

	price, features, err := s.score(path, req, logger)
	if err != nil {
		logger.WithError(err).Warn("prediction failed")
		return nil, &domain.PredictionError{Cause: err}
	}

	latency := s.now().Sub(start)
	logger.WithFields(log.Fields{
		"price":      price,
		"latency_ms": latency.Milliseconds(),
	}).Info("prediction completed")

	return &domain.Prediction{
		Model:     req.Model,
		ModelID:   modelID,
		Price:     price,
		Features:  features,
		Latency:   latency,
		Predicted: s.now(),
	}, nil
}

// Evaluate is Predict folded into a single result for the form.
func (s *PredictionService) Evaluate(ctx context.Context, req domain.PredictionRequest) domain.PredictionResult {
	p, err := s.Predict(ctx, req)
	return domain.NewPredictionResult(req.Model, p, err)
}

func (s *PredictionService) score(path string, req domain.PredictionRequest, logger *log.Entry) (float64, map[string]float64, error) {
	model, err := s.loader.Load(path)
	if err != nil {
		return 0, nil, err
	}

	row, err := BuildFeatures(req.SaleDate, req.AssessedValue, req.PropertyType, req.Town)
	if err != nil {
		return 0, nil, err
	}

	columns := model.FeatureNames()
	if len(columns) == 0 {
		return 0, nil, fmt.Errorf("%w: model declares no feature names", domain.ErrSchemaMismatch)
	}
	aligned := row.Reindex(columns)
	warnDroppedIndicators(logger, row, aligned)

	price, err := model.Predict(aligned.Values())
	if err != nil {
		return 0, nil, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, nil, fmt.Errorf("model returned non-finite value %v", price)
	}
	return price, aligned.Map(), nil
}

// warnDroppedIndicators flags a request whose town or property type indicator
// is not a column of the model. The prediction still runs with all zeros, which
// is usually a category spelling mismatch.
func warnDroppedIndicators(logger *log.Entry, built, aligned domain.FeatureRow) {
	for _, c := range built.Columns() {
		if aligned.Has(c) || !isIndicator(c) {
			continue
		}
		logger.WithField("column", c).Warn("model does not declare built feature column")
	}
}

// unwrapRetrieval strips a retriever's own RetrievalError so the message is not
// prefixed twice.
func unwrapRetrieval(err error) error {
	var re *domain.RetrievalError
	if errors.As(err, &re) {
		return re.Cause
	}
	return err
}

func isIndicator(column string) bool {
	return strings.HasPrefix(column, domain.TownPrefix) || strings.HasPrefix(column, domain.PropTypePrefix)
}
