package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ct-price-predictor/internal/core/ports/output"
)

// MockModelRetriever is a mock of ModelRetriever.
type MockModelRetriever struct {
	mock.Mock
}

func (m *MockModelRetriever) Retrieve(ctx context.Context, modelID string) (string, error) {
	args := m.Called(ctx, modelID)
	return args.String(0), args.Error(1)
}

// MockModelLoader is a mock of ModelLoader.
type MockModelLoader struct {
	mock.Mock
}

func (m *MockModelLoader) Load(path string) (ports.Regressor, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Regressor), args.Error(1)
}

// MockRegressor is a mock of Regressor.
type MockRegressor struct {
	mock.Mock
}

func (m *MockRegressor) FeatureNames() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockRegressor) Predict(row []float64) (float64, error) {
	args := m.Called(row)
	return args.Get(0).(float64), args.Error(1)
}
