package ports

// Regressor is a loaded model. It is treated as a black box.
type Regressor interface {
	// FeatureNames is the ordered column list the model was fit on.
	FeatureNames() []string

	// Predict scores one row laid out in FeatureNames order.
	Predict(row []float64) (float64, error)
}

// ModelLoader turns a downloaded artifact into a Regressor.
type ModelLoader interface {
	Load(path string) (Regressor, error)
}
