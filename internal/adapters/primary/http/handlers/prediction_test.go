package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ct-price-predictor/internal/core/domain"
	"ct-price-predictor/internal/core/services"
	"ct-price-predictor/internal/testutil"
)

func setupPredictionRouter() (*testutil.MockModelRetriever, *testutil.MockModelLoader, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	retriever := new(testutil.MockModelRetriever)
	loader := new(testutil.MockModelLoader)

	svc := services.NewPredictionService(services.NewModelTable(nil), retriever, loader)
	h := New(svc)
	r := gin.New()
	h.RegisterPages(r)
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	return retriever, loader, r
}

func stubModel(retriever *testutil.MockModelRetriever, loader *testutil.MockModelLoader, price float64) *testutil.MockRegressor {
	model := new(testutil.MockRegressor)
	retriever.On("Retrieve", mock.Anything, mock.Anything).Return("/tmp/model.json", nil)
	loader.On("Load", "/tmp/model.json").Return(model, nil)
	model.On("FeatureNames").Return([]string{"Assessed Value", "Year", "Town_Hartford"})
	model.On("Predict", mock.Anything).Return(price, nil)
	return model
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func predictionBody() map[string]interface{} {
	return map[string]interface{}{
		"assessed_value": 250000,
		"sale_date":      "2022-06-15",
		"property_type":  "Single Family",
		"town":           "Hartford",
		"model":          "XGBoost",
	}
}

func TestCreatePrediction(t *testing.T) {
	retriever, loader, r := setupPredictionRouter()
	model := stubModel(retriever, loader, 123456.78)

	w := postJSON(r, "/api/v1/predictions", predictionBody())
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "XGBoost", resp["model"])
	assert.Equal(t, "$123,456.78", resp["formatted"])
	assert.Equal(t, 123456.78, resp["price"])

	retriever.AssertCalled(t, "Retrieve", mock.Anything, domain.DefaultModelIDs[domain.ModelXGBoost])
	model.AssertCalled(t, "Predict", []float64{250000, 2022, 1})
}

func TestCreatePrediction_DefaultSaleDate(t *testing.T) {
	retriever, loader, r := setupPredictionRouter()
	model := stubModel(retriever, loader, 1)

	body := predictionBody()
	delete(body, "sale_date")
	w := postJSON(r, "/api/v1/predictions", body)

	assert.Equal(t, http.StatusOK, w.Code)
	model.AssertCalled(t, "Predict", []float64{250000, 2022, 1})
}

func TestCreatePrediction_BindingErrors(t *testing.T) {
	_, _, r := setupPredictionRouter()

	body := predictionBody()
	body["assessed_value"] = 500
	w := postJSON(r, "/api/v1/predictions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = predictionBody()
	delete(body, "town")
	w = postJSON(r, "/api/v1/predictions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePrediction_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		setup  func(*testutil.MockModelRetriever, *testutil.MockModelLoader)
		status int
		substr string
	}{
		{
			name:   "unknown town",
			mutate: func(b map[string]interface{}) { b["town"] = "Boston" },
			setup:  func(*testutil.MockModelRetriever, *testutil.MockModelLoader) {},
			status: http.StatusBadRequest,
			substr: "unknown town",
		},
		{
			name:   "malformed date",
			mutate: func(b map[string]interface{}) { b["sale_date"] = "15.06.2022" },
			setup:  func(*testutil.MockModelRetriever, *testutil.MockModelLoader) {},
			status: http.StatusBadRequest,
			substr: "malformed input",
		},
		{
			name:   "download failed",
			mutate: func(map[string]interface{}) {},
			setup: func(rt *testutil.MockModelRetriever, _ *testutil.MockModelLoader) {
				rt.On("Retrieve", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))
			},
			status: http.StatusBadGateway,
			substr: "download failed: connection refused",
		},
		{
			name:   "load failed",
			mutate: func(map[string]interface{}) {},
			setup: func(rt *testutil.MockModelRetriever, ld *testutil.MockModelLoader) {
				rt.On("Retrieve", mock.Anything, mock.Anything).Return("/tmp/m", nil)
				ld.On("Load", "/tmp/m").Return(nil, domain.ErrCorruptArtifact)
			},
			status: http.StatusUnprocessableEntity,
			substr: "prediction failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retriever, loader, r := setupPredictionRouter()
			tt.setup(retriever, loader)
			body := predictionBody()
			tt.mutate(body)

			w := postJSON(r, "/api/v1/predictions", body)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.substr)
		})
	}
}

func TestGetOptions(t *testing.T) {
	_, _, r := setupPredictionRouter()

	req, _ := http.NewRequest("GET", "/api/v1/options", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		PropertyTypes []string `json:"property_types"`
		Towns         []string `json:"towns"`
		Models        []string `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.PropertyTypes, 10)
	assert.Len(t, resp.Towns, 20)
	assert.Equal(t, []string{"Random Forest", "XGBoost"}, resp.Models)
}

func postForm(r *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func formValuesFor() url.Values {
	return url.Values{
		"assessed_value": {"250000"},
		"sale_date":      {"2022-06-15"},
		"property_type":  {"Single Family"},
		"town":           {"Hartford"},
		"model":          {"Random Forest"},
	}
}

func TestShowForm(t *testing.T) {
	_, _, r := setupPredictionRouter()

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="2022-01-01"`)
	assert.Contains(t, body, "East Hartford")
	assert.Contains(t, body, "Vacant Land")
	assert.NotContains(t, body, "Predicted Sale Price</strong>")
}

func TestSubmitForm_Success(t *testing.T) {
	retriever, loader, r := setupPredictionRouter()
	stubModel(retriever, loader, 412000.5)

	w := postForm(r, formValuesFor())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "(Random Forest): $412,000.50")
	assert.Contains(t, w.Body.String(), "<option selected>Hartford</option>")
}

func TestSubmitForm_DownloadError(t *testing.T) {
	retriever, _, r := setupPredictionRouter()
	retriever.On("Retrieve", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	w := postForm(r, formValuesFor())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "download failed: quota exceeded")
}

func TestSubmitForm_InvalidValue(t *testing.T) {
	retriever, _, r := setupPredictionRouter()
	values := formValuesFor()
	values.Set("assessed_value", "10")

	w := postForm(r, values)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please check the form")
	retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything)
}

func TestSubmitForm_NonFiniteValue(t *testing.T) {
	for _, v := range []string{"Inf", "NaN"} {
		t.Run(v, func(t *testing.T) {
			retriever, _, r := setupPredictionRouter()
			values := formValuesFor()
			values.Set("assessed_value", v)

			w := postForm(r, values)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.NotContains(t, w.Body.String(), "Predicted Sale Price</strong>")
			assert.Contains(t, w.Body.String(), `class="banner err"`)
			retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything)
		})
	}
}
