package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmlstack/revenue-predictor/internal/artifact"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/model"
	"github.com/salesmlstack/revenue-predictor/internal/predictor"
)

func strPtr(s string) *string { return &s }

// readyService fits, trains and loads a small pipeline so the handlers under
// test serve real predictions.
func readyService(t *testing.T) *predictor.Service {
	t.Helper()

	names := []string{"Road-250", "Mountain-200", "Touring-1000"}
	records := make([]feature.RawRecord, 0, 18)
	targets := make([]float64, 0, 18)
	for i := 0; i < 18; i++ {
		orderDate := time.Date(2013, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC)
		records = append(records, feature.RawRecord{
			PersonType:  []string{"SC", "IN"}[i%2],
			OrderQty:    i%5 + 1,
			ProductName: names[i%len(names)],
			ProductLine: strPtr([]string{"M", "R", "T"}[i%3]),
			Territory:   []string{"Northwest", "Southwest"}[i%2],
			CountryCode: "US",
			Group:       "North America",
			OrderDate:   &orderDate,
		})
		targets = append(targets, 700+float64(i)*110)
	}

	artifacts, err := feature.Fit(records, targets)
	require.NoError(t, err)
	vectors, err := feature.NewTransformer(artifacts).TransformBatch(records)
	require.NoError(t, err)
	x := make([][]float64, len(vectors))
	for i := range vectors {
		x[i] = vectors[i]
	}
	m, err := model.Train(x, targets, model.TrainParams{Rounds: 10, LearningRate: 0.3, MaxDepth: 3, MinSamplesLeaf: 1})
	require.NoError(t, err)

	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SavePipeline(context.Background(), "xgboost_model", m, artifacts))

	svc := predictor.New(store)
	require.NoError(t, svc.Init(context.Background(), "xgboost_model"))
	return svc
}

func newTestRouter(svc *predictor.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, svc)
	return router
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"PersonType":        "SC",
		"OrderQty":          3,
		"Name":              "Road-250",
		"ProductLine":       "R",
		"Name_territory":    "Northwest",
		"CountryRegionCode": "US",
		"Group":             "North America",
		"OrderDate":         "2013-06-15",
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPredictEndpoint(t *testing.T) {
	router := newTestRouter(readyService(t))
	w := postJSON(t, router, "/api/v1/predict", validPayload())
	require.Equal(t, http.StatusOK, w.Code)

	var out PredictionOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "xgboost_model", out.ModelName)
	assert.Equal(t, "Road-250", out.InputData.Name)
	assert.Greater(t, out.Prediction, 0.0)
}

func TestPredictEndpointValidation(t *testing.T) {
	router := newTestRouter(readyService(t))

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"unknown person type", func(p map[string]interface{}) { p["PersonType"] = "XX" }},
		{"zero quantity", func(p map[string]interface{}) { p["OrderQty"] = 0 }},
		{"quantity over limit", func(p map[string]interface{}) { p["OrderQty"] = 1001 }},
		{"missing product name", func(p map[string]interface{}) { delete(p, "Name") }},
		{"bad product line", func(p map[string]interface{}) { p["ProductLine"] = "Z" }},
		{"bad date format", func(p map[string]interface{}) { p["OrderDate"] = "15/06/2013" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			tt.mutate(payload)
			w := postJSON(t, router, "/api/v1/predict", payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestPredictEndpointOptionalFields(t *testing.T) {
	router := newTestRouter(readyService(t))

	// ProductLine is optional; the transform imputes a sentinel category.
	payload := validPayload()
	delete(payload, "ProductLine")
	w := postJSON(t, router, "/api/v1/predict", payload)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unseen categories and product names are tolerated, not rejected.
	payload = validPayload()
	payload["Name"] = "Never-Sold-9000"
	payload["Name_territory"] = "Atlantis"
	w = postJSON(t, router, "/api/v1/predict", payload)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPredictEndpointNotReady(t *testing.T) {
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	router := newTestRouter(predictor.New(store))

	w := postJSON(t, router, "/api/v1/predict", validPayload())
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Model not loaded")
}

func TestBatchPredictEndpoint(t *testing.T) {
	router := newTestRouter(readyService(t))

	data := make([]map[string]interface{}, 4)
	for i := range data {
		p := validPayload()
		p["OrderQty"] = i + 1
		data[i] = p
	}
	w := postJSON(t, router, "/api/v1/predict/batch", map[string]interface{}{"data": data})
	require.Equal(t, http.StatusOK, w.Code)

	var out BatchPredictionOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Success)
	require.Equal(t, 4, out.TotalRecords)
	for i, item := range out.Predictions {
		assert.Equal(t, i, item.Index, fmt.Sprintf("prediction %d out of order", i))
		assert.Equal(t, i+1, item.InputData.OrderQty)
	}
}

func TestBatchPredictEndpointLimits(t *testing.T) {
	router := newTestRouter(readyService(t))

	w := postJSON(t, router, "/api/v1/predict/batch", map[string]interface{}{"data": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	oversized := make([]map[string]interface{}, 101)
	for i := range oversized {
		oversized[i] = validPayload()
	}
	w = postJSON(t, router, "/api/v1/predict/batch", map[string]interface{}{"data": oversized})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// One malformed record fails the whole batch.
	mixed := []map[string]interface{}{validPayload(), validPayload()}
	mixed[1]["PersonType"] = "XX"
	w = postJSON(t, router, "/api/v1/predict/batch", map[string]interface{}{"data": mixed})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(readyService(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.ModelLoaded)
	assert.Equal(t, "xgboost_model", health.ModelName)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/predict")
}

func TestHealthEndpointUnhealthyBeforeLoad(t *testing.T) {
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	router := newTestRouter(predictor.New(store))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "unhealthy", health.Status)
	assert.False(t, health.ModelLoaded)
	assert.Empty(t, health.ModelName)
}
