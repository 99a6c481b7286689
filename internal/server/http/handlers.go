package http

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/predictor"
	"github.com/salesmlstack/revenue-predictor/pkg/logger"
	"github.com/salesmlstack/revenue-predictor/pkg/metric"
)

// Handler serves the prediction API off the immutable pipeline handle.
type Handler struct {
	svc *predictor.Service
}

// RegisterRoutes registers all HTTP API routes onto the router.
func RegisterRoutes(router *gin.Engine, svc *predictor.Service) {
	h := &Handler{svc: svc}

	router.GET("/", h.handleRoot)
	router.GET("/health", h.handleHealth)

	api := router.Group("/api/v1")
	{
		api.POST("/predict", h.handlePredict)
		api.POST("/predict/batch", h.handlePredictBatch)
	}
}

func (h *Handler) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Order Revenue Prediction API",
		"health":  "/health",
		"endpoints": gin.H{
			"predict":       "/api/v1/predict",
			"batch_predict": "/api/v1/predict/batch",
		},
	})
}

func (h *Handler) handleHealth(c *gin.Context) {
	loaded := h.svc.ModelLoaded()
	status := "healthy"
	if !loaded {
		status = "unhealthy"
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:      status,
		ModelLoaded: loaded,
		ModelName:   h.svc.PipelineName(),
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handlePredict(c *gin.Context) {
	startTime := time.Now()
	tags := []string{"endpoint:predict"}
	metric.Count("predict.request.total", 1, tags)

	var input PredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		metric.Count("predict.request.invalid", 1, tags)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	record, err := input.ToRecord()
	if err != nil {
		h.writeError(c, err, tags)
		return
	}

	prediction, err := h.svc.PredictOne(record)
	if err != nil {
		h.writeError(c, err, tags)
		return
	}

	metric.Timing("predict.request.latency", time.Since(startTime), tags)
	c.JSON(http.StatusOK, PredictionOutput{
		Success:    true,
		Prediction: prediction,
		InputData:  input,
		Timestamp:  time.Now().Format(time.RFC3339),
		ModelName:  h.svc.PipelineName(),
	})
}

func (h *Handler) handlePredictBatch(c *gin.Context) {
	startTime := time.Now()
	tags := []string{"endpoint:predict_batch"}
	metric.Count("predict.request.total", 1, tags)

	var input BatchPredictionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		metric.Count("predict.request.invalid", 1, tags)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	records := make([]feature.RawRecord, len(input.Data))
	for i := range input.Data {
		record, err := input.Data[i].ToRecord()
		if err != nil {
			h.writeError(c, fmt.Errorf("record %d: %w", i, err), tags)
			return
		}
		records[i] = record
	}

	predictions, err := h.svc.PredictBatch(records)
	if err != nil {
		h.writeError(c, err, tags)
		return
	}

	items := make([]BatchPredictionItem, len(predictions))
	for i, prediction := range predictions {
		items[i] = BatchPredictionItem{
			Index:      i,
			Prediction: prediction,
			InputData:  input.Data[i],
		}
	}

	metric.Timing("predict.request.latency", time.Since(startTime), tags)
	metric.Count("predict.request.batch.size", int64(len(items)), tags)
	c.JSON(http.StatusOK, BatchPredictionOutput{
		Success:      true,
		TotalRecords: len(items),
		Predictions:  items,
		Timestamp:    time.Now().Format(time.RFC3339),
	})
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy collapses to a generic internal error so internal structure
// never leaks to callers.
func (h *Handler) writeError(c *gin.Context, err error, tags []string) {
	var validationErr *errors.ValidationError
	var domainErr *errors.DomainError
	var notReadyErr *errors.NotReadyError

	switch {
	case stderrors.As(err, &validationErr), stderrors.As(err, &domainErr):
		metric.Count("predict.request.invalid", 1, tags)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case stderrors.As(err, &notReadyErr):
		metric.Count("predict.request.not_ready", 1, tags)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Model not loaded. Please check server logs."})
	default:
		metric.Count("predict.request.error", 1, tags)
		logger.Error("Prediction failed with unexpected error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}
