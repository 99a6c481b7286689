package predictor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmlstack/revenue-predictor/internal/artifact"
	"github.com/salesmlstack/revenue-predictor/internal/errors"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/model"
)

func strPtr(s string) *string { return &s }

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func sampleRecords() ([]feature.RawRecord, []float64) {
	records := make([]feature.RawRecord, 0, 20)
	targets := make([]float64, 0, 20)
	names := []string{"Road-250", "Mountain-200", "Touring-1000", "HL Road Frame"}
	for i := 0; i < 20; i++ {
		records = append(records, feature.RawRecord{
			PersonType:  []string{"SC", "IN"}[i%2],
			OrderQty:    i%7 + 1,
			ProductName: names[i%len(names)],
			ProductLine: strPtr([]string{"M", "R", "T"}[i%3]),
			Territory:   []string{"Northwest", "Southwest"}[i%2],
			CountryCode: "US",
			Group:       "North America",
			OrderDate:   datePtr(2013, time.Month(i%12+1), i%28+1),
		})
		targets = append(targets, 800+float64(i)*130)
	}
	return records, targets
}

// seedPipeline fits and trains a small pipeline and persists it under name in
// a fresh temp-dir file store.
func seedPipeline(t *testing.T, name string) artifact.Store {
	t.Helper()
	records, targets := sampleRecords()

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
	require.NoError(t, store.SavePipeline(context.Background(), name, m, artifacts))
	return store
}

func TestServiceRefusesTrafficBeforeInit(t *testing.T) {
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := New(store)

	assert.Equal(t, StateUninitialized, svc.State())
	assert.False(t, svc.ModelLoaded())
	assert.Empty(t, svc.PipelineName())

	var notReady *errors.NotReadyError
	_, err = svc.PredictOne(feature.RawRecord{})
	require.ErrorAs(t, err, &notReady)
	assert.Equal(t, "uninitialized", notReady.State)

	_, err = svc.PredictBatch([]feature.RawRecord{{}})
	assert.ErrorAs(t, err, &notReady)
}

func TestServiceInitLoadsPipeline(t *testing.T) {
	store := seedPipeline(t, "xgboost_model")
	svc := New(store)
	require.NoError(t, svc.Init(context.Background(), "xgboost_model"))

	assert.Equal(t, StateReady, svc.State())
	assert.True(t, svc.ModelLoaded())
	assert.Equal(t, "xgboost_model", svc.PipelineName())

	records, _ := sampleRecords()
	prediction, err := svc.PredictOne(records[0])
	require.NoError(t, err)
	assert.False(t, prediction != prediction, "prediction must not be NaN")
}

func TestServiceInitFailureIsTerminal(t *testing.T) {
	store, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)
	svc := New(store)

	var notFound *errors.NotFoundError
	err = svc.Init(context.Background(), "never_trained")
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, StateFailed, svc.State())
	assert.False(t, svc.ModelLoaded())

	// A failed handle never restarts loading.
	err = svc.Init(context.Background(), "never_trained")
	assert.Error(t, err)
	assert.Equal(t, StateFailed, svc.State())
}

func TestServiceInitIsOneShot(t *testing.T) {
	store := seedPipeline(t, "p")
	svc := New(store)
	require.NoError(t, svc.Init(context.Background(), "p"))
	assert.Error(t, svc.Init(context.Background(), "p"))
	assert.Equal(t, StateReady, svc.State())
}

func TestServicePredictBatchMatchesSingles(t *testing.T) {
	store := seedPipeline(t, "p")
	svc := New(store)
	require.NoError(t, svc.Init(context.Background(), "p"))

	records, _ := sampleRecords()
	batch, err := svc.PredictBatch(records[:8])
	require.NoError(t, err)
	require.Len(t, batch, 8)

	for i := 0; i < 8; i++ {
		single, err := svc.PredictOne(records[i])
		require.NoError(t, err)
		assert.Equal(t, single, batch[i], fmt.Sprintf("record %d", i))
	}
}

func TestServicePredictBatchFailsWhole(t *testing.T) {
	store := seedPipeline(t, "p")
	svc := New(store)
	require.NoError(t, svc.Init(context.Background(), "p"))

	records, _ := sampleRecords()
	bad := records[1]
	bad.OrderQty = 0
	batch, err := svc.PredictBatch([]feature.RawRecord{records[0], bad, records[2]})
	assert.Nil(t, batch)

	var domainErr *errors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, err.Error(), "record 1")
}
