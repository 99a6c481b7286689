package training

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/salesmlstack/revenue-predictor/internal/artifact"
	"github.com/salesmlstack/revenue-predictor/internal/errors"
	"github.com/salesmlstack/revenue-predictor/internal/feature"
	"github.com/salesmlstack/revenue-predictor/internal/model"
	"github.com/salesmlstack/revenue-predictor/internal/repositories/sql/sales"
	"github.com/salesmlstack/revenue-predictor/pkg/logger"
)

// Params controls the reproducibility knobs of one training run.
type Params struct {
	SplitSeed    int64
	EvalFraction float64
	Model        model.TrainParams
}

func DefaultParams() Params {
	return Params{
		SplitSeed:    42,
		EvalFraction: 0.2,
		Model:        model.DefaultTrainParams(),
	}
}

// Report is what one training run produced.
type Report struct {
	TotalRows int
	TrainRows int
	EvalRows  int
	Lambda    float64
	Columns   int
	Train     Metrics
	Eval      Metrics
}

// Orchestrator fits the encoding artifacts and the model from the historical
// warehouse and hands both to the artifact store. Every fitted statistic
// comes from the training partition alone; the evaluation partition is only
// ever transformed and scored, never fit on.
type Orchestrator struct {
	repo   sales.Repository
	store  artifact.Store
	params Params
}

func NewOrchestrator(repo sales.Repository, store artifact.Store, params Params) *Orchestrator {
	return &Orchestrator{repo: repo, store: store, params: params}
}

func (o *Orchestrator) Run(ctx context.Context, pipelineName string) (*Report, error) {
	startTime := time.Now()

	lines, err := o.repo.GetOrderLines()
	if err != nil {
		return nil, fmt.Errorf("failed to load historical order lines: %w", err)
	}
	lines = dedupe(lines)
	if len(lines) < 10 {
		return nil, &errors.ValidationError{
			Field:    "dataset",
			ErrorMsg: fmt.Sprintf("too few distinct order lines to train on: %d", len(lines)),
		}
	}
	logger.Info(fmt.Sprintf("Loaded %d distinct order lines", len(lines)))

	// Class and Style are dropped here: the mapping to records keeps only
	// the modeled fields.
	records := make([]feature.RawRecord, len(lines))
	targets := make([]float64, len(lines))
	for i := range lines {
		records[i] = toRecord(&lines[i])
		targets[i] = lines[i].TotalDue
	}

	trainIdx, evalIdx := splitIndexes(len(records), o.params.EvalFraction, o.params.SplitSeed)
	trainRecords, trainTargets := gather(records, targets, trainIdx)
	evalRecords, evalTargets := gather(records, targets, evalIdx)

	artifacts, err := feature.Fit(trainRecords, trainTargets)
	if err != nil {
		return nil, fmt.Errorf("failed to fit encoding artifacts: %w", err)
	}
	logger.Info(fmt.Sprintf("Fitted artifacts: lambda=%.4f, %d feature columns, %d target-encoded products",
		artifacts.Lambda, artifacts.Schema.Len(), len(artifacts.TargetMeans)))

	transformer := feature.NewTransformer(artifacts)
	trainX, err := toMatrix(transformer, trainRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to transform training partition: %w", err)
	}
	evalX, err := toMatrix(transformer, evalRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to transform evaluation partition: %w", err)
	}

	m, err := model.Train(trainX, trainTargets, o.params.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}

	report := &Report{
		TotalRows: len(records),
		TrainRows: len(trainRecords),
		EvalRows:  len(evalRecords),
		Lambda:    artifacts.Lambda,
		Columns:   artifacts.Schema.Len(),
		Train:     evaluate(m, trainX, trainTargets),
		Eval:      evaluate(m, evalX, evalTargets),
	}
	logger.Info(fmt.Sprintf("Train: MSE=%.2f R2=%.4f RMSE=%.2f", report.Train.MSE, report.Train.R2, report.Train.RMSE))
	logger.Info(fmt.Sprintf("Eval:  MSE=%.2f R2=%.4f RMSE=%.2f", report.Eval.MSE, report.Eval.R2, report.Eval.RMSE))

	if err := o.store.SavePipeline(ctx, pipelineName, m, artifacts); err != nil {
		return nil, fmt.Errorf("failed to persist pipeline %s: %w", pipelineName, err)
	}
	logger.Info(fmt.Sprintf("Pipeline %s persisted in %s", pipelineName, time.Since(startTime)))
	return report, nil
}

// dedupe removes exact-duplicate order lines, comparing every selected
// column, before the low-value columns are dropped.
func dedupe(lines []sales.OrderLine) []sales.OrderLine {
	seen := make(map[string]bool, len(lines))
	result := lines[:0]
	for i := range lines {
		key := lineKey(&lines[i])
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, lines[i])
	}
	return result
}

func lineKey(l *sales.OrderLine) string {
	var b strings.Builder
	writeField := func(s string) {
		b.WriteString(s)
		b.WriteByte(0)
	}
	writeField(l.PersonType)
	writeField(fmt.Sprintf("%d", l.OrderQty))
	writeField(l.Name)
	writeField(deref(l.ProductLine))
	writeField(deref(l.Class))
	writeField(deref(l.Style))
	writeField(l.NameTerritory)
	writeField(l.CountryRegionCode)
	writeField(l.TerritoryGroup)
	writeField(fmt.Sprintf("%v", l.TotalDue))
	writeField(l.OrderDate.Format(time.RFC3339))
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return "\x00absent"
	}
	return *s
}

func toRecord(l *sales.OrderLine) feature.RawRecord {
	orderDate := l.OrderDate
	return feature.RawRecord{
		PersonType:  l.PersonType,
		OrderQty:    l.OrderQty,
		ProductName: l.Name,
		ProductLine: l.ProductLine,
		Territory:   l.NameTerritory,
		CountryCode: l.CountryRegionCode,
		Group:       l.TerritoryGroup,
		OrderDate:   &orderDate,
	}
}

func gather(records []feature.RawRecord, targets []float64, indexes []int) ([]feature.RawRecord, []float64) {
	outRecords := make([]feature.RawRecord, len(indexes))
	outTargets := make([]float64, len(indexes))
	for i, idx := range indexes {
		outRecords[i] = records[idx]
		outTargets[i] = targets[idx]
	}
	return outRecords, outTargets
}

func toMatrix(transformer *feature.Transformer, records []feature.RawRecord) ([][]float64, error) {
	vectors, err := transformer.TransformBatch(records)
	if err != nil {
		return nil, err
	}
	matrix := make([][]float64, len(vectors))
	for i := range vectors {
		matrix[i] = vectors[i]
	}
	return matrix, nil
}
