package feature

import (
	"sort"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
)

// Fit freezes the full encoding state from the training partition: the
// Box-Cox exponent, the per-field category vocabulary, the target-encoding
// table with its overall-mean fallback, and the ordered column schema.
// Callers must pass the training partition only; evaluation data must never
// reach this function, or its statistics leak into the fit.
func Fit(records []RawRecord, targets []float64) (*Artifacts, error) {
	if len(records) == 0 || len(records) != len(targets) {
		return nil, &errors.ValidationError{
			Field:    "records",
			ErrorMsg: "fit requires a non-empty record set with one target per record",
		}
	}

	quantities := make([]float64, len(records))
	for i := range records {
		quantities[i] = float64(records[i].OrderQty)
	}
	lambda, err := FitBoxCoxLambda(quantities)
	if err != nil {
		return nil, err
	}

	artifacts := &Artifacts{
		Vocabulary:  fitVocabulary(records),
		Lambda:      lambda,
		TargetMeans: fitTargetMeans(records, targets),
		OverallMean: mean(targets),
	}
	artifacts.Schema = buildSchema(artifacts)
	return artifacts, nil
}

// fitVocabulary collects the distinct categories per encoded field, sorted so
// the indicator column order is stable across fits of the same data.
func fitVocabulary(records []RawRecord) map[string][]string {
	vocabulary := make(map[string][]string, len(EncodedFields))
	for _, field := range EncodedFields {
		seen := make(map[string]bool)
		for i := range records {
			seen[records[i].encodedValue(field)] = true
		}
		categories := make([]string, 0, len(seen))
		for category := range seen {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		vocabulary[field] = categories
	}
	return vocabulary
}

// fitTargetMeans computes the mean target per product name.
func fitTargetMeans(records []RawRecord, targets []float64) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range records {
		name := records[i].ProductName
		sums[name] += targets[i]
		counts[name]++
	}
	means := make(map[string]float64, len(sums))
	for name, sum := range sums {
		means[name] = sum / float64(counts[name])
	}
	return means
}

// buildSchema lays out the feature columns in the order the transform emits
// them: date parts, the transformed quantity, the indicator blocks per
// encoded field, and the target-encoded product column.
func buildSchema(artifacts *Artifacts) Schema {
	columns := []string{ColumnYear, ColumnMonth, ColumnDay, ColumnQtyBoxCox}
	for _, field := range EncodedFields {
		columns = append(columns, artifacts.vocabularyColumns(field)...)
	}
	columns = append(columns, ColumnTargetEncoded)
	return Schema{Version: SchemaVersion, Columns: columns}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
