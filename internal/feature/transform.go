package feature

import "github.com/salesmlstack/revenue-predictor/internal/errors"

// Transformer applies a fitted Artifacts bundle to raw records. It is pure
// and side-effect free: the same record and the same artifacts always yield
// the same vector, at training time and at serve time alike. A Transformer
// never refits anything.
type Transformer struct {
	artifacts *Artifacts
}

func NewTransformer(artifacts *Artifacts) *Transformer {
	return &Transformer{artifacts: artifacts}
}

// TransformOne maps a raw record into a feature vector laid out per the
// fitted schema. Steps run in fixed order: date decomposition, product-line
// imputation, Box-Cox on the order quantity, one-hot expansion restricted to
// the fitted vocabulary, and target encoding of the product name. Columns the
// record cannot populate (absent order date, categories outside the
// vocabulary) stay zero, so the vector shape is identical on every call.
func (t *Transformer) TransformOne(record RawRecord) (Vector, error) {
	if t.artifacts == nil {
		return nil, &errors.NotReadyError{State: "encoding artifacts not loaded"}
	}
	a := t.artifacts
	values := make(map[string]float64, a.Schema.Len())

	// 1. Date decomposition.
	if record.OrderDate != nil {
		values[ColumnYear] = float64(record.OrderDate.Year())
		values[ColumnMonth] = float64(record.OrderDate.Month())
		values[ColumnDay] = float64(record.OrderDate.Day())
	}

	// 3. Power transform with the frozen exponent. Imputation (step 2) is
	// folded into encodedValue, which substitutes the sentinel product line.
	qty, err := BoxCox(float64(record.OrderQty), a.Lambda)
	if err != nil {
		return nil, err
	}
	values[ColumnQtyBoxCox] = qty

	// 4. One-hot expansion against the frozen vocabulary. Unknown categories
	// match nothing and leave the field's whole indicator block at zero.
	for _, field := range EncodedFields {
		category := record.encodedValue(field)
		for _, known := range a.Vocabulary[field] {
			if known == category {
				values[field+"_"+known] = 1
			}
		}
	}

	// 5. Target encoding of the product name, with the overall-mean fallback
	// for names unseen at fit time.
	if mean, ok := a.TargetMeans[record.ProductName]; ok {
		values[ColumnTargetEncoded] = mean
	} else {
		values[ColumnTargetEncoded] = a.OverallMean
	}

	vector := make(Vector, a.Schema.Len())
	for i, column := range a.Schema.Columns {
		vector[i] = values[column]
	}
	return vector, nil
}

// TransformBatch maps records in order; the first failing record fails the
// whole batch.
func (t *Transformer) TransformBatch(records []RawRecord) ([]Vector, error) {
	vectors := make([]Vector, len(records))
	for i := range records {
		vector, err := t.TransformOne(records[i])
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}
