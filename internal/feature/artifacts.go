package feature

// Artifacts is the immutable bundle of fitted encoding state. It is created
// once by the training orchestrator, persisted as the pipeline's
// preprocessing blob, and never mutated afterwards. Serve-time transforms
// replay it verbatim; nothing here is ever re-estimated per request.
type Artifacts struct {
	// Schema is the ordered feature-column layout the model was fit against.
	Schema Schema `json:"schema"`

	// Vocabulary holds, per encoded field, the categories observed at fit
	// time in sorted order. Input categories outside the vocabulary expand
	// to all-zero indicators.
	Vocabulary map[string][]string `json:"vocabulary_encoder"`

	// Lambda is the Box-Cox exponent fit on the training partition's order
	// quantities.
	Lambda float64 `json:"transform_exponent"`

	// TargetMeans maps product name to the mean historical revenue observed
	// at fit time.
	TargetMeans map[string]float64 `json:"target_encoding_table"`

	// OverallMean is the fallback for product names absent from TargetMeans.
	OverallMean float64 `json:"overall_mean_fallback"`
}

// vocabularyColumns returns the indicator column names of one encoded field,
// in vocabulary order.
func (a *Artifacts) vocabularyColumns(field string) []string {
	categories := a.Vocabulary[field]
	columns := make([]string, len(categories))
	for i, category := range categories {
		columns[i] = field + "_" + category
	}
	return columns
}
