package feature

// SchemaVersion is bumped whenever the column layout produced by the fit step
// changes shape. A loaded pipeline only serves vectors of the version it was
// fit with.
const SchemaVersion = 1

// Schema is the explicit, ordered list of feature columns the model was fit
// against. It is produced once by the fit step, persisted inside the
// artifacts, and replayed verbatim at serve time so column order can never
// drift between training and inference.
type Schema struct {
	Version int      `json:"version"`
	Columns []string `json:"columns"`
}

func (s *Schema) Len() int {
	return len(s.Columns)
}

// Index returns the position of a column, or -1 if the column is not part of
// the schema.
func (s *Schema) Index(column string) int {
	for i, c := range s.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Vector is one row of numeric features, ordered per the schema it was
// produced against.
type Vector []float64
