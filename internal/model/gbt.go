package model

// Regressor consumes one feature vector and produces one numeric prediction.
// Implementations are immutable after construction and safe for unlimited
// concurrent reads.
type Regressor interface {
	Predict(features []float64) float64
}

// node is one node of a regression tree. Trees are stored as flat slices with
// child indexes, which keeps them trivially JSON-serializable.
type node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

type tree struct {
	Nodes []node `json:"nodes"`
}

func (t *tree) predict(features []float64) float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if features[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// GBTRegressor is a gradient-boosted ensemble of regression trees fit on
// squared error. It is opaque to every caller but the trainer: the
// prediction service only sees the Regressor interface.
type GBTRegressor struct {
	BaseScore    float64 `json:"base_score"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []tree  `json:"trees"`
}

func (m *GBTRegressor) Predict(features []float64) float64 {
	prediction := m.BaseScore
	for i := range m.Trees {
		prediction += m.LearningRate * m.Trees[i].predict(features)
	}
	return prediction
}

// NumTrees reports the number of boosting rounds the model carries.
func (m *GBTRegressor) NumTrees() int {
	return len(m.Trees)
}
