package training

import (
	"math"

	"github.com/salesmlstack/revenue-predictor/internal/model"
)

// Metrics summarizes regression quality on one partition.
type Metrics struct {
	MSE  float64
	R2   float64
	RMSE float64
}

// evaluate scores the model over one transformed partition.
func evaluate(m model.Regressor, x [][]float64, y []float64) Metrics {
	n := float64(len(y))

	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= n

	sse, sst := 0.0, 0.0
	for i := range y {
		err := y[i] - m.Predict(x[i])
		sse += err * err
		dev := y[i] - meanY
		sst += dev * dev
	}

	mse := sse / n
	r2 := 0.0
	if sst > 0 {
		r2 = 1 - sse/sst
	}
	return Metrics{MSE: mse, R2: r2, RMSE: math.Sqrt(mse)}
}
