package feature

import (
	"fmt"
	"math"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
)

// BoxCox applies the power transform y' = (y^λ - 1) / λ, or log(y) at λ = 0,
// with a fixed exponent. The transform is only defined for positive values;
// anything else is a DomainError.
func BoxCox(value, lambda float64) (float64, error) {
	if value <= 0 {
		return 0, &errors.DomainError{
			Field:    FieldOrderQty,
			ErrorMsg: fmt.Sprintf("Box-Cox transform requires a positive value, got %v", value),
		}
	}
	if lambda == 0 {
		return math.Log(value), nil
	}
	return (math.Pow(value, lambda) - 1) / lambda, nil
}

// Bounds of the exponent search. Matches the conventional estimation range;
// fitted exponents on order quantities land well inside it.
const (
	lambdaSearchLow  = -5.0
	lambdaSearchHigh = 5.0
	lambdaTolerance  = 1e-8
)

// FitBoxCoxLambda estimates the exponent that maximizes the Box-Cox
// log-likelihood of the given positive values, via golden-section search.
// This is the fit-once half of the transform; the result is frozen into the
// artifacts and reused verbatim for every later call.
func FitBoxCoxLambda(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, &errors.DomainError{
			Field:    FieldOrderQty,
			ErrorMsg: fmt.Sprintf("Box-Cox fit requires at least 2 values, got %d", len(values)),
		}
	}
	sumLog := 0.0
	for _, v := range values {
		if v <= 0 {
			return 0, &errors.DomainError{
				Field:    FieldOrderQty,
				ErrorMsg: fmt.Sprintf("Box-Cox fit requires positive values, got %v", v),
			}
		}
		sumLog += math.Log(v)
	}

	llf := func(lambda float64) float64 {
		return boxCoxLogLikelihood(values, sumLog, lambda)
	}

	const invPhi = 0.6180339887498949 // (sqrt(5) - 1) / 2
	low, high := lambdaSearchLow, lambdaSearchHigh
	x1 := high - invPhi*(high-low)
	x2 := low + invPhi*(high-low)
	f1, f2 := llf(x1), llf(x2)
	for high-low > lambdaTolerance {
		if f1 > f2 {
			high, x2, f2 = x2, x1, f1
			x1 = high - invPhi*(high-low)
			f1 = llf(x1)
		} else {
			low, x1, f1 = x1, x2, f2
			x2 = low + invPhi*(high-low)
			f2 = llf(x2)
		}
	}
	return (low + high) / 2, nil
}

// boxCoxLogLikelihood is the profile log-likelihood of the exponent:
// (λ-1)·Σ log(y) - n/2·log(var(yᵗ)).
func boxCoxLogLikelihood(values []float64, sumLog, lambda float64) float64 {
	n := float64(len(values))
	transformed := make([]float64, len(values))
	mean := 0.0
	for i, v := range values {
		t, _ := BoxCox(v, lambda)
		transformed[i] = t
		mean += t
	}
	mean /= n

	variance := 0.0
	for _, t := range transformed {
		d := t - mean
		variance += d * d
	}
	variance /= n
	if variance <= 0 {
		return math.Inf(-1)
	}
	return (lambda-1)*sumLog - n/2*math.Log(variance)
}
