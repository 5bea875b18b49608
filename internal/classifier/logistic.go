package classifier

import (
	"fmt"
	"math"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

// logistic is a binary logistic regression with optional median imputation of
// missing (NaN) inputs.
type logistic struct {
	intercept float64
	coef      []float64
	medians   []float64
}

func newLogistic(spec ModelSpec) (*logistic, error) {
	if len(spec.Coefficients) != domain.FeatureCount {
		return nil, fmt.Errorf("logistic_regression: want %d coefficients, got %d", domain.FeatureCount, len(spec.Coefficients))
	}
	if spec.ImputerMedians != nil && len(spec.ImputerMedians) != domain.FeatureCount {
		return nil, fmt.Errorf("logistic_regression: want %d imputer medians, got %d", domain.FeatureCount, len(spec.ImputerMedians))
	}
	for _, v := range append(append([]float64{spec.Intercept}, spec.Coefficients...), spec.ImputerMedians...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("logistic_regression: non-finite parameter")
		}
	}
	return &logistic{
		intercept: spec.Intercept,
		coef:      spec.Coefficients,
		medians:   spec.ImputerMedians,
	}, nil
}

func (l *logistic) Probability(x []float64) float64 {
	z := l.intercept
	for i, c := range l.coef {
		v := x[i]
		if math.IsNaN(v) && l.medians != nil {
			v = l.medians[i]
		}
		z += c * v
	}
	return 1 / (1 + math.Exp(-z))
}
