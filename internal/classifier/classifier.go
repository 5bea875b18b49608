// Package classifier loads a trained fraud model artifact and scores feature
// vectors with it. A loaded Classifier is immutable and safe for concurrent
// use.
package classifier

import (
	"errors"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

var (
	// ErrInvalidArtifact reports an unreadable or malformed model artifact.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrSchemaMismatch reports an artifact trained on a different feature list.
	ErrSchemaMismatch = errors.New("model feature schema mismatch")
)

// Model maps a feature vector, in domain.FeatureNames order, to the
// probability of the fraudulent class.
type Model interface {
	Probability(x []float64) float64
}

// ModelFunc adapts a function to Model.
type ModelFunc func(x []float64) float64

func (f ModelFunc) Probability(x []float64) float64 { return f(x) }

// LabelModel adapts a hard-label model, one that only reports the predicted
// class, to Model by emitting 0 or 1.
type LabelModel struct {
	Predict func(x []float64) int
}

func (m LabelModel) Probability(x []float64) float64 {
	if m.Predict(x) == 1 {
		return 1
	}
	return 0
}

// Classifier is the fraud-probability adapter used by the scoring pipeline.
type Classifier struct {
	model   Model
	version string
}

// New wraps an already validated model.
func New(version string, m Model) *Classifier {
	return &Classifier{model: m, version: version}
}

// FraudProbability returns the model's probability, in [0, 1], that the
// review described by fv is fraudulent.
func (c *Classifier) FraudProbability(fv domain.FeatureVector) float64 {
	p := c.model.Probability(fv.Values())
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Version returns the artifact's model version.
func (c *Classifier) Version() string {
	return c.version
}
