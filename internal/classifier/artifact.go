package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

// FormatVersion is the only artifact layout this package reads.
const FormatVersion = 1

// Model type identifiers.
const (
	TypeLogisticRegression = "logistic_regression"
	TypeRandomForest       = "random_forest"
)

// Forest output modes.
const (
	OutputProbability = "probability"
	OutputLabel       = "label"
)

// Artifact is the on-disk JSON model bundle.
type Artifact struct {
	FormatVersion int       `json:"format_version"`
	ModelVersion  string    `json:"model_version"`
	Features      []string  `json:"features"`
	Model         ModelSpec `json:"model"`
}

// ModelSpec describes the trained estimator. Fields not used by Type are
// ignored.
type ModelSpec struct {
	Type string `json:"type"`

	// logistic_regression
	Intercept      float64   `json:"intercept"`
	Coefficients   []float64 `json:"coefficients"`
	ImputerMedians []float64 `json:"imputer_medians,omitempty"`

	// random_forest
	Output string `json:"output"`
	Trees  []Tree `json:"trees"`
}

// Load reads and validates the artifact at path.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load model artifact %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates an artifact.
func Parse(data []byte) (*Classifier, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var a Artifact
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return a.Build()
}

// Build validates the artifact and returns a classifier over its model.
func (a *Artifact) Build() (*Classifier, error) {
	if a.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format_version %d", ErrInvalidArtifact, a.FormatVersion)
	}
	if a.ModelVersion == "" {
		return nil, fmt.Errorf("%w: model_version is required", ErrInvalidArtifact)
	}
	if want := domain.FeatureNames(); !slices.Equal(a.Features, want) {
		return nil, fmt.Errorf("%w: artifact declares %v, pipeline produces %v", ErrSchemaMismatch, a.Features, want)
	}

	var (
		m   Model
		err error
	)
	switch a.Model.Type {
	case TypeLogisticRegression:
		m, err = newLogistic(a.Model)
	case TypeRandomForest:
		m, err = newForest(a.Model)
	default:
		err = fmt.Errorf("unknown model type %q", a.Model.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	return New(a.ModelVersion, m), nil
}
