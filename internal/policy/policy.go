// Package policy holds the per-category scoring configuration: the fraud
// probability threshold and the relevance denylist. A Policy is read-only
// after construction and safe for concurrent use.
package policy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/trueinsight/reviewtrust/internal/domain"
	"github.com/trueinsight/reviewtrust/pkg/validator"
)

// DefaultThreshold applies when the policy document omits one.
const DefaultThreshold = 0.5

// ErrInvalidPolicy reports an unreadable or invalid policy document.
var ErrInvalidPolicy = errors.New("invalid scoring policy")

//go:embed default.yaml
var defaultDocument []byte

// Document is the YAML policy layout.
type Document struct {
	DefaultThreshold *float64                   `yaml:"default_threshold" validate:"omitempty,gte=0,lt=1"`
	Categories       map[string]CategoryDocument `yaml:"categories" validate:"dive,keys,required,endkeys"`
}

// CategoryDocument configures one category.
type CategoryDocument struct {
	Threshold *float64 `yaml:"threshold" validate:"omitempty,gte=0,lt=1"`
	Denylist  []string `yaml:"denylist" validate:"dive,required"`
}

type category struct {
	threshold float64
	relevance *relevanceMatcher
}

// Policy maps normalized category names to their rules.
type Policy struct {
	defaultThreshold float64
	categories       map[string]*category
}

// Rules are the scoring rules resolved for one product category.
type Rules struct {
	// Category is the normalized category name.
	Category string
	// Known is false when the category has no entry; defaults then apply.
	Known     bool
	Threshold float64

	relevance *relevanceMatcher
}

// Default returns the embedded policy.
func Default() *Policy {
	p, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded policy: %v", err))
	}
	return p
}

// Load reads the policy at path, or returns Default when path is empty.
func Load(path string) (*Policy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidPolicy, path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load policy %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML policy document.
func Parse(data []byte) (*Policy, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return New(doc)
}

// New validates doc and builds a Policy from it. Category names are
// normalized; two names that normalize to the same key are rejected.
func New(doc Document) (*Policy, error) {
	if err := validator.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}

	p := &Policy{
		defaultThreshold: DefaultThreshold,
		categories:       make(map[string]*category, len(doc.Categories)),
	}
	if doc.DefaultThreshold != nil {
		p.defaultThreshold = *doc.DefaultThreshold
	}

	names := make([]string, 0, len(doc.Categories))
	for name := range doc.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := domain.NormalizeCategory(name)
		if key == "" {
			return nil, fmt.Errorf("%w: blank category name", ErrInvalidPolicy)
		}
		if _, dup := p.categories[key]; dup {
			return nil, fmt.Errorf("%w: category %q defined more than once", ErrInvalidPolicy, key)
		}

		c := doc.Categories[name]
		threshold := p.defaultThreshold
		if c.Threshold != nil {
			threshold = *c.Threshold
		}
		p.categories[key] = &category{
			threshold: threshold,
			relevance: newRelevanceMatcher(c.Denylist),
		}
	}

	return p, nil
}

// Lookup resolves the rules for a product category. Unknown categories get
// the default threshold and no relevance filtering.
func (p *Policy) Lookup(productCategory string) Rules {
	key := domain.NormalizeCategory(productCategory)
	c, ok := p.categories[key]
	if !ok {
		return Rules{Category: key, Threshold: p.defaultThreshold}
	}
	return Rules{Category: key, Known: true, Threshold: c.threshold, relevance: c.relevance}
}

// Categories returns the configured category names, sorted.
func (p *Policy) Categories() []string {
	out := make([]string, 0, len(p.categories))
	for k := range p.categories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Relevant reports whether text passes the category's denylist.
func (r Rules) Relevant(text string) bool {
	return len(r.DenylistHits(text)) == 0
}

// DenylistHits returns the denylisted terms found in text.
func (r Rules) DenylistHits(text string) []string {
	if r.relevance == nil {
		return nil
	}
	return r.relevance.hits(text)
}

// Suspicious applies the threshold: a probability strictly above it is
// suspicious.
func (r Rules) Suspicious(probability float64) bool {
	return probability > r.Threshold
}
