package classifier

import (
	"fmt"
	"math"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

// Tree is one decision tree stored as a flat node array rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is a split or a leaf. Leaves have Left and Right set to -1 and carry
// per-class sample weights in Value; splits send x[Feature] <= Threshold left.
type Node struct {
	Feature   int        `json:"feature"`
	Threshold float64    `json:"threshold"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
	Value     [2]float64 `json:"value"`
}

func (n *Node) leaf() bool { return n.Left < 0 }

// validate checks that every path terminates at a leaf: children always point
// forward, so traversal cannot cycle.
func (t *Tree) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.leaf() {
			if n.Right >= 0 {
				return fmt.Errorf("node %d: leaf with right child", i)
			}
			if n.Value[0] < 0 || n.Value[1] < 0 || n.Value[0]+n.Value[1] <= 0 {
				return fmt.Errorf("node %d: leaf needs non-negative class weights", i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= domain.FeatureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, n.Feature)
		}
		if math.IsNaN(n.Threshold) {
			return fmt.Errorf("node %d: NaN threshold", i)
		}
		for _, c := range [2]int{n.Left, n.Right} {
			if c <= i || c >= len(t.Nodes) {
				return fmt.Errorf("node %d: child index %d must be in (%d, %d)", i, c, i, len(t.Nodes))
			}
		}
	}
	return nil
}

func (t *Tree) leafFor(x []float64) *Node {
	n := &t.Nodes[0]
	for !n.leaf() {
		if x[n.Feature] <= n.Threshold {
			n = &t.Nodes[n.Left]
		} else {
			n = &t.Nodes[n.Right]
		}
	}
	return n
}

// forest averages per-tree class-1 fractions.
type forest struct {
	trees []Tree
}

func (f *forest) Probability(x []float64) float64 {
	var sum float64
	for i := range f.trees {
		leaf := f.trees[i].leafFor(x)
		sum += leaf.Value[1] / (leaf.Value[0] + leaf.Value[1])
	}
	return sum / float64(len(f.trees))
}

// predict is the hard-label majority vote; ties go to the genuine class.
func (f *forest) predict(x []float64) int {
	votes := 0
	for i := range f.trees {
		leaf := f.trees[i].leafFor(x)
		if leaf.Value[1] > leaf.Value[0] {
			votes++
		}
	}
	if 2*votes > len(f.trees) {
		return 1
	}
	return 0
}

func newForest(spec ModelSpec) (Model, error) {
	if len(spec.Trees) == 0 {
		return nil, fmt.Errorf("random_forest: no trees")
	}
	for i := range spec.Trees {
		if err := spec.Trees[i].validate(); err != nil {
			return nil, fmt.Errorf("random_forest: tree %d: %w", i, err)
		}
	}

	f := &forest{trees: spec.Trees}
	switch spec.Output {
	case OutputProbability, "":
		return f, nil
	case OutputLabel:
		return LabelModel{Predict: f.predict}, nil
	default:
		return nil, fmt.Errorf("random_forest: unknown output %q", spec.Output)
	}
}
