package artifact

import (
	"fmt"

	"ct-price-predictor/internal/core/domain"
)

type Kind string

const (
	KindRandomForest     Kind = "random_forest"
	KindGradientBoosting Kind = "gradient_boosting"
)

type node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n node) leaf() bool { return n.Left < 0 }

type tree struct {
	Nodes []node `json:"nodes"`
}

type document struct {
	Format       string   `json:"format"`
	Kind         Kind     `json:"kind"`
	FeatureNames []string `json:"feature_names"`
	BaseScore    float64  `json:"base_score"`
	Trees        []tree   `json:"trees"`
}

// Ensemble is a loaded tree ensemble. Random forests average their trees and
// send x <= threshold left; gradient boosted models add leaf values to the
// base score and send x < threshold left.
type Ensemble struct {
	kind      Kind
	features  []string
	baseScore float64
	trees     []tree
}

func newEnsemble(doc document) (*Ensemble, error) {
	for ti, t := range doc.Trees {
		if err := checkTree(t, len(doc.FeatureNames)); err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", domain.ErrCorruptArtifact, ti, err)
		}
	}
	features := make([]string, len(doc.FeatureNames))
	copy(features, doc.FeatureNames)
	return &Ensemble{
		kind:      doc.Kind,
		features:  features,
		baseScore: doc.BaseScore,
		trees:     doc.Trees,
	}, nil
}

func checkTree(t tree, nFeatures int) error {
	n := len(t.Nodes)
	for i, nd := range t.Nodes {
		if nd.leaf() {
			continue
		}
		if nd.Left >= n || nd.Right < 0 || nd.Right >= n {
			return fmt.Errorf("node %d: child out of range", i)
		}
		if nd.Feature < 0 || nd.Feature >= nFeatures {
			return fmt.Errorf("node %d: feature index %d out of range", i, nd.Feature)
		}
	}
	return nil
}

func (e *Ensemble) Kind() Kind { return e.kind }

func (e *Ensemble) FeatureNames() []string {
	out := make([]string, len(e.features))
	copy(out, e.features)
	return out
}

func (e *Ensemble) Predict(row []float64) (float64, error) {
	if len(row) != len(e.features) {
		return 0, fmt.Errorf("%w: got %d values, model expects %d", domain.ErrSchemaMismatch, len(row), len(e.features))
	}

	var sum float64
	for i, t := range e.trees {
		v, err := e.walk(t, row)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}

	switch e.kind {
	case KindRandomForest:
		return sum / float64(len(e.trees)), nil
	default:
		return e.baseScore + sum, nil
	}
}

func (e *Ensemble) walk(t tree, row []float64) (float64, error) {
	idx := 0
	// A well-formed tree reaches a leaf in fewer steps than it has nodes.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		nd := t.Nodes[idx]
		if nd.leaf() {
			return nd.Value, nil
		}
		if e.goLeft(row[nd.Feature], nd.Threshold) {
			idx = nd.Left
		} else {
			idx = nd.Right
		}
	}
	return 0, fmt.Errorf("%w: cycle in tree", domain.ErrCorruptArtifact)
}

func (e *Ensemble) goLeft(x, threshold float64) bool {
	if e.kind == KindRandomForest {
		return x <= threshold
	}
	return x < threshold
}
