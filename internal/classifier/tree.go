package classifier

import (
	"fmt"

	"github.com/OldStager01/attrition-advisor/pkg/models"
)

type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

func (n treeNode) isLeaf() bool {
	return len(n.Value) > 0
}

type treeParams struct {
	Nodes []treeNode `json:"nodes"`
}

// treeEnsemble averages the normalised leaf distributions of its trees, the
// way a random forest's predict_proba does. Samples go left when
// x[feature] <= threshold.
type treeEnsemble struct {
	info  ModelInfo
	trees []treeParams
}

func newTreeEnsemble(info ModelInfo, trees []treeParams) (*treeEnsemble, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: tree ensemble has no trees", ErrInvalidArtifact)
	}

	nFeatures := len(info.Features)
	nClasses := len(info.Classes)

	for t, tree := range trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("%w: tree %d has no nodes", ErrInvalidArtifact, t)
		}
		for i, node := range tree.Nodes {
			if node.isLeaf() {
				if len(node.Value) != nClasses {
					return nil, fmt.Errorf("%w: tree %d node %d has %d leaf values for %d classes",
						ErrInvalidArtifact, t, i, len(node.Value), nClasses)
				}
				if sum(node.Value) <= 0 {
					return nil, fmt.Errorf("%w: tree %d node %d has an empty leaf distribution", ErrInvalidArtifact, t, i)
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= nFeatures {
				return nil, fmt.Errorf("%w: tree %d node %d splits on unknown feature %d", ErrInvalidArtifact, t, i, node.Feature)
			}
			// Children must come after their parent, which also rules out cycles.
			for _, child := range []int{node.Left, node.Right} {
				if child <= i || child >= len(tree.Nodes) {
					return nil, fmt.Errorf("%w: tree %d node %d has invalid child %d", ErrInvalidArtifact, t, i, child)
				}
			}
		}
	}

	return &treeEnsemble{info: info, trees: trees}, nil
}

func (e *treeEnsemble) Info() ModelInfo {
	return e.info
}

func (e *treeEnsemble) PredictProba(record models.FeatureRecord) ([]float64, error) {
	if err := e.info.checkSchema(record); err != nil {
		return nil, err
	}

	proba := make([]float64, len(e.info.Classes))
	for _, tree := range e.trees {
		leaf := tree.leaf(record.Values)
		total := sum(leaf.Value)
		for c, v := range leaf.Value {
			proba[c] += v / total
		}
	}

	n := float64(len(e.trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

func (t treeParams) leaf(values []float64) treeNode {
	node := t.Nodes[0]
	for !node.isLeaf() {
		if values[node.Feature] <= node.Threshold {
			node = t.Nodes[node.Left]
		} else {
			node = t.Nodes[node.Right]
		}
	}
	return node
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
