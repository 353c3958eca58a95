package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// RandomForest is a pre-trained forest deserialized from a JSON artifact.
// Each tree is a flattened node array; children are indices into that array.
type RandomForest struct {
	featureNames []string
	trees        [][]TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	IsLeaf     bool    `json:"is_leaf"`
	Samples    int     `json:"samples"`
	Recurred   int     `json:"recurred"`
}

type forestArtifact struct {
	Model        string       `json:"model"`
	FeatureNames []string     `json:"feature_names"`
	Trees        [][]TreeNode `json:"trees"`
}

// NewRandomForest builds a forest from in-memory trees. Used by tests; the
// application loads artifacts from disk via Load.
func NewRandomForest(featureNames []string, trees [][]TreeNode) (*RandomForest, error) {
	rf := &RandomForest{featureNames: featureNames, trees: trees}
	if err := rf.validate(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *RandomForest) FeatureNames() []string {
	return append([]string(nil), rf.featureNames...)
}

// PredictProba walks every tree to a leaf and averages the per-leaf
// recurrence fractions.
func (rf *RandomForest) PredictProba(features []float64) (float64, error) {
	if len(rf.trees) == 0 {
		return 0, errors.New("model not loaded")
	}
	if len(features) != len(rf.featureNames) {
		return 0, fmt.Errorf("expected %d features, got %d", len(rf.featureNames), len(features))
	}

	sum := 0.0
	for treeIdx, nodes := range rf.trees {
		proba, err := treeProba(nodes, features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", treeIdx, err)
		}
		sum += proba
	}
	return sum / float64(len(rf.trees)), nil
}

func treeProba(nodes []TreeNode, features []float64) (float64, error) {
	idx := 0
	for steps := 0; steps <= len(nodes); steps++ {
		node := nodes[idx]
		if node.IsLeaf {
			if node.Samples <= 0 {
				return 0, errors.New("leaf with no samples")
			}
			return float64(node.Recurred) / float64(node.Samples), nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return 0, errors.New("tree traversal did not terminate")
}

// Load reads a forest artifact from disk. A file that does not parse, or
// parses into an inconsistent tree, is rejected.
func (rf *RandomForest) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var artifact forestArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return fmt.Errorf("parse model artifact: %w", err)
	}
	rf.featureNames = artifact.FeatureNames
	rf.trees = artifact.Trees
	if err := rf.validate(); err != nil {
		return fmt.Errorf("invalid model artifact: %w", err)
	}
	return nil
}

func (rf *RandomForest) validate() error {
	if len(rf.featureNames) == 0 {
		return errors.New("no feature names")
	}
	if len(rf.trees) == 0 {
		return errors.New("no trees")
	}
	for treeIdx, nodes := range rf.trees {
		if len(nodes) == 0 {
			return fmt.Errorf("tree %d is empty", treeIdx)
		}
		for nodeIdx, node := range nodes {
			if node.IsLeaf {
				if node.Samples <= 0 || node.Recurred < 0 || node.Recurred > node.Samples {
					return fmt.Errorf("tree %d node %d: bad class counts", treeIdx, nodeIdx)
				}
				continue
			}
			if node.FeatureIdx < 0 || node.FeatureIdx >= len(rf.featureNames) {
				return fmt.Errorf("tree %d node %d: feature index out of range", treeIdx, nodeIdx)
			}
			if node.LeftChild <= nodeIdx || node.LeftChild >= len(nodes) ||
				node.RightChild <= nodeIdx || node.RightChild >= len(nodes) {
				return fmt.Errorf("tree %d node %d: invalid child index", treeIdx, nodeIdx)
			}
		}
	}
	return nil
}
