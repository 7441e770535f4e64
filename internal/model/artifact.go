package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node is one decision node of a regression tree. Leaf nodes carry
// Feature == -1 and contribute Value to the prediction.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// Tree is one member of the fitted ensemble. Traversal starts at node 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Artifact is a pre-fitted gradient-boosted regression ensemble serialized to
// JSON, together with the feature column order it was trained on. The
// artifact is never refit or mutated after loading.
type Artifact struct {
	FeatureNames   []string `json:"feature_names"`
	BasePrediction float64  `json:"base_prediction"`
	Trees          []Tree   `json:"trees"`
}

// LoadArtifact reads and validates a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load artifact: read %q: %w", path, err)
	}

	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, fmt.Errorf("load artifact: parse %q: %w", path, err)
	}

	if err := art.Validate(); err != nil {
		return nil, fmt.Errorf("load artifact: %q: %w", path, err)
	}

	return &art, nil
}

// Validate checks the artifact for structural defects before first use.
// A corrupt artifact must fail here, not mid-inference.
func (a *Artifact) Validate() error {
	if len(a.FeatureNames) == 0 {
		return fmt.Errorf("validate artifact: no feature names")
	}
	if len(a.Trees) == 0 {
		return fmt.Errorf("validate artifact: no trees")
	}

	for ti, tree := range a.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("validate artifact: tree #%d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Feature >= len(a.FeatureNames) {
				return fmt.Errorf(
					"validate artifact: tree #%d node #%d references feature %d (have %d)",
					ti, ni, n.Feature, len(a.FeatureNames),
				)
			}
			if n.Feature >= 0 {
				if n.Left < 0 || n.Left >= len(tree.Nodes) || n.Right < 0 || n.Right >= len(tree.Nodes) {
					return fmt.Errorf(
						"validate artifact: tree #%d node #%d has child out of range",
						ti, ni,
					)
				}
			}
		}
	}

	return nil
}

// predict evaluates the ensemble for one row already in artifact column order.
func (a *Artifact) predict(row []float64) float64 {
	sum := a.BasePrediction
	for i := range a.Trees {
		sum += a.Trees[i].traverse(row)
	}
	return sum
}

func (t *Tree) traverse(row []float64) float64 {
	idx := 0
	// Validate guarantees child indices are in range; bound the walk anyway
	// so a cyclic tree cannot hang a request.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[idx]
		if n.Feature < 0 {
			return n.Value
		}
		if row[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return 0
}
