// Package model wraps the pre-trained delay regression artifact. The artifact
// is loaded at most once per process, shared read-only across requests, and
// never refit.
package model

import (
	"context"
	"fmt"
	"math"
	"sync"

	"traffic-prediction-service/internal/apperr"
)

// Handle owns the model artifact. The zero of Handle is not usable; create it
// with NewHandle. Handle is safe for concurrent use: the lazy load is guarded
// by sync.Once, so two concurrent first requests load the artifact once.
type Handle struct {
	path string

	once sync.Once
	art  *Artifact
	err  error
}

// NewHandle creates a Handle for the artifact at path without loading it.
func NewHandle(path string) *Handle {
	return &Handle{path: path}
}

// Preload forces the artifact load so a missing or corrupt artifact fails at
// startup instead of on the first request. Safe to call repeatedly.
func (h *Handle) Preload() error {
	_, err := h.artifact()
	return err
}

func (h *Handle) artifact() (*Artifact, error) {
	h.once.Do(func() {
		h.art, h.err = LoadArtifact(h.path)
	})
	if h.err != nil {
		return nil, apperr.Wrap(apperr.CodeModelUnavailable, "delay model artifact is unavailable", h.err)
	}
	return h.art, nil
}

// FeatureNames returns the column order the artifact was fitted on.
func (h *Handle) FeatureNames() ([]string, error) {
	art, err := h.artifact()
	if err != nil {
		return nil, err
	}
	return art.FeatureNames, nil
}

// Predict runs inference for every row and returns one delay per row in input
// order. Rows arrive in the caller's column order described by featureNames;
// they are reordered to the artifact's fitted order first. A column set that
// does not cover the artifact's features is a configuration error.
//
// Model outputs are clamped to zero (delay cannot be negative) and rounded to
// two decimal places, matching the fitted precision.
func (h *Handle) Predict(ctx context.Context, featureNames []string, rows [][]float64) ([]float64, error) {
	art, err := h.artifact()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	mapping, err := columnMapping(art.FeatureNames, featureNames)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeFeatureMismatch, "feature columns do not match the fitted model", err)
	}

	out := make([]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(featureNames) {
			return nil, apperr.Wrap(
				apperr.CodePredictionFailed,
				"model inference failed",
				fmt.Errorf("row #%d has %d columns, want %d", i, len(row), len(featureNames)),
			)
		}

		ordered := make([]float64, len(mapping))
		for j, src := range mapping {
			ordered[j] = row[src]
		}

		pred := art.predict(ordered)
		if math.IsNaN(pred) || math.IsInf(pred, 0) {
			return nil, apperr.Wrap(
				apperr.CodePredictionFailed,
				"model inference failed",
				fmt.Errorf("row #%d produced a non-finite prediction", i),
			)
		}

		out = append(out, round2(math.Max(0, pred)))
	}

	return out, nil
}

// columnMapping returns, for each artifact column, the index of that column in
// the caller's row layout.
func columnMapping(artifactNames, callerNames []string) ([]int, error) {
	byName := make(map[string]int, len(callerNames))
	for i, n := range callerNames {
		byName[n] = i
	}

	mapping := make([]int, 0, len(artifactNames))
	for _, n := range artifactNames {
		idx, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("missing feature column %q", n)
		}
		mapping = append(mapping, idx)
	}

	return mapping, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
