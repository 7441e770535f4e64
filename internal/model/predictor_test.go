package model

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traffic-prediction-service/internal/apperr"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// Ensemble over two features: base 1.0 plus a single stump on "a".
// a <= 5 contributes -10 (forces a negative raw prediction), a > 5 adds 2.5.
const stumpArtifact = `{
  "feature_names": ["a", "b"],
  "base_prediction": 1.0,
  "trees": [
    {"nodes": [
      {"feature": 0, "threshold": 5, "left": 1, "right": 2},
      {"feature": -1, "value": -10},
      {"feature": -1, "value": 2.5}
    ]}
  ]
}`

func TestPredictClampsNegativeOutputs(t *testing.T) {
	h := NewHandle(writeArtifact(t, stumpArtifact))

	got, err := h.Predict(context.Background(), []string{"a", "b"}, [][]float64{
		{1, 0},  // raw -9.0
		{10, 0}, // raw 3.5
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3.5}, got)
}

func TestPredictReordersColumns(t *testing.T) {
	h := NewHandle(writeArtifact(t, stumpArtifact))

	// Caller supplies columns as (b, a); the wrapper must realign them.
	got, err := h.Predict(context.Background(), []string{"b", "a"}, [][]float64{{0, 10}})
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5}, got)
}

func TestPredictRejectsMismatchedColumns(t *testing.T) {
	h := NewHandle(writeArtifact(t, stumpArtifact))

	_, err := h.Predict(context.Background(), []string{"a", "c"}, [][]float64{{1, 2}})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeFeatureMismatch, apperr.CodeOf(err))
}

func TestPredictPreservesRowOrder(t *testing.T) {
	h := NewHandle(writeArtifact(t, stumpArtifact))

	got, err := h.Predict(context.Background(), []string{"a", "b"}, [][]float64{
		{10, 0}, {1, 0}, {6, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 0, 3.5}, got)
}

func TestMissingArtifactIsModelUnavailable(t *testing.T) {
	h := NewHandle(filepath.Join(t.TempDir(), "nope.json"))

	err := h.Preload()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeModelUnavailable, apperr.CodeOf(err))

	// The failed load is sticky: later calls surface the same category.
	_, err = h.Predict(context.Background(), []string{"a"}, [][]float64{{1}})
	assert.Equal(t, apperr.CodeModelUnavailable, apperr.CodeOf(err))
}

func TestCorruptArtifactFailsValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no features", `{"feature_names": [], "trees": [{"nodes": [{"feature": -1, "value": 1}]}]}`},
		{"no trees", `{"feature_names": ["a"], "trees": []}`},
		{"empty tree", `{"feature_names": ["a"], "trees": [{"nodes": []}]}`},
		{"bad feature index", `{"feature_names": ["a"], "trees": [{"nodes": [{"feature": 3, "threshold": 1, "left": 0, "right": 0}]}]}`},
		{"child out of range", `{"feature_names": ["a"], "trees": [{"nodes": [{"feature": 0, "threshold": 1, "left": 5, "right": 0}]}]}`},
		{"not json at all", `gradient boosting, but in prose`},
	}

	for _, tc := range cases {
		h := NewHandle(writeArtifact(t, tc.body))
		err := h.Preload()
		require.Error(t, err, tc.name)
		assert.Equal(t, apperr.CodeModelUnavailable, apperr.CodeOf(err), tc.name)
	}
}

func TestConcurrentFirstUseLoadsOnce(t *testing.T) {
	h := NewHandle(writeArtifact(t, stumpArtifact))

	var wg sync.WaitGroup
	results := make([][]float64, 16)
	errs := make([]error, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = h.Predict(context.Background(), []string{"a", "b"}, [][]float64{{10, 0}})
		}(i)
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []float64{3.5}, results[i])
	}
}
