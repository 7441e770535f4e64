package ports

import "context"

// Contract for the opaque pre-trained delay model.
type DelayModel interface {
	// Predict one non-negative delay (minutes) per feature row, in row order.
	// featureNames describes the column order of rows; implementations
	// reorder columns to match the fitted artifact and must reject
	// mismatched column sets.
	Predict(ctx context.Context, featureNames []string, rows [][]float64) ([]float64, error)
}
