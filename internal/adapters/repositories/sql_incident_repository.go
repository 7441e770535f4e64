package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"traffic-prediction-service/internal/domain"
)

// Postgres-backed implementation of the IncidentRepository port.
type SQLIncidentRepository struct{ DB *sql.DB }

func NewSQLIncidentRepository(db *sql.DB) *SQLIncidentRepository {
	return &SQLIncidentRepository{DB: db}
}

// Create the incidents table if it does not exist.
func (s *SQLIncidentRepository) InitSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sql incident repository: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS incidents (
		incident_id TEXT PRIMARY KEY,
		location TEXT NOT NULL,
		type TEXT NOT NULL,
		severity TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		reported_at TIMESTAMPTZ NOT NULL
	);
	`
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init incidents schema: %w", err)
	}

	return nil
}

// Persist a reported incident.
func (s *SQLIncidentRepository) SaveIncident(ctx context.Context, incident *domain.IncidentReport) error {
	if s.DB == nil {
		return errors.New("sql incident repository: DB is nil")
	}
	if incident == nil {
		return errors.New("sql incident repository: incident is nil")
	}

	query := `
	INSERT INTO incidents (
		incident_id,
		location,
		type,
		severity,
		description,
		reported_at
	)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := s.DB.ExecContext(
		ctx, query,
		incident.IncidentID,
		incident.Location,
		incident.Type,
		incident.Severity,
		incident.Description,
		incident.ReportedAt,
	)
	if err != nil {
		return fmt.Errorf("save incident %q: %w", incident.IncidentID, err)
	}

	return nil
}

// Return the most recently reported incidents, newest first.
func (s *SQLIncidentRepository) ListIncidents(ctx context.Context, limit int) ([]*domain.IncidentReport, error) {
	if s.DB == nil {
		return nil, errors.New("sql incident repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT
		incident_id,
		location,
		type,
		severity,
		description,
		reported_at
	FROM incidents
	ORDER BY reported_at DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list incidents: query incidents table: %w", err)
	}
	defer rows.Close()

	incidents := make([]*domain.IncidentReport, 0, limit)
	for rows.Next() {
		var inc domain.IncidentReport
		err := rows.Scan(
			&inc.IncidentID,
			&inc.Location,
			&inc.Type,
			&inc.Severity,
			&inc.Description,
			&inc.ReportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list incidents: scan row: %w", err)
		}
		incidents = append(incidents, &inc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list incidents: row iteration: %w", err)
	}

	return incidents, nil
}
