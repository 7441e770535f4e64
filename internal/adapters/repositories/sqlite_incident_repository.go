package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"traffic-prediction-service/internal/domain"
)

// SQLite-backed implementation of the IncidentRepository port.
type SqliteIncidentRepository struct{ DB *sql.DB }

func NewSqliteIncidentRepository(db *sql.DB) *SqliteIncidentRepository {
	return &SqliteIncidentRepository{DB: db}
}

// Persist a reported incident.
func (s *SqliteIncidentRepository) SaveIncident(ctx context.Context, incident *domain.IncidentReport) error {
	if s.DB == nil {
		return errors.New("sqlite incident repository: DB is nil")
	}
	if incident == nil {
		return errors.New("sqlite incident repository: incident is nil")
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
	VALUES (?, ?, ?, ?, ?, ?);
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
func (s *SqliteIncidentRepository) ListIncidents(ctx context.Context, limit int) ([]*domain.IncidentReport, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite incident repository: DB is nil")
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
	LIMIT ?;
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
