package domain

import "time"

// IncidentReport is a user-submitted traffic incident. Reports are stored and
// acknowledged; they do not feed the prediction pipeline.
type IncidentReport struct {
	IncidentID  string
	Location    string
	Type        string
	Severity    string
	Description string
	ReportedAt  time.Time
}
