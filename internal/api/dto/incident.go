package dto

import "time"

type IncidentRequest struct {
	Location    string `json:"location" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high"`
	Description string `json:"description" validate:"max=500"`
}

type IncidentAckResponse struct {
	IncidentID string `json:"incident_id"`
	Status     string `json:"status"`
}

type IncidentResponse struct {
	IncidentID  string    `json:"incident_id"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reported_at"`
}

type ListIncidentsResponse struct {
	Incidents []IncidentResponse `json:"incidents"`
}
