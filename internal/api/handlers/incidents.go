package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"traffic-prediction-service/internal/api/dto"
	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/ports"
)

const defaultIncidentListLimit = 50

// IncidentHandler exposes incident reporting and retrieval endpoints.
type IncidentHandler struct {
	Repo     ports.IncidentRepository
	Validate *validator.Validate
	Now      func() time.Time
}

func (h *IncidentHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

// Report accepts an incident report and acknowledges it. Reports feed future
// model retraining; they do not alter in-flight predictions.
func (h *IncidentHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req dto.IncidentRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeValidationError(w, r, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeValidationError(w, r, "body must contain only one JSON object")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, r, validationMessage(err))
		return
	}

	incident := &domain.IncidentReport{
		IncidentID:  uuid.NewString(),
		Location:    strings.TrimSpace(req.Location),
		Type:        strings.TrimSpace(req.Type),
		Severity:    req.Severity,
		Description: strings.TrimSpace(req.Description),
		ReportedAt:  h.now(),
	}

	if err := h.Repo.SaveIncident(r.Context(), incident); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.IncidentAckResponse{
		IncidentID: incident.IncidentID,
		Status:     "received",
	})
}

// List returns the most recently reported incidents.
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultIncidentListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			writeValidationError(w, r, "limit must be an integer between 1 and 500")
			return
		}
		limit = parsed
	}

	incidents, err := h.Repo.ListIncidents(r.Context(), limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	res := dto.ListIncidentsResponse{
		Incidents: make([]dto.IncidentResponse, 0, len(incidents)),
	}
	for _, inc := range incidents {
		res.Incidents = append(res.Incidents, dto.IncidentResponse{
			IncidentID:  inc.IncidentID,
			Location:    inc.Location,
			Type:        inc.Type,
			Severity:    inc.Severity,
			Description: inc.Description,
			ReportedAt:  inc.ReportedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
