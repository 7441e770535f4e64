package handlers

import (
	"net/http"

	"traffic-prediction-service/internal/model"
)

// HealthHandler reports service liveness and model artifact readiness.
type HealthHandler struct {
	Model *model.Handle
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	modelStatus := "ready"
	if h.Model == nil {
		modelStatus = "not configured"
	} else if _, err := h.Model.FeatureNames(); err != nil {
		modelStatus = "unavailable"
	}

	res := map[string]string{
		"status": "ok",
		"model":  modelStatus,
	}
	writeJSON(w, r, http.StatusOK, res)
}
