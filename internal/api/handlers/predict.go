package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"traffic-prediction-service/internal/api/dto"
	"traffic-prediction-service/internal/domain"
	"traffic-prediction-service/internal/services"
)

// PredictHandler exposes the route prediction endpoint.
type PredictHandler struct {
	Service  *services.PredictionService
	Validate *validator.Validate
}

// Predict runs the full prediction flow: decode and validate the query,
// resolve endpoints, fetch alternatives, evaluate and rank them.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictRequest

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

	trip := services.TripQuery{
		Source:             strings.TrimSpace(req.Source),
		Destination:        strings.TrimSpace(req.Destination),
		TravelDay:          strings.TrimSpace(req.TravelDay),
		TravelTime:         strings.TrimSpace(req.TravelTime),
		Weather:            domain.Weather(strings.TrimSpace(req.Weather)),
		VehicleType:        strings.TrimSpace(req.VehicleType),
		UrgencyLevel:       strings.TrimSpace(req.UrgencyLevel),
		PreferredRouteType: strings.TrimSpace(req.PreferredRouteType),
	}

	summary, err := h.Service.PredictTrip(r.Context(), trip)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPredictResponse(summary))
}

func toPredictResponse(summary *domain.PredictionSummary) dto.PredictResponse {
	routes := make([]dto.RouteResponse, 0, len(summary.Routes))
	for _, rt := range summary.Routes {
		geometry := make([][]float64, 0, len(rt.Geometry))
		for _, c := range rt.Geometry {
			geometry = append(geometry, c.LatLon())
		}

		routes = append(routes, dto.RouteResponse{
			Rank:            rt.Rank,
			Name:            rt.Name,
			DistanceKM:      rt.DistanceKM,
			BaseDurationMin: rt.BaseDurationMin,
			PredictedDelay:  rt.PredictedDelay,
			PredictedTime:   rt.FinalTime,
			Risk:            rt.Risk,
			RiskScore:       rt.RiskScore,
			CongestionLevel: rt.CongestionLevel,
			Recommended:     rt.Recommended,
			Confidence:      rt.Confidence,
			PeakHour:        rt.PeakHour,
			WeatherNote:     rt.WeatherNote,
			Geometry:        geometry,
		})
	}

	return dto.PredictResponse{
		Routes:             routes,
		Confidence:         summary.Confidence,
		AverageRiskScore:   summary.AverageRiskScore,
		TopCongestionLevel: summary.TopCongestionLevel,
		PeakHour:           summary.PeakHour,
		WeatherNote:        summary.WeatherNote,
	}
}

// validationMessage flattens validator output into a short client-facing
// message naming the offending fields.
func validationMessage(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		log.Printf("validate request: %v", err)
		return "invalid request"
	}

	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return "invalid fields: " + strings.Join(fields, ", ")
}
