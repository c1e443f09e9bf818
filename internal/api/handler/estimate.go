// Package handler provides HTTP handlers for the CargoScope API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cargoscope/cargoscope/internal/api/response"
	"github.com/cargoscope/cargoscope/internal/emissions"
	"github.com/cargoscope/cargoscope/internal/geocode"
	"github.com/cargoscope/cargoscope/internal/location"
	"github.com/cargoscope/cargoscope/internal/refdata"
	"github.com/cargoscope/cargoscope/internal/routing"
)

// EstimateHandler handles shipment emission estimates.
type EstimateHandler struct {
	estimator *emissions.Service
	logger    zerolog.Logger
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(estimator *emissions.Service, logger zerolog.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimator: estimator,
		logger:    logger,
	}
}

// ComputeEstimate handles POST /v1/estimates:compute.
func (h *EstimateHandler) ComputeEstimate(w http.ResponseWriter, r *http.Request) {
	var req emissions.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON request body", nil)
		return
	}

	result, err := h.estimator.Estimate(r.Context(), req)
	if err != nil {
		h.writeEstimateError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// writeEstimateError maps the estimator's error taxonomy onto problem
// responses. Unrecognized errors become opaque 500s; the detail stays in the
// logs.
func (h *EstimateHandler) writeEstimateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, emissions.ErrMissingInput),
		errors.Is(err, emissions.ErrInvalidInput),
		errors.Is(err, location.ErrInvalidAirportCode):
		response.BadRequest(w, r, err.Error(), nil)

	case errors.Is(err, refdata.ErrNotFound):
		response.NotFound(w, r, err.Error())

	case errors.Is(err, routing.ErrProviderUnavailable),
		errors.Is(err, routing.ErrNoRouteFound),
		errors.Is(err, geocode.ErrProviderUnavailable):
		response.BadGateway(w, r, err.Error())

	default:
		h.logger.Error().Err(err).Msg("estimate computation failed")
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
