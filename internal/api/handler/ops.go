package handler

import (
	"net/http"
	"time"

	"github.com/cargoscope/cargoscope/internal/api/models"
	"github.com/cargoscope/cargoscope/internal/api/response"
	"github.com/cargoscope/cargoscope/internal/refdata"
)

// ProviderProbe reports an external provider's circuit-breaker state for the
// status endpoint.
type ProviderProbe struct {
	Name  string
	State func() string
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	tables    *refdata.Tables
	providers []ProviderProbe
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, tables *refdata.Tables, providers []ProviderProbe) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		tables:    tables,
		providers: providers,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service is
// ready once all four reference tables hold rows.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ready := models.Readiness{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Tables: map[string]int{},
	}

	status := http.StatusOK
	if h.tables == nil {
		ready.Status = models.HealthStatusFail
		status = http.StatusServiceUnavailable
	} else {
		ready.Tables["locodes"] = h.tables.Locodes.Len()
		ready.Tables["airports"] = h.tables.Airports.Len()
		ready.Tables["emission_factors"] = h.tables.Factors.Len()
		ready.Tables["electricity_intensity"] = h.tables.Intensity.Len()
		for _, count := range ready.Tables {
			if count == 0 {
				ready.Status = models.HealthStatusFail
				status = http.StatusServiceUnavailable
				break
			}
		}
	}

	response.JSON(w, r, status, ready)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
	}

	refdataStatus := models.HealthStatusOK
	if h.tables == nil || h.tables.Factors.Len() == 0 {
		refdataStatus = models.HealthStatusFail
		status.Status = models.HealthStatusDegraded
	}
	status.Subsystems = append(status.Subsystems, models.SubsystemStatus{
		Name:   "reference-data",
		Status: refdataStatus,
	})

	for _, p := range h.providers {
		providerStatus := models.HealthStatusOK
		state := p.State()
		if state == "open" {
			providerStatus = models.HealthStatusDegraded
			status.Status = models.HealthStatusDegraded
		}
		status.Providers = append(status.Providers, models.ProviderStatus{
			Provider:     p.Name,
			Status:       providerStatus,
			BreakerState: state,
		})
	}

	response.JSON(w, r, http.StatusOK, status)
}
