package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargoscope/cargoscope/internal/api"
	"github.com/cargoscope/cargoscope/internal/api/handler"
	"github.com/cargoscope/cargoscope/internal/api/models"
	"github.com/cargoscope/cargoscope/internal/auth"
	"github.com/cargoscope/cargoscope/internal/emissions"
	"github.com/cargoscope/cargoscope/internal/location"
	"github.com/cargoscope/cargoscope/internal/refdata"
)

func testTokenService() *auth.TokenService {
	return auth.NewTokenService(auth.TokenConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.cargoscope.test",
		Audience:   "cargoscope-api",
	})
}

func testTables() *refdata.Tables {
	return &refdata.Tables{
		Locodes: refdata.NewLocodeTable([]refdata.Locode{
			{Code: "USNYC", Coordinates: "4042N 07400W"},
			{Code: "NLRTM", Coordinates: "5155N 00430E"},
		}),
		Airports: refdata.NewAirportTable([]refdata.Airport{
			{IATA: "JFK", ICAO: "KJFK", Latitude: 40.6398, Longitude: -73.7789},
			{IATA: "SFO", ICAO: "KSFO", Latitude: 37.6190, Longitude: -122.3750},
		}),
		Factors: refdata.NewEmissionFactorTable([]refdata.EmissionFactor{
			{Method: "cargo_plane_long_haul", IsElectric: "no", Factor: 0.6},
			{Method: "cargo_plane_short_haul", IsElectric: "no", Factor: 1.1},
			{Method: "truck", IsElectric: "no", Factor: 0.1, DistanceMethod: "land"},
		}),
		Intensity: refdata.NewElectricityIntensityTable([]refdata.ElectricityIntensity{
			{CountryCode: refdata.GlobalAverageCode, Value: 0.5},
		}),
	}
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	tables := testTables()

	resolver := location.NewResolver(location.ResolverConfig{
		Locodes:  tables.Locodes,
		Airports: tables.Airports,
		Logger:   logger,
	})
	estimator := emissions.NewService(emissions.ServiceConfig{
		Resolver:  resolver,
		Factors:   tables.Factors,
		Intensity: tables.Intensity,
		Logger:    logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "2026-01-01T00:00:00Z",
		Logger:    logger,
		Tokens:    testTokenService(),
		Estimator: estimator,
		Tables:    tables,
		Providers: []handler.ProviderProbe{
			{Name: "mapbox", State: func() string { return "closed" }},
			{Name: "mapbox-geocoding", State: func() string { return "closed" }},
		},
	})
}

// addAuthHeader adds a valid service bearer token to the request.
func addAuthHeader(t *testing.T, req *http.Request) {
	t.Helper()
	token, _, err := testTokenService().Generate("router-test")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.NotEmpty(t, health.Time)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var ready models.Readiness
	err := json.Unmarshal(w.Body.Bytes(), &ready)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, ready.Status)
	assert.Equal(t, 2, ready.Tables["locodes"])
	assert.Equal(t, 2, ready.Tables["airports"])
	assert.Equal(t, 3, ready.Tables["emission_factors"])
	assert.Equal(t, 1, ready.Tables["electricity_intensity"])
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.SystemStatus
	err := json.Unmarshal(w.Body.Bytes(), &status)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, status.Status)
	assert.NotEmpty(t, status.Subsystems)
	require.Len(t, status.Providers, 2)
	assert.Equal(t, "closed", status.Providers[0].BreakerState)
}

func TestRouter_SystemStatus_RequiresToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_ComputeEstimate(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{
		"shipment": {"mass": {"amount": 10, "unit": "t"}},
		"route": {
			"source": {"airport_code": "JFK"},
			"destination": {"airport_code": "SFO"}
		},
		"method": {"method": "cargo_plane"}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/estimates:compute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result emissions.Result
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, "great_circle_distance", result.DistanceCalculationMethod)
	assert.Equal(t, "cargo_plane_long_haul", result.EmissionFactorCalculationMethod)
	assert.InDelta(t, 4150, result.Distance, 50)
	assert.Greater(t, result.Emissions, 0.0)
}

func TestRouter_ComputeEstimate_ValidationError(t *testing.T) {
	router := newTestRouter()

	// Missing method
	body := []byte(`{
		"shipment": {"mass": {"amount": 10, "unit": "t"}},
		"route": {"distance": 100, "unit": "km"}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/estimates:compute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.NotEmpty(t, problem.TraceID)
}

func TestRouter_ComputeEstimate_UnknownLocode(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{
		"shipment": {"containers": 1},
		"route": {
			"source": {"locode": {"locode": "ZZZZZ"}},
			"destination": {"locode": {"locode": "NLRTM"}}
		},
		"method": {"method": "cargo_plane"}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/estimates:compute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var problem models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &problem)
	require.NoError(t, err)
	assert.Equal(t, models.ProblemTypeNotFound, problem.Type)
}

func TestRouter_ComputeEstimate_InvalidJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/estimates:compute", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RequestID_Generated(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID)
	assert.Contains(t, requestID, "req_")
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "custom_request_id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "custom_request_id", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
