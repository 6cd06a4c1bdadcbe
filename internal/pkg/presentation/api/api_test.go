package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"

	"github.com/diwise/water-monitoring/internal/pkg/application/alerts"
	"github.com/diwise/water-monitoring/internal/pkg/application/audit"
	"github.com/diwise/water-monitoring/internal/pkg/application/credentials"
	"github.com/diwise/water-monitoring/internal/pkg/application/ingest"
	"github.com/diwise/water-monitoring/internal/pkg/application/protocols"
	"github.com/diwise/water-monitoring/internal/pkg/application/rules"
	"github.com/diwise/water-monitoring/internal/pkg/application/sensors"
	"github.com/diwise/water-monitoring/internal/pkg/presentation/api/auth"
	"github.com/diwise/water-monitoring/pkg/types"
)

func TestHealthEndpoint(t *testing.T) {
	is, router, _ := testRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/health", "", nil)

	is.Equal(resp.StatusCode, http.StatusNoContent)
}

func TestApiRequiresAToken(t *testing.T) {
	is, router, _ := testRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, _ := testRequest(is, server, http.MethodGet, "/api/v1/sensors", "", nil)

	is.Equal(resp.StatusCode, http.StatusUnauthorized)
}

func TestApiScopesQueriesToTheTokensTenants(t *testing.T) {
	is, router, registry := testRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, body := testRequest(is, server, http.MethodGet, "/api/v1/sensors", "Bearer sometoken", nil)

	is.Equal(resp.StatusCode, http.StatusOK)
	is.True(strings.Contains(body, "w-0042"))

	is.Equal(len(registry.QueryCalls()), 1)
	is.Equal(registry.QueryCalls()[0].Tenants, []string{"default"})
}

func TestIngestHandlerAcceptsAReading(t *testing.T) {
	is := is.New(t)

	svc := &ingest.IngestorMock{
		ProcessFunc: func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
			return ingest.Result{ReadingID: "reading-01", SensorID: "sensor-01", AlertIDs: []string{}}, nil
		},
	}

	req := ingestRequest("w-0042", `{"value": 3.42}`)
	req.Header.Add("Authorization", "Bearer a-valid-key")
	res := httptest.NewRecorder()

	ingestHandler(testLogger(), svc, newClientLimiter(0)).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.True(strings.Contains(res.Body.String(), "reading-01"))

	is.Equal(len(svc.ProcessCalls()), 1)

	params := svc.ProcessCalls()[0].Params
	is.Equal(params.DeviceID, "w-0042")
	is.Equal(params.Protocol, "http")
	is.Equal(params.Credentials.APIKey, "a-valid-key")
	is.Equal(params.Source.Channel, "post")
	is.True(params.EnforceKey)
}

func TestIngestHandlerRequiresABearerToken(t *testing.T) {
	is := is.New(t)

	svc := &ingest.IngestorMock{}

	req := ingestRequest("w-0042", `{"value": 3.42}`)
	res := httptest.NewRecorder()

	ingestHandler(testLogger(), svc, newClientLimiter(0)).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusUnauthorized)
	is.Equal(len(svc.ProcessCalls()), 0)
}

func TestIngestHandlerMapsOrchestratorErrors(t *testing.T) {
	testcases := []struct {
		err      error
		expected int
	}{
		{ingest.ErrUnknownDevice, http.StatusBadRequest},
		{ingest.ErrMalformedPayload, http.StatusBadRequest},
		{ingest.ErrMissingCredential, http.StatusUnauthorized},
		{ingest.ErrInvalidCredential, http.StatusForbidden},
		{ingest.ErrExpiredCredential, http.StatusForbidden},
		{ingest.ErrProtocolDisabled, http.StatusForbidden},
		{errors.New("the database is on fire"), http.StatusInternalServerError},
	}

	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%d", tc.expected), func(t *testing.T) {
			is := is.New(t)

			svc := &ingest.IngestorMock{
				ProcessFunc: func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
					return ingest.Result{}, tc.err
				},
			}

			req := ingestRequest("w-0042", `{"value": 3.42}`)
			req.Header.Add("Authorization", "Bearer a-valid-key")
			res := httptest.NewRecorder()

			ingestHandler(testLogger(), svc, newClientLimiter(0)).ServeHTTP(res, req)

			is.Equal(res.Code, tc.expected)
			is.True(strings.Contains(res.Body.String(), "detail"))
		})
	}
}

func TestIngestHandlerAppliesTheRateLimit(t *testing.T) {
	is := is.New(t)

	svc := &ingest.IngestorMock{
		ProcessFunc: func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
			return ingest.Result{ReadingID: "reading-01"}, nil
		},
	}

	handler := ingestHandler(testLogger(), svc, newClientLimiter(1))

	req := ingestRequest("w-0042", `{"value": 3.42}`)
	req.Header.Add("Authorization", "Bearer a-valid-key")

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	is.Equal(res.Code, http.StatusOK)

	req = ingestRequest("w-0042", `{"value": 3.43}`)
	req.Header.Add("Authorization", "Bearer a-valid-key")

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	is.Equal(res.Code, http.StatusTooManyRequests)

	is.Equal(len(svc.ProcessCalls()), 1)
}

func TestGatewayHandlerDecodesSMS(t *testing.T) {
	is := is.New(t)

	svc := &ingest.IngestorMock{
		ProcessFunc: func(ctx context.Context, params ingest.Params) (ingest.Result, error) {
			return ingest.Result{ReadingID: "reading-01"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest/gateway/sms", strings.NewReader("w-0042,3.42,bar"))
	req = withURLParam(req, "channel", "sms")
	res := httptest.NewRecorder()

	gatewayHandler(testLogger(), svc, newClientLimiter(0)).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(svc.ProcessCalls()), 1)

	params := svc.ProcessCalls()[0].Params
	is.Equal(params.DeviceID, "w-0042")
	is.Equal(params.Protocol, "gsm")
	is.Equal(params.Source.Channel, "sms")
	is.Equal(params.Payload["quality"], 0.7)
	is.True(!params.EnforceKey)
}

func TestGatewayHandlerRejectsUnknownChannels(t *testing.T) {
	is := is.New(t)

	svc := &ingest.IngestorMock{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest/gateway/email", strings.NewReader("w-0042,3.42"))
	req = withURLParam(req, "channel", "email")
	res := httptest.NewRecorder()

	gatewayHandler(testLogger(), svc, newClientLimiter(0)).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusNotFound)
	is.Equal(len(svc.ProcessCalls()), 0)
}

func TestGetSensorHidesOtherTenantsSensors(t *testing.T) {
	is := is.New(t)

	registry := &sensors.SensorRegistryMock{
		GetByDeviceIDFunc: func(ctx context.Context, deviceID string) (types.Sensor, error) {
			return types.Sensor{ID: "sensor-01", DeviceID: deviceID, Tenant: "someone-else"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sensors/w-0042", nil)
	req = withURLParam(req, "deviceID", "w-0042")
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	getSensorHandler(testLogger(), registry).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusNotFound)
}

func TestCreateSensorHandler(t *testing.T) {
	is := is.New(t)

	registry := &sensors.SensorRegistryMock{
		CreateFunc: func(ctx context.Context, sensor types.Sensor) (types.Sensor, error) {
			sensor.ID = "sensor-01"
			return sensor, nil
		},
	}

	auditLog := testAuditLog()

	body := `{"deviceID": "w-0042", "tenant": "default", "kind": {"code": "pressure"}}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sensors", strings.NewReader(body))
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	createSensorHandler(testLogger(), registry, auditLog).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusCreated)
	is.True(strings.Contains(res.Body.String(), "sensor-01"))
	is.Equal(len(registry.CreateCalls()), 1)

	is.Equal(len(auditLog.LogCalls()), 1)
	is.Equal(auditLog.LogCalls()[0].Entry.Action, "sensor.created")
	is.Equal(auditLog.LogCalls()[0].Entry.ResourceID, "w-0042")
}

func TestCreateSensorRejectsForeignTenants(t *testing.T) {
	is := is.New(t)

	registry := &sensors.SensorRegistryMock{}

	body := `{"deviceID": "w-0042", "tenant": "someone-else", "kind": {"code": "pressure"}}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sensors", strings.NewReader(body))
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	createSensorHandler(testLogger(), registry, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusForbidden)
	is.Equal(len(registry.CreateCalls()), 0)
}

func TestPatchSensorOnlyTouchesProvidedFields(t *testing.T) {
	is := is.New(t)

	registry := &sensors.SensorRegistryMock{
		GetByDeviceIDFunc: func(ctx context.Context, deviceID string) (types.Sensor, error) {
			return types.Sensor{
				ID:          "sensor-01",
				DeviceID:    deviceID,
				Name:        "Reservoir north",
				Description: "monitors the northern reservoir",
				Tenant:      "default",
				Status:      types.SensorStatusActive,
			}, nil
		},
		UpdateFunc: func(ctx context.Context, sensor types.Sensor, tenants []string) error {
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sensors/w-0042", strings.NewReader(`{"name": "Reservoir north east"}`))
	req = withURLParam(req, "deviceID", "w-0042")
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	patchSensorHandler(testLogger(), registry, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(registry.UpdateCalls()), 1)
	is.Equal(len(registry.SetStatusCalls()), 0)

	updated := registry.UpdateCalls()[0].Sensor
	is.Equal(updated.Name, "Reservoir north east")
	is.Equal(updated.Description, "monitors the northern reservoir")
	is.Equal(updated.ID, "sensor-01")
}

func TestPatchSensorPublishesStatusChanges(t *testing.T) {
	is := is.New(t)

	registry := &sensors.SensorRegistryMock{
		GetByDeviceIDFunc: func(ctx context.Context, deviceID string) (types.Sensor, error) {
			return types.Sensor{ID: "sensor-01", DeviceID: deviceID, Tenant: "default", Status: types.SensorStatusActive}, nil
		},
		UpdateFunc: func(ctx context.Context, sensor types.Sensor, tenants []string) error {
			return nil
		},
		SetStatusFunc: func(ctx context.Context, sensorID, status string, tenants []string) error {
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sensors/w-0042", strings.NewReader(`{"status": "maintenance"}`))
	req = withURLParam(req, "deviceID", "w-0042")
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	patchSensorHandler(testLogger(), registry, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(registry.SetStatusCalls()), 1)
	is.Equal(registry.SetStatusCalls()[0].Status, types.SensorStatusMaintenance)
}

func TestRegisterCredentialsDefaultsToAPIKeys(t *testing.T) {
	is := is.New(t)

	registry := &sensors.SensorRegistryMock{
		GetByDeviceIDFunc: func(ctx context.Context, deviceID string) (types.Sensor, error) {
			return types.Sensor{ID: "sensor-01", DeviceID: deviceID, Tenant: "default"}, nil
		},
	}

	creds := &credentials.DeviceCredentialsMock{
		RegisterFunc: func(ctx context.Context, sensorID, deviceID, method, material string) (credentials.Registration, error) {
			return credentials.Registration{SensorID: sensorID, DeviceID: deviceID, Method: method, APIKey: "a-new-key"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sensors/w-0042/credentials", nil)
	req = withURLParam(req, "deviceID", "w-0042")
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	registerCredentialsHandler(testLogger(), registry, creds, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusCreated)
	is.True(strings.Contains(res.Body.String(), "a-new-key"))

	is.Equal(len(creds.RegisterCalls()), 1)
	is.Equal(creds.RegisterCalls()[0].SensorID, "sensor-01")
	is.Equal(creds.RegisterCalls()[0].Method, credentials.MethodAPIKey)
}

func TestAcknowledgeAlertHandler(t *testing.T) {
	is := is.New(t)

	svc := &alerts.AlertServiceMock{
		GetFunc: func(ctx context.Context, alertID string, tenants []string) (types.Alert, error) {
			return types.Alert{ID: alertID, Tenant: "default", Status: types.AlertStatusOpen}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, alertID, tenant, status, actor, note string) (types.Alert, error) {
			return types.Alert{ID: alertID, Tenant: tenant, Status: status, AcknowledgedBy: actor}, nil
		},
	}

	auditLog := testAuditLog()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/alert-01/acknowledge", strings.NewReader(`{"by": "operator@example.com"}`))
	req = withURLParam(req, "alertID", "alert-01")
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	acknowledgeAlertHandler(testLogger(), svc, auditLog).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(svc.UpdateStatusCalls()), 1)
	is.Equal(svc.UpdateStatusCalls()[0].Status, types.AlertStatusAcknowledged)
	is.Equal(svc.UpdateStatusCalls()[0].Actor, "operator@example.com")
	is.Equal(svc.UpdateStatusCalls()[0].Tenant, "default")

	is.Equal(len(auditLog.LogCalls()), 1)
	is.Equal(auditLog.LogCalls()[0].Entry.Action, "alert.acknowledged")
	is.Equal(auditLog.LogCalls()[0].Entry.Actor, "operator@example.com")
}

func TestAcknowledgeAlertRequiresAnActor(t *testing.T) {
	is := is.New(t)

	svc := &alerts.AlertServiceMock{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/alert-01/acknowledge", strings.NewReader(`{}`))
	req = withURLParam(req, "alertID", "alert-01")
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	acknowledgeAlertHandler(testLogger(), svc, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusBadRequest)
	is.Equal(len(svc.UpdateStatusCalls()), 0)
}

func TestPatchAlertRejectsBackwardTransitions(t *testing.T) {
	is := is.New(t)

	svc := &alerts.AlertServiceMock{
		GetFunc: func(ctx context.Context, alertID string, tenants []string) (types.Alert, error) {
			return types.Alert{ID: alertID, Tenant: "default", Status: types.AlertStatusResolved}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, alertID, tenant, status, actor, note string) (types.Alert, error) {
			return types.Alert{}, fmt.Errorf("%w: resolved to open", alerts.ErrInvalidTransition)
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/alerts/alert-01", strings.NewReader(`{"status": "open", "by": "operator@example.com"}`))
	req = withURLParam(req, "alertID", "alert-01")
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	patchAlertHandler(testLogger(), svc, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusConflict)
}

func TestSetProtocolPolicyHandler(t *testing.T) {
	is := is.New(t)

	svc := &protocols.ProtocolPoliciesMock{
		SetFunc: func(ctx context.Context, policy types.ProtocolPolicy) error {
			return nil
		},
	}

	body := `{"protocol": "mqtt", "tenant": "default", "enabled": false}`

	req := httptest.NewRequest(http.MethodPut, "/api/v1/protocols", strings.NewReader(body))
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	setProtocolHandler(testLogger(), svc, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(len(svc.SetCalls()), 1)
	is.Equal(svc.SetCalls()[0].Policy.Protocol, "mqtt")
	is.True(!svc.SetCalls()[0].Policy.Enabled)
}

func TestGlobalProtocolPoliciesNeedGlobalAccess(t *testing.T) {
	is := is.New(t)

	svc := &protocols.ProtocolPoliciesMock{}

	body := `{"protocol": "mqtt", "enabled": false}`

	req := httptest.NewRequest(http.MethodPut, "/api/v1/protocols", strings.NewReader(body))
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	setProtocolHandler(testLogger(), svc, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusForbidden)
	is.Equal(len(svc.SetCalls()), 0)
}

func TestCreateRuleHandler(t *testing.T) {
	is := is.New(t)

	svc := &rules.RuleEngineMock{
		CreateFunc: func(ctx context.Context, rule types.DynamicRule) (types.DynamicRule, error) {
			rule.ID = "rule-01"
			return rule, nil
		},
	}

	rule := types.DynamicRule{
		Tenant:     "default",
		Name:       "high pressure",
		Combinator: types.CombinatorAll,
		Predicates: []types.RulePredicate{{Operator: types.OperatorGreaterThan, Value: 8}},
	}

	b, _ := json.Marshal(rule)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rules", bytes.NewReader(b))
	req = req.WithContext(auth.WithAllowedTenants(req.Context(), []string{"default"}))
	res := httptest.NewRecorder()

	createRuleHandler(testLogger(), svc, testAuditLog()).ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusCreated)
	is.True(strings.Contains(res.Body.String(), "rule-01"))
	is.Equal(len(svc.CreateCalls()), 1)
}

func testRouter(t *testing.T) (*is.I, *chi.Mux, *sensors.SensorRegistryMock) {
	is := is.New(t)

	registry := &sensors.SensorRegistryMock{
		QueryFunc: func(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.Sensor], error) {
			return types.Collection[types.Sensor]{
				Data:       []types.Sensor{{ID: "sensor-01", DeviceID: "w-0042", Tenant: "default"}},
				Count:      1,
				TotalCount: 1,
			}, nil
		},
	}

	svcs := Services{
		Ingest:      &ingest.IngestorMock{},
		Sensors:     registry,
		Credentials: &credentials.DeviceCredentialsMock{},
		Alerts:      &alerts.AlertServiceMock{},
		Rules:       &rules.RuleEngineMock{},
		Protocols:   &protocols.ProtocolPoliciesMock{},
		Audit:       testAuditLog(),
	}

	router, err := RegisterHandlers(context.Background(), chi.NewRouter(), strings.NewReader(testPolicy), svcs, 0)
	is.NoErr(err)

	return is, router, registry
}

func testRequest(is *is.I, ts *httptest.Server, method, path, authorization string, body io.Reader) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, body)
	if authorization != "" {
		req.Header.Add("Authorization", authorization)
	}

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err)

	respBody, _ := io.ReadAll(resp.Body)
	defer resp.Body.Close()

	return resp, string(respBody)
}

func ingestRequest(deviceID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest/sensors/"+deviceID+"/data", strings.NewReader(body))
	return withURLParam(req, "deviceID", deviceID)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAuditLog() *audit.AuditLogMock {
	return &audit.AuditLogMock{
		LogFunc: func(ctx context.Context, entry types.AuditEntry) {},
	}
}

const testPolicy = `package water.authz

default allow := false

allow := {"access": {"default": ["read", "write"]}} if {
	input.token != ""
}
`
