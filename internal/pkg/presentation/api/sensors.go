package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/internal/pkg/application/audit"
	"github.com/diwise/water-monitoring/internal/pkg/application/credentials"
	"github.com/diwise/water-monitoring/internal/pkg/application/sensors"
	"github.com/diwise/water-monitoring/internal/pkg/presentation/api/auth"
	"github.com/diwise/water-monitoring/pkg/types"
)

func querySensorsHandler(log *slog.Logger, svc sensors.SensorRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "query-sensors")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := svc.Query(ctx, r.URL.Query(), allowedTenants)
		if err != nil {
			requestLogger.Error("unable to fetch sensors", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to fetch sensors")
			return
		}

		accept := r.Header.Get("Accept")

		switch {
		case strings.Contains(accept, "application/geo+json"):
			fc, err := NewFeatureCollectionWithSensors(collection.Data)
			if err != nil {
				requestLogger.Error("unable to convert sensors", "err", err.Error())
				writeError(w, http.StatusInternalServerError, "unable to convert sensors")
				return
			}

			b, _ := json.Marshal(fc)
			w.Header().Add("Content-Type", "application/geo+json")
			w.WriteHeader(http.StatusOK)
			w.Write(b)

		case strings.Contains(accept, "text/csv"):
			w.Header().Add("Content-Type", "text/csv")
			w.WriteHeader(http.StatusOK)
			err = writeCsvWithSensors(w, collection.Data)
			if err != nil {
				requestLogger.Error("unable to write csv", "err", err.Error())
			}

		default:
			writeJson(w, http.StatusOK, NewApiResponse(collection, r.URL))
		}
	}
}

func getSensorHandler(log *slog.Logger, svc sensors.SensorRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "get-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		sensor, err := fetchSensorForTenants(ctx, svc, deviceID, allowedTenants)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorNotFound) {
				requestLogger.Debug("sensor not found")
				writeError(w, http.StatusNotFound, "sensor not found")
				return
			}
			requestLogger.Error("could not fetch sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch sensor")
			return
		}

		writeJson(w, http.StatusOK, ApiResponse{Data: sensor})
	}
}

func createSensorHandler(log *slog.Logger, svc sensors.SensorRegistry, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "create-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		var sensor types.Sensor
		err = json.Unmarshal(body, &sensor)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid sensor document")
			return
		}

		if !slices.Contains(allowedTenants, sensor.Tenant) {
			err = errors.New("tenant not allowed")
			requestLogger.Warn(err.Error(), "tenant", sensor.Tenant)
			writeError(w, http.StatusForbidden, "access to tenant denied")
			return
		}

		created, err := svc.Create(ctx, sensor)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorAlreadyExist) {
				writeError(w, http.StatusConflict, "sensor already exists")
				return
			}
			requestLogger.Error("unable to create sensor", "err", err.Error())
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "sensor.created",
			ResourceType: "sensor",
			ResourceID:   created.DeviceID,
			Meta:         map[string]any{"tenant": created.Tenant},
		})

		writeJson(w, http.StatusCreated, ApiResponse{Data: created})
	}
}

func patchSensorHandler(log *slog.Logger, svc sensors.SensorRegistry, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "patch-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		sensor, err := fetchSensorForTenants(ctx, svc, deviceID, allowedTenants)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorNotFound) {
				requestLogger.Debug("sensor not found")
				writeError(w, http.StatusNotFound, "sensor not found")
				return
			}
			requestLogger.Error("could not fetch sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch sensor")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		// unmarshalling on top of the stored sensor only touches the fields
		// that are present in the patch
		patched := sensor
		err = json.Unmarshal(body, &patched)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid patch document")
			return
		}

		patched.ID = sensor.ID

		if patched.Status != sensor.Status {
			err = svc.SetStatus(ctx, sensor.ID, patched.Status, allowedTenants)
			if err != nil {
				requestLogger.Error("unable to update sensor status", "err", err.Error())
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		err = svc.Update(ctx, patched, allowedTenants)
		if err != nil {
			requestLogger.Error("unable to update sensor", "err", err.Error())
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		changes := map[string]any{}
		_ = json.Unmarshal(body, &changes)

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "sensor.updated",
			ResourceType: "sensor",
			ResourceID:   deviceID,
			Changes:      changes,
		})

		writeJson(w, http.StatusOK, ApiResponse{Data: patched})
	}
}

func deleteSensorHandler(log *slog.Logger, svc sensors.SensorRegistry, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "delete-sensor")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		sensor, err := fetchSensorForTenants(ctx, svc, deviceID, allowedTenants)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorNotFound) {
				requestLogger.Debug("sensor not found")
				writeError(w, http.StatusNotFound, "sensor not found")
				return
			}
			requestLogger.Error("could not fetch sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch sensor")
			return
		}

		err = svc.Delete(ctx, sensor.ID, allowedTenants)
		if err != nil {
			requestLogger.Error("unable to delete sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to delete sensor")
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "sensor.deleted",
			ResourceType: "sensor",
			ResourceID:   deviceID,
			Meta:         map[string]any{"tenant": sensor.Tenant},
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

func registerCredentialsHandler(log *slog.Logger, registry sensors.SensorRegistry, svc credentials.DeviceCredentials, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "register-credentials")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		sensor, err := fetchSensorForTenants(ctx, registry, deviceID, allowedTenants)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorNotFound) {
				requestLogger.Debug("sensor not found")
				writeError(w, http.StatusNotFound, "sensor not found")
				return
			}
			requestLogger.Error("could not fetch sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch sensor")
			return
		}

		registration := struct {
			Method   string `json:"method"`
			Material string `json:"material"`
		}{Method: credentials.MethodAPIKey}

		body, _ := io.ReadAll(r.Body)
		if len(body) > 0 {
			err = json.Unmarshal(body, &registration)
			if err != nil {
				requestLogger.Error("unable to unmarshal body", "err", err.Error())
				writeError(w, http.StatusBadRequest, "invalid registration document")
				return
			}
		}

		result, err := svc.Register(ctx, sensor.ID, deviceID, registration.Method, registration.Material)
		if err != nil {
			if errors.Is(err, credentials.ErrAlreadyExist) {
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			requestLogger.Error("unable to register credentials", "err", err.Error())
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		requestLogger.Info("credentials registered", "method", registration.Method)

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "credentials.registered",
			ResourceType: "device_credentials",
			ResourceID:   deviceID,
			Meta:         map[string]any{"method": registration.Method},
		})

		writeJson(w, http.StatusCreated, ApiResponse{Data: result})
	}
}

func refreshAPIKeyHandler(log *slog.Logger, registry sensors.SensorRegistry, svc credentials.DeviceCredentials, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "refresh-api-key")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		_, err = fetchSensorForTenants(ctx, registry, deviceID, allowedTenants)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorNotFound) {
				requestLogger.Debug("sensor not found")
				writeError(w, http.StatusNotFound, "sensor not found")
				return
			}
			requestLogger.Error("could not fetch sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch sensor")
			return
		}

		result, err := svc.RefreshAPIKey(ctx, deviceID)
		if err != nil {
			if errors.Is(err, credentials.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			requestLogger.Error("unable to refresh api key", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to refresh api key")
			return
		}

		requestLogger.Info("api key rotated")

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "credentials.refreshed",
			ResourceType: "device_credentials",
			ResourceID:   deviceID,
		})

		writeJson(w, http.StatusOK, ApiResponse{Data: result})
	}
}

func generateCertificateHandler(log *slog.Logger, registry sensors.SensorRegistry, svc credentials.DeviceCredentials, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "generate-certificate")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		_, err = fetchSensorForTenants(ctx, registry, deviceID, allowedTenants)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorNotFound) {
				requestLogger.Debug("sensor not found")
				writeError(w, http.StatusNotFound, "sensor not found")
				return
			}
			requestLogger.Error("could not fetch sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch sensor")
			return
		}

		request := struct {
			CommonName   string `json:"common_name"`
			ValidityDays int    `json:"validity_days"`
		}{}

		body, _ := io.ReadAll(r.Body)
		if len(body) > 0 {
			err = json.Unmarshal(body, &request)
			if err != nil {
				requestLogger.Error("unable to unmarshal body", "err", err.Error())
				writeError(w, http.StatusBadRequest, "invalid certificate request")
				return
			}
		}

		result, err := svc.GenerateCertificate(ctx, deviceID, request.CommonName, request.ValidityDays)
		if err != nil {
			if errors.Is(err, credentials.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			requestLogger.Error("unable to generate certificate", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to generate certificate")
			return
		}

		requestLogger.Info("client certificate issued")

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "credentials.certificate_issued",
			ResourceType: "device_credentials",
			ResourceID:   deviceID,
		})

		writeJson(w, http.StatusOK, ApiResponse{Data: result})
	}
}

func deactivateCredentialsHandler(log *slog.Logger, registry sensors.SensorRegistry, svc credentials.DeviceCredentials, auditLog audit.AuditLog) http.HandlerFunc {
	return setCredentialsActiveHandler(log, registry, svc, auditLog, false)
}

func reactivateCredentialsHandler(log *slog.Logger, registry sensors.SensorRegistry, svc credentials.DeviceCredentials, auditLog audit.AuditLog) http.HandlerFunc {
	return setCredentialsActiveHandler(log, registry, svc, auditLog, true)
}

func setCredentialsActiveHandler(log *slog.Logger, registry sensors.SensorRegistry, svc credentials.DeviceCredentials, auditLog audit.AuditLog, active bool) http.HandlerFunc {
	spanName, action := "deactivate-credentials", "credentials.deactivated"
	if active {
		spanName, action = "reactivate-credentials", "credentials.reactivated"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), spanName)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		_, err = fetchSensorForTenants(ctx, registry, deviceID, allowedTenants)
		if err != nil {
			if errors.Is(err, sensors.ErrSensorNotFound) {
				requestLogger.Debug("sensor not found")
				writeError(w, http.StatusNotFound, "sensor not found")
				return
			}
			requestLogger.Error("could not fetch sensor", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch sensor")
			return
		}

		if active {
			err = svc.Reactivate(ctx, deviceID)
		} else {
			err = svc.Deactivate(ctx, deviceID)
		}

		if err != nil {
			if errors.Is(err, credentials.ErrNotFound) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			requestLogger.Error("unable to update credential state", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to update credential state")
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       action,
			ResourceType: "device_credentials",
			ResourceID:   deviceID,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

// fetchSensorForTenants resolves a device id and hides sensors that belong
// to tenants outside the caller's access map.
func fetchSensorForTenants(ctx context.Context, svc sensors.SensorRegistry, deviceID string, tenants []string) (types.Sensor, error) {
	sensor, err := svc.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return types.Sensor{}, err
	}

	if !slices.Contains(tenants, sensor.Tenant) {
		return types.Sensor{}, sensors.ErrSensorNotFound
	}

	return sensor, nil
}
