package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/internal/pkg/application/alerts"
	"github.com/diwise/water-monitoring/internal/pkg/application/audit"
	"github.com/diwise/water-monitoring/internal/pkg/presentation/api/auth"
	"github.com/diwise/water-monitoring/pkg/types"
)

func queryAlertsHandler(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "query-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := svc.Query(ctx, r.URL.Query(), allowedTenants)
		if err != nil {
			requestLogger.Error("unable to fetch alerts", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to fetch alerts")
			return
		}

		writeJson(w, http.StatusOK, NewApiResponse(collection, r.URL))
	}
}

func alertSummaryHandler(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "alert-summary")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := svc.Summary(ctx, r.URL.Query(), allowedTenants)
		if err != nil {
			requestLogger.Error("unable to fetch alert summary", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to fetch alert summary")
			return
		}

		writeJson(w, http.StatusOK, NewApiResponse(collection, r.URL))
	}
}

func getAlertHandler(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "get-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		if alertID != "" {
			requestLogger = requestLogger.With(slog.String("alert_id", alertID))
		}

		alert, err := svc.Get(ctx, alertID, allowedTenants)
		if err != nil {
			if errors.Is(err, alerts.ErrAlertNotFound) {
				requestLogger.Debug("alert not found")
				writeError(w, http.StatusNotFound, "alert not found")
				return
			}
			requestLogger.Error("could not fetch alert", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch alert")
			return
		}

		writeJson(w, http.StatusOK, ApiResponse{Data: alert})
	}
}

func acknowledgeAlertHandler(log *slog.Logger, svc alerts.AlertService, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "acknowledge-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		if alertID != "" {
			requestLogger = requestLogger.With(slog.String("alert_id", alertID))
		}

		ack := struct {
			By string `json:"by"`
		}{}

		body, err := io.ReadAll(r.Body)
		if err == nil && len(body) > 0 {
			err = json.Unmarshal(body, &ack)
		}
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid acknowledge document")
			return
		}

		if ack.By == "" {
			writeError(w, http.StatusBadRequest, "acknowledging party is required")
			return
		}

		updated, err := changeAlertStatus(ctx, svc, alertID, allowedTenants, types.AlertStatusAcknowledged, ack.By, "")
		if err != nil {
			writeAlertError(w, requestLogger, err)
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Actor:        ack.By,
			Action:       "alert.acknowledged",
			ResourceType: "alert",
			ResourceID:   alertID,
		})

		writeJson(w, http.StatusOK, ApiResponse{Data: updated})
	}
}

func patchAlertHandler(log *slog.Logger, svc alerts.AlertService, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "patch-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		if alertID != "" {
			requestLogger = requestLogger.With(slog.String("alert_id", alertID))
		}

		patch := struct {
			Status string `json:"status"`
			By     string `json:"by"`
			Notes  string `json:"notes"`
		}{}

		body, err := io.ReadAll(r.Body)
		if err == nil {
			err = json.Unmarshal(body, &patch)
		}
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid patch document")
			return
		}

		if patch.Status == "" {
			writeError(w, http.StatusBadRequest, "status is required")
			return
		}

		updated, err := changeAlertStatus(ctx, svc, alertID, allowedTenants, patch.Status, patch.By, patch.Notes)
		if err != nil {
			writeAlertError(w, requestLogger, err)
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Actor:        patch.By,
			Action:       "alert.status_changed",
			ResourceType: "alert",
			ResourceID:   alertID,
			Changes:      map[string]any{"status": patch.Status},
		})

		writeJson(w, http.StatusOK, ApiResponse{Data: updated})
	}
}

func deleteAlertHandler(log *slog.Logger, svc alerts.AlertService, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "delete-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		if alertID != "" {
			requestLogger = requestLogger.With(slog.String("alert_id", alertID))
		}

		alert, err := svc.Get(ctx, alertID, allowedTenants)
		if err != nil {
			writeAlertError(w, requestLogger, err)
			return
		}

		err = svc.Delete(ctx, alertID, alert.Tenant)
		if err != nil {
			requestLogger.Error("unable to delete alert", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to delete alert")
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "alert.deleted",
			ResourceType: "alert",
			ResourceID:   alertID,
			Meta:         map[string]any{"tenant": alert.Tenant},
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

// changeAlertStatus scopes the lookup to the caller's tenants before the
// state transition is attempted under the alert's own tenant.
func changeAlertStatus(ctx context.Context, svc alerts.AlertService, alertID string, tenants []string, status, by, notes string) (types.Alert, error) {
	alert, err := svc.Get(ctx, alertID, tenants)
	if err != nil {
		return types.Alert{}, err
	}

	return svc.UpdateStatus(ctx, alertID, alert.Tenant, status, by, notes)
}

func writeAlertError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, alerts.ErrAlertNotFound):
		log.Debug("alert not found")
		writeError(w, http.StatusNotFound, "alert not found")
	case errors.Is(err, alerts.ErrInvalidTransition):
		log.Info("rejected alert status transition", "err", err.Error())
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error("alert operation failed", "err", err.Error())
		writeError(w, http.StatusInternalServerError, "alert operation failed")
	}
}
