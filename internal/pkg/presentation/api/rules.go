package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/internal/pkg/application/audit"
	"github.com/diwise/water-monitoring/internal/pkg/application/protocols"
	"github.com/diwise/water-monitoring/internal/pkg/application/rules"
	"github.com/diwise/water-monitoring/internal/pkg/presentation/api/auth"
	"github.com/diwise/water-monitoring/pkg/types"
)

func queryRulesHandler(log *slog.Logger, svc rules.RuleEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "query-rules")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := svc.Query(ctx, r.URL.Query(), allowedTenants)
		if err != nil {
			requestLogger.Error("unable to fetch rules", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to fetch rules")
			return
		}

		writeJson(w, http.StatusOK, NewApiResponse(collection, r.URL))
	}
}

func getRuleHandler(log *slog.Logger, svc rules.RuleEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "get-rule")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		ruleID := chi.URLParam(r, "ruleID")
		if ruleID != "" {
			requestLogger = requestLogger.With(slog.String("rule_id", ruleID))
		}

		rule, err := svc.Get(ctx, ruleID, allowedTenants)
		if err != nil {
			if errors.Is(err, rules.ErrRuleNotFound) {
				requestLogger.Debug("rule not found")
				writeError(w, http.StatusNotFound, "rule not found")
				return
			}
			requestLogger.Error("could not fetch rule", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch rule")
			return
		}

		writeJson(w, http.StatusOK, ApiResponse{Data: rule})
	}
}

func createRuleHandler(log *slog.Logger, svc rules.RuleEngine, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "create-rule")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		var rule types.DynamicRule
		err = json.Unmarshal(body, &rule)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid rule document")
			return
		}

		if !ruleTenantAllowed(rule.Tenant, allowedTenants) {
			err = errors.New("tenant not allowed")
			requestLogger.Warn(err.Error(), "tenant", rule.Tenant)
			writeError(w, http.StatusForbidden, "access to tenant denied")
			return
		}

		created, err := svc.Create(ctx, rule)
		if err != nil {
			if errors.Is(err, rules.ErrRuleAlreadyExist) {
				writeError(w, http.StatusConflict, "rule already exists")
				return
			}
			requestLogger.Error("unable to create rule", "err", err.Error())
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "rule.created",
			ResourceType: "rule",
			ResourceID:   created.ID,
		})

		writeJson(w, http.StatusCreated, ApiResponse{Data: created})
	}
}

func patchRuleHandler(log *slog.Logger, svc rules.RuleEngine, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "patch-rule")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		ruleID := chi.URLParam(r, "ruleID")
		if ruleID != "" {
			requestLogger = requestLogger.With(slog.String("rule_id", ruleID))
		}

		rule, err := svc.Get(ctx, ruleID, allowedTenants)
		if err != nil {
			if errors.Is(err, rules.ErrRuleNotFound) {
				requestLogger.Debug("rule not found")
				writeError(w, http.StatusNotFound, "rule not found")
				return
			}
			requestLogger.Error("could not fetch rule", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch rule")
			return
		}

		if !ruleTenantAllowed(rule.Tenant, allowedTenants) {
			writeError(w, http.StatusForbidden, "access to tenant denied")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		patched := rule
		err = json.Unmarshal(body, &patched)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid patch document")
			return
		}

		// neither the identity nor the owning tenant changes through a patch
		patched.ID = rule.ID
		patched.Tenant = rule.Tenant

		err = svc.Update(ctx, patched)
		if err != nil {
			requestLogger.Error("unable to update rule", "err", err.Error())
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		changes := map[string]any{}
		_ = json.Unmarshal(body, &changes)

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "rule.updated",
			ResourceType: "rule",
			ResourceID:   ruleID,
			Changes:      changes,
		})

		writeJson(w, http.StatusOK, ApiResponse{Data: patched})
	}
}

func deleteRuleHandler(log *slog.Logger, svc rules.RuleEngine, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "delete-rule")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		ruleID := chi.URLParam(r, "ruleID")
		if ruleID != "" {
			requestLogger = requestLogger.With(slog.String("rule_id", ruleID))
		}

		rule, err := svc.Get(ctx, ruleID, allowedTenants)
		if err != nil {
			if errors.Is(err, rules.ErrRuleNotFound) {
				requestLogger.Debug("rule not found")
				writeError(w, http.StatusNotFound, "rule not found")
				return
			}
			requestLogger.Error("could not fetch rule", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "could not fetch rule")
			return
		}

		if !ruleTenantAllowed(rule.Tenant, allowedTenants) {
			writeError(w, http.StatusForbidden, "access to tenant denied")
			return
		}

		err = svc.Delete(ctx, ruleID)
		if err != nil {
			requestLogger.Error("unable to delete rule", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to delete rule")
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "rule.deleted",
			ResourceType: "rule",
			ResourceID:   ruleID,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

// ruleTenantAllowed guards rule mutations. Rules without a tenant apply to
// everyone, so touching them requires access to the global scope.
func ruleTenantAllowed(tenant string, allowedTenants []string) bool {
	if tenant == "" {
		return slices.Contains(allowedTenants, types.EventScopeGlobal)
	}

	return slices.Contains(allowedTenants, tenant)
}

func listProtocolsHandler(log *slog.Logger, svc protocols.ProtocolPolicies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "list-protocols")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		policies, err := svc.List(ctx)
		if err != nil {
			requestLogger.Error("unable to fetch protocol policies", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to fetch protocol policies")
			return
		}

		// global policies are visible to everyone, tenant bound ones only to
		// their own tenant
		visible := make([]types.ProtocolPolicy, 0, len(policies))
		for _, p := range policies {
			if p.Tenant == "" || slices.Contains(allowedTenants, p.Tenant) {
				visible = append(visible, p)
			}
		}

		writeJson(w, http.StatusOK, ApiResponse{Data: visible})
	}
}

func setProtocolHandler(log *slog.Logger, svc protocols.ProtocolPolicies, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "set-protocol-policy")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		var policy types.ProtocolPolicy
		err = json.Unmarshal(body, &policy)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "invalid policy document")
			return
		}

		if !ruleTenantAllowed(policy.Tenant, allowedTenants) {
			writeError(w, http.StatusForbidden, "access to tenant denied")
			return
		}

		err = svc.Set(ctx, policy)
		if err != nil {
			if errors.Is(err, protocols.ErrUnknownProtocol) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			requestLogger.Error("unable to store protocol policy", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to store protocol policy")
			return
		}

		requestLogger.Info("protocol policy updated", "protocol", policy.Protocol, "tenant", policy.Tenant, "enabled", policy.Enabled)

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "protocol_policy.set",
			ResourceType: "protocol_policy",
			ResourceID:   policy.Protocol,
			Changes:      map[string]any{"enabled": policy.Enabled},
			Meta:         map[string]any{"tenant": policy.Tenant},
		})

		writeJson(w, http.StatusOK, ApiResponse{Data: policy})
	}
}

func removeProtocolHandler(log *slog.Logger, svc protocols.ProtocolPolicies, auditLog audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeWrite)

		ctx, span := tracer.Start(r.Context(), "remove-protocol-policy")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		protocol := r.URL.Query().Get("protocol")
		tenant := r.URL.Query().Get("tenant")

		if protocol == "" {
			writeError(w, http.StatusBadRequest, "protocol is required")
			return
		}

		if !ruleTenantAllowed(tenant, allowedTenants) {
			writeError(w, http.StatusForbidden, "access to tenant denied")
			return
		}

		err = svc.Remove(ctx, protocol, tenant)
		if err != nil {
			requestLogger.Error("unable to remove protocol policy", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to remove protocol policy")
			return
		}

		auditAdminAction(ctx, auditLog, r, types.AuditEntry{
			Action:       "protocol_policy.removed",
			ResourceType: "protocol_policy",
			ResourceID:   protocol,
			Meta:         map[string]any{"tenant": tenant},
		})

		w.WriteHeader(http.StatusNoContent)
	}
}
