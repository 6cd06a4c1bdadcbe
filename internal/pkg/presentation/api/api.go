package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
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

var tracer = otel.Tracer("water-monitoring/api")

type Services struct {
	Ingest      ingest.Ingestor
	Sensors     sensors.SensorRegistry
	Credentials credentials.DeviceCredentials
	Alerts      alerts.AlertService
	Rules       rules.RuleEngine
	Protocols   protocols.ProtocolPolicies
	Audit       audit.AuditLog
}

func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, svcs Services, ingestRatePerMinute int) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	// Handle valid / invalid tokens.
	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return nil, fmt.Errorf("failed to create api authenticator: %w", err)
	}

	limiter := newClientLimiter(ingestRatePerMinute)

	router.Route("/api/v1", func(r chi.Router) {
		// devices authenticate with their own credentials, not with a user token
		r.Post("/ingest/sensors/{deviceID}/data", ingestHandler(log, svcs.Ingest, limiter))

		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAccess(auth.ScopeRead))

			r.Get("/sensors", querySensorsHandler(log, svcs.Sensors))
			r.Get("/sensors/{deviceID}", getSensorHandler(log, svcs.Sensors))
			r.Get("/readings", queryReadingsHandler(log, svcs.Ingest))

			r.Get("/alerts", queryAlertsHandler(log, svcs.Alerts))
			r.Get("/alerts/summary", alertSummaryHandler(log, svcs.Alerts))
			r.Get("/alerts/{alertID}", getAlertHandler(log, svcs.Alerts))

			r.Get("/rules", queryRulesHandler(log, svcs.Rules))
			r.Get("/rules/{ruleID}", getRuleHandler(log, svcs.Rules))

			r.Get("/protocols", listProtocolsHandler(log, svcs.Protocols))
			r.Get("/audit", queryAuditHandler(log, svcs.Audit))
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAccess(auth.ScopeWrite))

			r.Post("/ingest/gateway/{channel}", gatewayHandler(log, svcs.Ingest, limiter))

			r.Post("/sensors", createSensorHandler(log, svcs.Sensors, svcs.Audit))
			r.Patch("/sensors/{deviceID}", patchSensorHandler(log, svcs.Sensors, svcs.Audit))
			r.Delete("/sensors/{deviceID}", deleteSensorHandler(log, svcs.Sensors, svcs.Audit))

			r.Post("/sensors/{deviceID}/credentials", registerCredentialsHandler(log, svcs.Sensors, svcs.Credentials, svcs.Audit))
			r.Post("/sensors/{deviceID}/credentials/refresh", refreshAPIKeyHandler(log, svcs.Sensors, svcs.Credentials, svcs.Audit))
			r.Post("/sensors/{deviceID}/credentials/certificate", generateCertificateHandler(log, svcs.Sensors, svcs.Credentials, svcs.Audit))
			r.Delete("/sensors/{deviceID}/credentials", deactivateCredentialsHandler(log, svcs.Sensors, svcs.Credentials, svcs.Audit))
			r.Post("/sensors/{deviceID}/credentials/reactivate", reactivateCredentialsHandler(log, svcs.Sensors, svcs.Credentials, svcs.Audit))

			r.Post("/alerts/{alertID}/acknowledge", acknowledgeAlertHandler(log, svcs.Alerts, svcs.Audit))
			r.Patch("/alerts/{alertID}", patchAlertHandler(log, svcs.Alerts, svcs.Audit))
			r.Delete("/alerts/{alertID}", deleteAlertHandler(log, svcs.Alerts, svcs.Audit))

			r.Post("/rules", createRuleHandler(log, svcs.Rules, svcs.Audit))
			r.Patch("/rules/{ruleID}", patchRuleHandler(log, svcs.Rules, svcs.Audit))
			r.Delete("/rules/{ruleID}", deleteRuleHandler(log, svcs.Rules, svcs.Audit))

			r.Put("/protocols", setProtocolHandler(log, svcs.Protocols, svcs.Audit))
			r.Delete("/protocols", removeProtocolHandler(log, svcs.Protocols, svcs.Audit))
		})
	})

	return router, nil
}

// statusFromError maps orchestrator errors onto ingest response codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, ingest.ErrUnknownDevice), errors.Is(err, ingest.ErrMalformedPayload):
		return http.StatusBadRequest
	case errors.Is(err, ingest.ErrMissingCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ingest.ErrInvalidCredential),
		errors.Is(err, ingest.ErrExpiredCredential),
		errors.Is(err, ingest.ErrProtocolDisabled):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeJson(w http.ResponseWriter, statusCode int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(b)
}

func writeError(w http.ResponseWriter, statusCode int, detail string) {
	writeJson(w, statusCode, map[string]string{"detail": detail})
}

// auditAdminAction records a completed admin mutation, stamped with the
// caller's address and user agent.
func auditAdminAction(ctx context.Context, auditLog audit.AuditLog, r *http.Request, entry types.AuditEntry) {
	entry.SourceAddr = remoteHost(r)
	entry.UserAgent = r.UserAgent()
	auditLog.Log(ctx, entry)
}

// clientKey returns the bucket key for a request, preferring the presented
// bearer token over the remote address.
func clientKey(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if len(token) > 7 {
		return token[7:]
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// limiterMaxClients caps the bucket table. The table is cleared when the cap
// is reached, which resets quotas but keeps memory bounded.
const limiterMaxClients = 10000

type clientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*rate.Limiter
}

// newClientLimiter keeps one token bucket per client. A non positive rate
// disables limiting altogether.
func newClientLimiter(perMinute int) *clientLimiter {
	cl := &clientLimiter{clients: map[string]*rate.Limiter{}}

	if perMinute > 0 {
		cl.limit = rate.Every(time.Minute / time.Duration(perMinute))
		cl.burst = perMinute
	}

	return cl
}

func (cl *clientLimiter) Allow(key string) bool {
	if cl.burst == 0 {
		return true
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if len(cl.clients) >= limiterMaxClients {
		cl.clients = map[string]*rate.Limiter{}
	}

	limiter, ok := cl.clients[key]
	if !ok {
		limiter = rate.NewLimiter(cl.limit, cl.burst)
		cl.clients[key] = limiter
	}

	return limiter.Allow()
}
