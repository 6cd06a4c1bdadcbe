package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/internal/pkg/application/credentials"
	"github.com/diwise/water-monitoring/internal/pkg/application/ingest"
	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/transport/gateway"
	"github.com/diwise/water-monitoring/internal/pkg/presentation/api/auth"
)

const maxIngestBodySize = 64 * 1024

func ingestHandler(log *slog.Logger, svc ingest.Ingestor, limiter *clientLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "ingest-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		deviceID := chi.URLParam(r, "deviceID")
		if deviceID != "" {
			requestLogger = requestLogger.With(slog.String("device_id", deviceID))
		}

		if !limiter.Allow(clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		apiKey, ok := bearerToken(r)
		if !ok {
			err = errors.New("authorization header missing or malformed")
			requestLogger.Info(err.Error())
			writeError(w, http.StatusUnauthorized, "bearer token required")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxIngestBodySize))
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		var payload map[string]any
		err = json.Unmarshal(body, &payload)
		if err != nil {
			requestLogger.Info("malformed payload", "err", err.Error())
			writeError(w, http.StatusBadRequest, "malformed payload")
			return
		}

		protocol := "http"
		if r.TLS != nil {
			protocol = "https"
		}

		// a client that drops the connection must not abort a reading that
		// is already half way through the pipeline
		result, err := svc.Process(context.WithoutCancel(ctx), ingest.Params{
			DeviceID:    deviceID,
			Protocol:    protocol,
			Payload:     payload,
			Credentials: credentials.Presented{APIKey: apiKey},
			Source: ingest.Source{
				Addr:      remoteHost(r),
				Channel:   "post",
				UserAgent: r.UserAgent(),
			},
			EnforceKey: true,
		})
		if err != nil {
			status := statusFromError(err)
			if status >= http.StatusInternalServerError {
				requestLogger.Error("could not process reading", "err", err.Error())
			} else {
				requestLogger.Info("reading rejected", "err", err.Error())
			}
			writeError(w, status, err.Error())
			return
		}

		writeJson(w, http.StatusOK, result)
	}
}

func gatewayHandler(log *slog.Logger, svc ingest.Ingestor, limiter *clientLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "ingest-gateway-message")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		channel := chi.URLParam(r, "channel")
		requestLogger = requestLogger.With(slog.String("channel", channel))

		if !limiter.Allow(clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxIngestBodySize))
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			writeError(w, http.StatusBadRequest, "unable to read body")
			return
		}

		msg, err := gateway.Decode(channel, body)
		if err != nil {
			if errors.Is(err, gateway.ErrUnknownChannel) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			requestLogger.Info("undecodable gateway message", "err", err.Error())
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		requestLogger = requestLogger.With(slog.String("device_id", msg.DeviceID))

		result, err := svc.Process(context.WithoutCancel(ctx), ingest.Params{
			DeviceID: msg.DeviceID,
			Protocol: gateway.Protocol,
			Payload:  msg.Payload,
			Source: ingest.Source{
				Addr:      remoteHost(r),
				Channel:   channel,
				UserAgent: r.UserAgent(),
			},
			EnforceKey: false,
		})
		if err != nil {
			status := statusFromError(err)
			if status >= http.StatusInternalServerError {
				requestLogger.Error("could not process gateway message", "err", err.Error())
			} else {
				requestLogger.Info("gateway message rejected", "err", err.Error())
			}
			writeError(w, status, err.Error())
			return
		}

		writeJson(w, http.StatusOK, result)
	}
}

func queryReadingsHandler(log *slog.Logger, svc ingest.Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		allowedTenants := auth.GetTenantsWithAllowedScopes(r.Context(), auth.ScopeRead)

		ctx, span := tracer.Start(r.Context(), "query-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := svc.QueryReadings(ctx, r.URL.Query(), allowedTenants)
		if err != nil {
			requestLogger.Error("unable to fetch readings", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to fetch readings")
			return
		}

		writeJson(w, http.StatusOK, NewApiResponse(collection, r.URL))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	if !strings.HasPrefix(header, "Bearer ") || len(header) == len("Bearer ") {
		return "", false
	}

	return header[len("Bearer "):], true
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
