package api

import (
	"net/http"

	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/internal/pkg/application/audit"
)

func queryAuditHandler(log *slog.Logger, svc audit.AuditLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-audit-log")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		collection, err := svc.Query(ctx, r.URL.Query())
		if err != nil {
			requestLogger.Error("unable to fetch audit entries", "err", err.Error())
			writeError(w, http.StatusInternalServerError, "unable to fetch audit entries")
			return
		}

		writeJson(w, http.StatusOK, NewApiResponse(collection, r.URL))
	}
}
