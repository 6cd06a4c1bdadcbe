package notifications

import (
	"context"
	"encoding/json"

	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/pkg/types"
)

var tracer = otel.Tracer("water-monitoring/notifications")

// NewAlertCreatedHandler forwards freshly created alerts to the configured
// external subscribers. It runs off the broker so that a slow subscriber
// never slows down ingestion.
func NewAlertCreatedHandler(messenger messaging.MsgContext, sender EventSender) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "alert-created")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		msg := struct {
			Alert types.Alert `json:"alert"`
		}{}

		err = json.Unmarshal(itm.Body(), &msg)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		err = sender.Send(ctx, msg.Alert)
		if err != nil {
			log.Error("could not notify subscribers", "alert_id", msg.Alert.ID, "err", err.Error())
			return
		}
	}
}
