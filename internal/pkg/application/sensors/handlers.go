package sensors

import (
	"context"
	"encoding/json"
	"time"

	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/pkg/types"
)

var tracer = otel.Tracer("water-monitoring/sensors")

func NewSensorStatusHandler(svc SensorRegistry) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var err error

		ctx, span := tracer.Start(ctx, "sensor-status")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, l, ctx)

		status := struct {
			DeviceID       string   `json:"deviceID"`
			BatteryLevel   *float64 `json:"batteryLevel,omitempty"`
			SignalStrength *float64 `json:"signalStrength,omitempty"`
			Firmware       *string  `json:"firmware,omitempty"`
			Code           *string  `json:"statusCode,omitempty"`
			Messages       []string `json:"statusMessages,omitempty"`
			Tenant         string   `json:"tenant,omitempty"`
			Timestamp      string   `json:"timestamp"`
		}{}

		err = json.Unmarshal(itm.Body(), &status)
		if err != nil {
			log.Error("failed to unmarshal message", "err", err.Error())
			return
		}

		log = log.With("device_id", status.DeviceID)

		timestamp, err := time.Parse(time.RFC3339Nano, status.Timestamp)
		if err != nil {
			log.Error("status message contains no valid timestamp")
			timestamp = time.Now().UTC()
		}

		err = svc.HandleStatusMessage(ctx, types.StatusMessage{
			DeviceID:       status.DeviceID,
			BatteryLevel:   status.BatteryLevel,
			SignalStrength: status.SignalStrength,
			Firmware:       status.Firmware,
			Code:           status.Code,
			Messages:       status.Messages,
			Tenant:         status.Tenant,
			Timestamp:      timestamp,
		})
		if err != nil {
			log.Error("could not update sensor from status message", "err", err.Error())
			return
		}
	}
}
