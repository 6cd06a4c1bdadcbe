package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"log/slog"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/water-monitoring/internal/pkg/application/credentials"
	"github.com/diwise/water-monitoring/internal/pkg/application/ingest"
	"github.com/diwise/water-monitoring/pkg/types"
)

// processData feeds a reading from sensors/{device_id}/data into the
// ingest pipeline. The broker has already authenticated the client, so
// an api key is only verified when the payload carries one.
func (a *adapter) processData(ctx context.Context, topic string, body []byte) {
	var err error

	ctx, span := tracer.Start(ctx, "mqtt-data")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	deviceID := deviceIDFromTopic(topic)
	if deviceID == "" {
		log.Warn("discarding message without a device id", "topic", topic)
		return
	}

	log = log.With(slog.String("device_id", deviceID))

	payload := map[string]any{}
	err = json.Unmarshal(body, &payload)
	if err != nil {
		log.Error("failed to unmarshal payload", "err", err.Error())
		return
	}

	presented := credentials.Presented{}
	for key, target := range map[string]*string{
		"api_key":                 &presented.APIKey,
		"mqtt_password":           &presented.MqttPassword,
		"certificate_fingerprint": &presented.CertificateFingerprint,
	} {
		if v, ok := payload[key].(string); ok {
			*target = v
			delete(payload, key)
		}
	}

	_, err = a.ingestor.Process(ctx, ingest.Params{
		DeviceID:    deviceID,
		Protocol:    "mqtt",
		Payload:     payload,
		Credentials: presented,
		Source: ingest.Source{
			Addr:    a.cfg.host,
			Channel: topic,
		},
		EnforceKey: false,
	})
	if err != nil {
		log.Error("failed to process reading", "err", err.Error())
		return
	}
}

// processStatus updates device health from sensors/{device_id}/status.
func (a *adapter) processStatus(ctx context.Context, topic string, body []byte) {
	var err error

	ctx, span := tracer.Start(ctx, "mqtt-status")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	deviceID := deviceIDFromTopic(topic)
	if deviceID == "" {
		log.Warn("discarding message without a device id", "topic", topic)
		return
	}

	log = log.With(slog.String("device_id", deviceID))

	status := struct {
		BatteryLevel   *float64 `json:"battery_level,omitempty"`
		SignalStrength *float64 `json:"signal_strength,omitempty"`
		Firmware       *string  `json:"firmware,omitempty"`
		Code           *string  `json:"status_code,omitempty"`
		Messages       []string `json:"status_messages,omitempty"`
		Timestamp      string   `json:"timestamp"`
	}{}

	err = json.Unmarshal(body, &status)
	if err != nil {
		log.Error("failed to unmarshal status message", "err", err.Error())
		return
	}

	timestamp, tsErr := time.Parse(time.RFC3339Nano, status.Timestamp)
	if tsErr != nil {
		timestamp = time.Now().UTC()
	}

	err = a.registry.HandleStatusMessage(ctx, types.StatusMessage{
		DeviceID:       deviceID,
		BatteryLevel:   status.BatteryLevel,
		SignalStrength: status.SignalStrength,
		Firmware:       status.Firmware,
		Code:           status.Code,
		Messages:       status.Messages,
		Timestamp:      timestamp,
	})
	if err != nil {
		log.Error("could not update sensor from status message", "err", err.Error())
		return
	}
}

// processHeartbeat bumps the last reading timestamp so that the
// watchdog keeps considering the sensor alive even when it has nothing
// to report.
func (a *adapter) processHeartbeat(ctx context.Context, topic string, _ []byte) {
	var err error

	ctx, span := tracer.Start(ctx, "mqtt-heartbeat")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	deviceID := deviceIDFromTopic(topic)
	if deviceID == "" {
		log.Warn("discarding message without a device id", "topic", topic)
		return
	}

	sensor, err := a.registry.GetByDeviceID(ctx, deviceID)
	if err != nil {
		log.Warn("heartbeat from unknown device", "device_id", deviceID)
		return
	}

	err = a.registry.MarkObserved(ctx, sensor.ID, time.Now().UTC(), nil, nil)
	if err != nil {
		log.Error("could not mark sensor as observed", "device_id", deviceID, "err", err.Error())
		return
	}
}

// processCommand acknowledges commands from system/{device_id}/command
// on the device's response topic. Execution is the device's concern,
// the platform only confirms receipt (or reports why it will not).
func (a *adapter) processCommand(ctx context.Context, topic string, body []byte, respond func(topic string, payload []byte) error) {
	var err error

	ctx, span := tracer.Start(ctx, "mqtt-command")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	deviceID := deviceIDFromTopic(topic)
	if deviceID == "" {
		log.Warn("discarding message without a device id", "topic", topic)
		return
	}

	log = log.With(slog.String("device_id", deviceID))
	responseTopic := fmt.Sprintf(responseTopicFn, deviceID)

	cmd := struct {
		Command   string `json:"command"`
		RequestID string `json:"request_id,omitempty"`
	}{}

	if err = json.Unmarshal(body, &cmd); err != nil || cmd.Command == "" {
		err = respondWithError(respond, responseTopic, cmd.RequestID, "malformed command")
		return
	}

	if _, err = a.registry.GetByDeviceID(ctx, deviceID); err != nil {
		err = respondWithError(respond, responseTopic, cmd.RequestID, "unknown device")
		return
	}

	response := map[string]any{
		"device_id": deviceID,
		"command":   cmd.Command,
		"status":    "acknowledged",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if cmd.RequestID != "" {
		response["request_id"] = cmd.RequestID
	}

	payload, _ := json.Marshal(response)

	err = respond(responseTopic, payload)
	if err != nil {
		log.Error("failed to publish command response", "topic", responseTopic, "err", err.Error())
		return
	}

	log.Info("acknowledged device command", "command", cmd.Command)
}

func respondWithError(respond func(topic string, payload []byte) error, topic, requestID, detail string) error {
	response := map[string]any{
		"status": "error",
		"detail": detail,
	}
	if requestID != "" {
		response["request_id"] = requestID
	}

	payload, _ := json.Marshal(response)

	return respond(topic, payload)
}
